package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reasonwall/backend/internal/apperrors"
)

func TestContentFilter(t *testing.T) {
	filter := NewContentFilter()

	passes := []string{
		"",
		"My dog waits at the door every evening",
		"Sunday pancakes with my sister",
		"Class of 2024",
	}
	for _, text := range passes {
		assert.NoError(t, filter.Check(text), "should pass: %q", text)
	}

	rejects := []struct {
		text    string
		message string
	}{
		{"this is fucking great", "inappropriate language"},
		{"visit https://totally.legit.example now", "web links"},
		{"email me at someone@example.com", "Contact information"},
		{"call 555-123-4567 anytime", "Contact information"},
		{"heyyyyyy whats up", "spam"},
		{"STOP DOING THIS RIGHT NOW PLEASE EVERYONE", "capital letters"},
	}
	for _, tc := range rejects {
		err := filter.Check(tc.text)
		if assert.Error(t, err, "should reject: %q", tc.text) {
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), tc.message)
		}
	}
}
