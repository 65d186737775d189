package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy(t *testing.T) {
	v := NewValidation("field %s is bad", "name")
	assert.True(t, IsValidation(v))
	assert.False(t, IsNotFound(v))
	assert.Equal(t, "field name is bad", v.Error())

	nf := NewNotFound("Reason")
	assert.True(t, IsNotFound(nf))
	assert.Equal(t, "Reason not found", nf.Error())

	cause := errors.New("connection reset")
	ie := &IntegrityError{Op: "remove reason", Err: cause}
	assert.True(t, IsIntegrity(ie))
	assert.ErrorIs(t, ie, cause)
}

func TestWrappedDetection(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFound("Flag"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}
