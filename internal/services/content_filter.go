package services

import (
	"regexp"

	"github.com/reasonwall/backend/internal/apperrors"
)

var bannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

var rejectionMessages = map[string]string{
	"inappropriate_language":   "Your submission contains inappropriate language.",
	"url_not_allowed":          "URLs and web links are not allowed.",
	"contact_info_not_allowed": "Contact information is not allowed.",
	"spam_detected":            "Your submission appears to be spam.",
	"excessive_caps":           "Please avoid using excessive capital letters.",
}

// ContentFilter is the pass/fail gate run on submissions before they reach
// the store. Rejections carry a human-readable message for the form.
type ContentFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		urlPattern:          regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern:        regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
		phonePattern:        regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		repeatedCharPattern: regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`),
		allCapsPattern:      regexp.MustCompile(`[A-Z]{5,}`),
	}
	f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(bannedWords))
	for _, word := range bannedWords {
		f.bannedWordRegexps = append(f.bannedWordRegexps,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return f
}

// Check returns nil when the text passes, or a ValidationError with the
// user-facing rejection message when it does not.
func (f *ContentFilter) Check(text string) error {
	if text == "" {
		return nil
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return f.reject("inappropriate_language")
		}
	}
	if f.urlPattern.MatchString(text) {
		return f.reject("url_not_allowed")
	}
	if f.emailPattern.MatchString(text) {
		return f.reject("contact_info_not_allowed")
	}
	if f.phonePattern.MatchString(text) {
		return f.reject("contact_info_not_allowed")
	}
	if f.repeatedCharPattern.MatchString(text) {
		return f.reject("spam_detected")
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 2 {
		return f.reject("excessive_caps")
	}
	return nil
}

func (f *ContentFilter) reject(reason string) error {
	if msg, ok := rejectionMessages[reason]; ok {
		return &apperrors.ValidationError{Message: msg}
	}
	return &apperrors.ValidationError{Message: "Your submission does not meet our content guidelines."}
}
