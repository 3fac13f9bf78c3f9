// utils/phone.go - WhatsApp number handling
package utils

import (
	"regexp"
	"strings"
)

var (
	nonDigitRegex = regexp.MustCompile(`\D`)
	// Accepted input shapes before normalization: 08xxxx, 8xxxx, 628xxxx, +628xxxx
	whatsappRegex = regexp.MustCompile(`^(\+?62|0)?[0-9]{8,13}$`)
)

// ValidateWhatsappNumber reports whether the raw, pre-normalized input is an
// acceptable Indonesian mobile number.
func ValidateWhatsappNumber(raw string) bool {
	return whatsappRegex.MatchString(strings.TrimSpace(raw))
}

// NormalizeWhatsappNumber converts an accepted input to the international
// +62 form that gets persisted. Non-digits and leading zeros are stripped;
// a 62 prefix is kept, anything else gets one prepended.
func NormalizeWhatsappNumber(raw string) string {
	cleaned := nonDigitRegex.ReplaceAllString(raw, "")
	cleaned = strings.TrimLeft(cleaned, "0")
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "62") {
		return "+" + cleaned
	}
	return "+62" + cleaned
}
