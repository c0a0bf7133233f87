package domain

import (
	"strings"
)

// NormalizeEmail trims and lower-cases an email address. Emails are stored
// and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeText trims leading/trailing whitespace and compresses runs of
// whitespace into a single space. Case is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
