package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and escapes HTML entities.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)

	return html.EscapeString(trimmed)
}

// SanitizeEmail normalizes email input to lowercase with control characters removed.
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	return removeControlChars(email)
}

// SanitizeText sanitizes multi-line text input, keeping newlines and tabs.
func SanitizeText(input string) string {
	trimmed := strings.TrimSpace(input)
	escaped := html.EscapeString(trimmed)

	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// removeControlChars removes control characters from string
func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
