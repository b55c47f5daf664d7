package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// Text field length limits — single source of truth for backend and clients.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 50
	MaxUsernameLength    = 50

	MinPasswordLength = 8
	// bcrypt truncates input beyond 72 bytes.
	MaxPasswordLength = 72
)

const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func Title(s string) string       { return checkLen(s, MaxTitleLength, "title") }
func Description(s string) string { return checkLen(s, MaxDescriptionLength, "description") }
func Category(s string) string    { return checkLen(s, MaxCategoryLength, "category") }
func Username(s string) string    { return checkLen(s, MaxUsernameLength, "username") }

// Password enforces the signup strength rules: at least 8 characters with
// a lowercase letter, an uppercase letter, a digit, and a symbol.
// Returns an empty string if the password is acceptable.
func Password(s string) string {
	if len(s) < MinPasswordLength {
		return fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	}
	if len(s) > MaxPasswordLength {
		return fmt.Sprintf("password must be at most %d characters", MaxPasswordLength)
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	switch {
	case !lower:
		return "password must contain a lowercase letter"
	case !upper:
		return "password must contain an uppercase letter"
	case !digit:
		return "password must contain a digit"
	case !symbol:
		return "password must contain a special character"
	}
	return ""
}

// FieldLimits returns the field length limits for clients.
func FieldLimits() map[string]int {
	return map[string]int{
		"title":       MaxTitleLength,
		"description": MaxDescriptionLength,
		"category":    MaxCategoryLength,
		"username":    MaxUsernameLength,
	}
}
