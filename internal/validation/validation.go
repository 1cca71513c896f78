// Package validation contains input validators shared by handlers and services.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"unicode"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 150
	minPasswordLen = 8
	maxSlugLen     = 64
)

// ValidateUsername checks that a username is well-formed: letters, digits,
// dots, underscores and hyphens only.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	for _, r := range username {
		if r > unicode.MaxASCII {
			return errors.New("username must contain ASCII characters only")
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return errors.New("username may contain letters, digits, '.', '_' and '-' only")
		}
	}
	return nil
}

// ValidateEmail checks that an email address parses per RFC 5322.
func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces a minimum password length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// ValidateSlug checks a category slug: ASCII letters, digits, hyphen and
// underscore only.
func ValidateSlug(slug string) error {
	if slug == "" {
		return errors.New("slug is required")
	}
	if len(slug) > maxSlugLen {
		return fmt.Errorf("slug must be at most %d characters", maxSlugLen)
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return errors.New("slug may contain ASCII letters, digits, '-' and '_' only")
		}
	}
	return nil
}
