package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateName validates a person's display name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("name is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}

// ValidateCity validates a locality name of a moving request
func ValidateCity(city string) error {
	trimmed := strings.TrimSpace(city)

	if trimmed == "" {
		return errors.New("city is required")
	}

	if utf8.RuneCountInString(trimmed) > 80 {
		return errors.New("city is too long (max 80 characters)")
	}

	return nil
}
