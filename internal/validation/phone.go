package validation

import (
	"errors"
	"strings"
)

// ValidatePhone accepts digits with optional leading '+' and
// space, dash, dot or parenthesis separators; 10 to 15 digits.
func ValidatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return errors.New("phone number is required")
	}

	digits := 0
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return errors.New("phone number contains invalid characters")
		}
	}

	if digits < 10 || digits > 15 {
		return errors.New("phone number must have between 10 and 15 digits")
	}

	return nil
}
