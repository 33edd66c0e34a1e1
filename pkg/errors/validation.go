package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a category label for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "category label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "category label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "category label contains control characters: %q", label)
		}
	}

	return nil
}

// ValidateHexColor validates a "#rrggbb" or "#rgb" color string.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !strings.HasPrefix(s, "#") {
		return New(ErrCodeInvalidColor, "color must start with '#': %q", s)
	}
	hexPart := s[1:]
	if len(hexPart) != 3 && len(hexPart) != 6 {
		return New(ErrCodeInvalidColor, "color must be #rgb or #rrggbb: %q", s)
	}
	for _, r := range hexPart {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHex {
			return New(ErrCodeInvalidColor, "color contains non-hex characters: %q", s)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
