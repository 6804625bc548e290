package errors

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// MaxTextLength is the largest input accepted by ValidateText, in bytes.
const MaxTextLength = 10000

// ValidateText validates raw input text before it enters the parser.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only text
//   - Maximum length of MaxTextLength bytes
//   - Valid UTF-8
//   - No control characters other than newline, carriage return and tab
func ValidateText(text string) error {
	if len(text) > MaxTextLength {
		return New(ErrCodeTooLarge, "text too long (max %d bytes)", MaxTextLength)
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}

	blank := true
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
		case unicode.IsControl(r):
			return New(ErrCodeInvalidInput, "text contains invalid control characters")
		case !unicode.IsSpace(r):
			blank = false
		}
	}
	if blank {
		return New(ErrCodeInvalidInput, "text cannot be empty")
	}

	return nil
}

// ValidateRatio validates a target aspect ratio (width/height).
func ValidateRatio(ratio float64) error {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return New(ErrCodeInvalidInput, "ratio must be a positive number, got %v", ratio)
	}
	return nil
}

// ValidateRatioRange validates a [min, max] ratio window.
func ValidateRatioRange(min, max float64) error {
	if min < 0 || max <= 0 || min > max {
		return New(ErrCodeInvalidInput, "invalid ratio window [%v, %v]", min, max)
	}
	return nil
}
