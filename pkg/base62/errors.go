package base62

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when decode input is empty once cleaned.
	ErrEmpty = errors.New("Empty Base62 string.")
	// ErrNegative is returned when asked to encode a value below zero.
	ErrNegative = errors.New("base62 encode does not support negative values")
	// ErrType is returned for encode input that is not an exact integer:
	// floats, non-numeric strings, nil and other Go kinds.
	ErrType = errors.New("base62 encode expects an integer")
	// ErrOverflow is returned by DecodeUint64 for values wider than 64 bits.
	ErrOverflow = errors.New("base62 value overflows uint64")
	// ErrInvalidChar matches every *InvalidCharError under errors.Is.
	ErrInvalidChar = errors.New("invalid base62 character")
)

// InvalidCharError reports the first character of a decode input that is not
// in Charset. Pos is the rune index within the cleaned input.
// When the input holds a byte that is not valid UTF-8, Char is
// utf8.RuneError and Byte carries the byte that was actually there.
type InvalidCharError struct {
	Char rune
	Pos  int
	Byte byte
}

func (e *InvalidCharError) Error() string {
	if e.Byte != 0 {
		return fmt.Sprintf("Invalid Base62 byte 0x%02X at position %d (not valid UTF-8).", e.Byte, e.Pos)
	}
	return fmt.Sprintf("Invalid Base62 character '%c' at position %d (U+%04X).", e.Char, e.Pos, e.Char)
}

// Is lets callers match any *InvalidCharError with errors.Is(err, ErrInvalidChar).
func (e *InvalidCharError) Is(target error) bool {
	return target == ErrInvalidChar
}

// CodePoint renders Char the way Error does, e.g. "U+0024".
// It is empty for an invalid UTF-8 byte, which has no code point.
func (e *InvalidCharError) CodePoint() string {
	if e.Byte != 0 {
		return ""
	}
	return fmt.Sprintf("U+%04X", e.Char)
}

func typeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: got %s", ErrType, fmt.Sprintf(format, args...))
}
