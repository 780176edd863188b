// Package base62 converts non-negative integers of any size to and from
// base-62 text over the alphabet 0-9a-zA-Z.
package base62

import (
	"math/big"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Charset is the base-62 alphabet. The index of a character is its digit value.
const Charset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	radix = big.NewInt(int64(len(Charset)))

	// digits maps each alphabet rune back to its value. Built on first use.
	digits = sync.OnceValue(func() map[rune]int64 {
		m := make(map[rune]int64, len(Charset))
		for i, r := range Charset {
			m[r] = int64(i)
		}
		return m
	})
)

// Encode returns the base-62 form of v. v is not modified.
func Encode(v *big.Int) (string, error) {
	if v == nil {
		return "", typeErrorf("nil *big.Int")
	}
	switch v.Sign() {
	case -1:
		return "", ErrNegative
	case 0:
		return "0", nil
	}

	// Remainders come out least significant first.
	buf := make([]byte, 0, v.BitLen()/5+1)
	q := new(big.Int).Set(v)
	r := new(big.Int)
	for q.Sign() > 0 {
		q.QuoRem(q, radix, r)
		buf = append(buf, Charset[r.Int64()])
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// EncodeUint64 is Encode for values that fit in a machine word.
func EncodeUint64(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [11]byte // 62^11 > 2^64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Charset[n%62]
		n /= 62
	}
	return string(buf[i:])
}

// Decode parses a base-62 string. Whitespace and zero-width characters are
// dropped first (see Clean). The first character outside Charset stops the
// scan and is reported as an *InvalidCharError.
func Decode(s string) (*big.Int, error) {
	acc := new(big.Int)
	d := new(big.Int)
	err := scan(s, func(v int64) {
		acc.Mul(acc, radix)
		acc.Add(acc, d.SetInt64(v))
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// DecodeUint64 is Decode for callers holding machine-sized IDs.
// It fails with ErrOverflow if the value needs more than 64 bits.
func DecodeUint64(s string) (uint64, error) {
	v, err := Decode(s)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}

// Valid reports the error Decode would return for s, without building the value.
func Valid(s string) error {
	return scan(s, func(int64) {})
}

// scan cleans s and calls fn with each digit value, most significant first.
func scan(s string, fn func(int64)) error {
	cleaned := Clean(s)
	if cleaned == "" {
		return ErrEmpty
	}
	table := digits()
	pos := 0
	for i, r := range cleaned {
		v, ok := table[r]
		if !ok {
			e := &InvalidCharError{Char: r, Pos: pos}
			if r == utf8.RuneError {
				if _, size := utf8.DecodeRuneInString(cleaned[i:]); size == 1 {
					e.Byte = cleaned[i]
				}
			}
			return e
		}
		fn(v)
		pos++
	}
	return nil
}

// Clean strips whitespace and the zero-width characters U+200B..U+200D and
// U+FEFF from s. Bytes that are not valid UTF-8 are kept as they are.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isIgnorable(r) {
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func isIgnorable(r rune) bool {
	return isInvisible(r) || unicode.IsSpace(r)
}

func isInvisible(r rune) bool {
	return (r >= '\u200B' && r <= '\u200D') || r == '\uFEFF'
}
