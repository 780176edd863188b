package base62

import (
	"encoding/json"
	"math/big"
	"strings"
)

// EncodeString encodes a base-10 integer given as text. Leading and trailing
// whitespace and zero-width characters are trimmed; what remains must be an
// optional '-' followed by decimal digits, or ErrType is returned.
func EncodeString(s string) (string, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return "", err
	}
	return Encode(v)
}

// EncodeAny accepts the integer forms Go code usually carries big values in:
// *big.Int, big.Int, any built-in integer type, a decimal string, or an
// integral json.Number. Floats are refused so that precision is never lost.
func EncodeAny(v interface{}) (string, error) {
	switch x := v.(type) {
	case *big.Int:
		return Encode(x)
	case big.Int:
		return Encode(&x)
	case string:
		return EncodeString(x)
	case json.Number:
		return EncodeString(x.String())
	case int:
		return encodeSigned(int64(x))
	case int8:
		return encodeSigned(int64(x))
	case int16:
		return encodeSigned(int64(x))
	case int32:
		return encodeSigned(int64(x))
	case int64:
		return encodeSigned(x)
	case uint:
		return EncodeUint64(uint64(x)), nil
	case uint8:
		return EncodeUint64(uint64(x)), nil
	case uint16:
		return EncodeUint64(uint64(x)), nil
	case uint32:
		return EncodeUint64(uint64(x)), nil
	case uint64:
		return EncodeUint64(x), nil
	case uintptr:
		return EncodeUint64(uint64(x)), nil
	case nil:
		return "", typeErrorf("nil")
	default:
		return "", typeErrorf("%T", v)
	}
}

func encodeSigned(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}
	return EncodeUint64(uint64(n)), nil
}

func parseDecimal(s string) (*big.Int, error) {
	// Only the edges are trimmed; a gap inside the number is not a number.
	cleaned := strings.TrimFunc(s, isIgnorable)
	digits := strings.TrimPrefix(cleaned, "-")
	if digits == "" {
		return nil, typeErrorf("%q", s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return nil, typeErrorf("%q", s)
		}
	}
	v, ok := new(big.Int).SetString(cleaned, 10)
	if !ok {
		return nil, typeErrorf("%q", s)
	}
	return v, nil
}
