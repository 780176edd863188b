package idgen

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/Siddarth2230/base62/pkg/base62"
)

// HashGenerator derives deterministic base62 codes from arbitrary input.
// It hashes the input (SHA256), keeps the first nBytes bytes of the digest
// as a big-endian integer, and encodes that with base62.
// 6 bytes -> 48 bits -> at most 9 characters; 32 bytes keeps the full digest
// and yields codes of up to 43 characters.
type HashGenerator struct {
	nBytes int // how many bytes from the hash to use (1..32)
}

// NewHashGenerator returns a HashGenerator which uses nBytes of the hash.
func NewHashGenerator(nBytes int) (*HashGenerator, error) {
	if nBytes < 1 || nBytes > sha256.Size {
		return nil, errors.New("nBytes must be between 1 and 32")
	}
	return &HashGenerator{nBytes: nBytes}, nil
}

// Sum returns the code for data. Same data => same code.
// Truncated digests can collide; callers that need uniqueness must check.
func (g *HashGenerator) Sum(data []byte) string {
	hash := sha256.Sum256(data)
	v := new(big.Int).SetBytes(hash[:g.nBytes])
	code, _ := base62.Encode(v) // SetBytes is never negative
	return code
}
