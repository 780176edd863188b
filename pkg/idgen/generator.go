package idgen

import "context"

// Generator produces base62 codes for freshly issued identifiers.
type Generator interface {
	Generate(ctx context.Context) (string, error)
	Name() string
}
