package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("duplicate key"), false},
		{"unique", &pq.Error{Code: "23505"}, true},
		{"wrapped unique", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"other pq", &pq.Error{Code: "23502"}, false},
	}
	for _, tt := range tests {
		if got := isUniqueViolation(tt.err); got != tt.want {
			t.Errorf("%s: isUniqueViolation = %v; want %v", tt.name, got, tt.want)
		}
	}
}
