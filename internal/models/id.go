package models

import "time"

// IssuedID is one code handed out by POST /ids. Value is the decimal text of
// the decoded integer so it survives JSON and NUMERIC columns unchanged.
type IssuedID struct {
	ID        int64     `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Value     string    `json:"value" db:"value"`
	Generator string    `json:"generator" db:"generator"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EncodeResponse struct {
	Value string `json:"value"`
	Code  string `json:"code"`
}

type DecodeResponse struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type CleanRequest struct {
	Input string `json:"input"`
}

type CleanResponse struct {
	Input   string `json:"input"`
	Cleaned string `json:"cleaned"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

type DigestRequest struct {
	Input string `json:"input"`
}

type DigestResponse struct {
	Code string `json:"code"`
}

// ErrorResponse is the body of every non-2xx reply. The character fields are
// set only for invalid base62 input.
type ErrorResponse struct {
	Error     string `json:"error"`
	Char      string `json:"char,omitempty"`
	Position  *int   `json:"position,omitempty"`
	CodePoint string `json:"codepoint,omitempty"`
}
