package domain

import "errors"

var (
	// ErrDuplicateKey is returned when an insert violates a uniqueness constraint.
	// Store methods wrap the driver error with it so callers can use errors.Is.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInternRetriesExhausted is returned when a lexicon entry could neither be found nor created
	ErrInternRetriesExhausted = errors.New("lexicon intern retries exhausted")

	// ErrUnknownLexicon is returned for a lexicon name the store has no table for
	ErrUnknownLexicon = errors.New("unknown lexicon")
)
