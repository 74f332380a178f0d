package domain

import "errors"

var (
	// ErrNoCredentials indicates no API key could be resolved from the
	// environment or the key file.
	ErrNoCredentials = errors.New("no API key configured")

	// ErrIndexMissing indicates the index directory does not exist.
	ErrIndexMissing = errors.New("vector index not found")

	// ErrIndexEmpty indicates the index exists but holds zero units.
	ErrIndexEmpty = errors.New("vector index is empty")

	// ErrIndexNotReady indicates a query was attempted before the index
	// was opened.
	ErrIndexNotReady = errors.New("vector index not opened")

	// ErrNoVendors indicates the catalog contained no recognizable
	// vendor entries.
	ErrNoVendors = errors.New("no vendor entries found in catalog")
)

// RetrievalError wraps an embedding or nearest-neighbor lookup failure.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return "retrieval failed: " + e.Err.Error() }
func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError wraps a language-model call failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "answer generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }
