package domain

import "context"

// Unit is one segmented vendor record as it appeared in the source catalog.
// RawText is preserved verbatim between ingest and retrieval.
type Unit struct {
	RawText       string
	SequenceIndex int // 1-based position assigned at segmentation time
}

// Candidate is a unit returned from the index together with its stored
// embedding and its similarity to the query vector.
type Candidate struct {
	Unit       Unit
	Embedding  []float32
	Similarity float32
}

// Attributes is the fixed vendor schema. Every field is always set: either
// the extracted value or the "no information" sentinel.
type Attributes struct {
	Name            string
	VendorID        string
	Aliases         string
	InterviewStatus string
	Category        string
	IndustryTags    string
	TechStack       string
	PriceRange      string
	Deployment      string
	Strengths       string
	ServiceSummary  string
	Description     string
	URL             string
}

// TokenUsage is a reporting-only record computed after generation.
type TokenUsage struct {
	QuestionTokens     int
	ContextTokens      int
	ResponseTokens     int
	TotalTokens        int
	DocumentsRetrieved int
	Model              string
}

// Embedder converts text into a fixed-dimension vector. The same embedder
// must be used at ingest and query time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index persists embedded units and serves nearest-neighbor queries.
type Index interface {
	// Rebuild wipes the index and repopulates it from the given units.
	// A failed rebuild leaves the index absent or in its prior state,
	// never half-populated.
	Rebuild(ctx context.Context, units []Unit, embed Embedder) error
	// Query returns up to k stored units, nearest to vector first.
	Query(ctx context.Context, vector []float32, k int) ([]Candidate, error)
	// Count reports the number of stored units, 0 when empty or absent.
	Count() int
}

// Parser extracts vendor attributes from a unit's raw text. Absence of a
// field is data, not failure: implementations substitute a sentinel and
// never error on missing fields.
type Parser interface {
	Parse(text string) Attributes
}
