// Package tokens computes the reporting-only usage record attached to a
// completed query.
package tokens

import (
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"vendorrag/internal/domain"
)

// Count returns the token count of text under the given model's encoding,
// falling back to a rough one-token-per-four-characters estimate when the
// encoding is unavailable.
func Count(text, model string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return len(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}

// Usage builds the usage record for one completed query. Context tokens
// are counted over the raw text of the retrieved units, matching what was
// actually sent downstream.
func Usage(question, response, model string, units []domain.Unit) domain.TokenUsage {
	var raw strings.Builder
	for _, u := range units {
		raw.WriteString(u.RawText)
		raw.WriteString("\n")
	}
	q := Count(question, model)
	c := Count(raw.String(), model)
	r := Count(response, model)
	return domain.TokenUsage{
		QuestionTokens:     q,
		ContextTokens:      c,
		ResponseTokens:     r,
		TotalTokens:        q + c + r,
		DocumentsRetrieved: len(units),
		Model:              model,
	}
}
