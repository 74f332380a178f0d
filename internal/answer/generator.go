// Package answer assembles retrieved vendor context and drives the
// language model under a strict answer-only-from-context contract.
package answer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"vendorrag/internal/domain"
)

const systemPrompt = `You are a vendor information assistant.
Answer the user's question using only the vendor information provided.

Rules:
1. Generate the answer strictly from the provided vendor information.
2. Never infer missing details; write "no information" for anything not present.
3. Organize the answer per vendor in readable Markdown.
4. Include only vendors relevant to the question.
5. Transcribe vendor fields verbatim, without paraphrasing.

Answer format:
` + "```markdown" + `
[Question]
{question}

[Answer]
## Vendor 1
- **Name**:
- **Category**:
- **Industry Tags**:
- **Service Summary**:
- **Strengths**:
- **Price Range**:
- **Interview Status**:

## Vendor 2
(continue likewise)
` + "```"

// ChatClient is the narrow language-model surface the generator needs.
type ChatClient interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

// Generator produces the grounded, templated answer.
type Generator struct {
	chat   ChatClient
	parser domain.Parser
}

func NewGenerator(chat ChatClient, parser domain.Parser) *Generator {
	return &Generator{chat: chat, parser: parser}
}

// Generate answers the question from the retrieved units. With no units
// the model is not called at all and a fixed template embedding the
// question is returned. Model failures surface as *domain.GenerationError
// for the boundary layer to render.
func (g *Generator) Generate(ctx context.Context, model, question string, units []domain.Unit) (string, error) {
	if len(units) == 0 {
		return NoResults(question), nil
	}
	user := fmt.Sprintf("Question: %s\n\nVendor information:\n%s\n\nAnswer the question using only the vendor information above.",
		question, Assemble(units, g.parser))
	raw, err := g.chat.Complete(ctx, model, systemPrompt, user)
	if err != nil {
		return "", &domain.GenerationError{Err: err}
	}
	return PostProcess(raw), nil
}

// NoResults is the deterministic answer for a query that retrieved
// nothing. Byte-identical across calls for the same question.
func NoResults(question string) string {
	return fmt.Sprintf(`[Question]
%s

[Answer]
No vendor information matching your question was found.

Try the following:
- Rephrase the question with different keywords
- Name a specific industry or category
- Search by tech stack or service description`, question)
}

var newlineRuns = regexp.MustCompile(`\n{3,}`)

// PostProcess collapses runs of three or more newlines to exactly two and
// trims surrounding whitespace. No other rewriting; idempotent.
func PostProcess(s string) string {
	return strings.TrimSpace(newlineRuns.ReplaceAllString(s, "\n\n"))
}
