package answer

import (
	"fmt"
	"strings"

	"vendorrag/internal/domain"
)

// Assemble renders the extracted attributes of every unit into one
// context block for the language model. Output is deterministic, keeps
// the input order, and transcribes field values exactly; the grounding
// contract downstream depends on that.
func Assemble(units []domain.Unit, parser domain.Parser) string {
	blocks := make([]string, 0, len(units))
	for i, u := range units {
		a := parser.Parse(u.RawText)
		block := fmt.Sprintf(`## Vendor %d
- **Name**: %s
- **Vendor ID**: %s
- **Aliases**: %s
- **Interview Status**: %s
- **Category**: %s
- **Industry Tags**: %s
- **Tech Stack**: %s
- **Price Range**: %s
- **Deployment**: %s
- **Strengths**: %s
- **Service Summary**: %s
- **Description**: %s
- **URL**: %s`,
			i+1, a.Name, a.VendorID, a.Aliases, a.InterviewStatus, a.Category,
			a.IndustryTags, a.TechStack, a.PriceRange, a.Deployment,
			a.Strengths, a.ServiceSummary, a.Description, a.URL)
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}
