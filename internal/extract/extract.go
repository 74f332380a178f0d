// Package extract parses the semi-structured text of a retrieved vendor
// unit into the fixed attribute schema.
package extract

import (
	"regexp"
	"strings"

	"vendorrag/internal/domain"
)

// Sentinel stands in for any field whose pattern does not match. It is
// surfaced to the user and to the language model as a signal of missing
// data, not an error.
const Sentinel = "no information"

// Each field is anchored on its label and the full-width field separator
// used by the catalog convention "<label>: <value> ｜".
var (
	nameRe            = regexp.MustCompile(`Vendor \d+: (.+?) ｜`)
	vendorIDRe        = regexp.MustCompile(`Vendor ID: (.+?) ｜`)
	aliasesRe         = regexp.MustCompile(`Aliases: (.+?) ｜`)
	interviewStatusRe = regexp.MustCompile(`Interview Status: (.+?) ｜`)
	categoryRe        = regexp.MustCompile(`Category: (.+?) ｜`)
	industryTagsRe    = regexp.MustCompile(`Industry Tags: (.+?) ｜`)
	techStackRe       = regexp.MustCompile(`Tech Stack: (.+?) ｜`)
	priceRangeRe      = regexp.MustCompile(`Price Range: (.+?) ｜`)
	deploymentRe      = regexp.MustCompile(`Deployment: (.+?) ｜`)
	strengthsRe       = regexp.MustCompile(`Strengths: (.+?) ｜`)
	serviceSummaryRe  = regexp.MustCompile(`Service Summary: (.+?) ｜`)
	descriptionRe     = regexp.MustCompile(`Description: (.+?) ｜`)
	urlRe             = regexp.MustCompile(`URL: (.+?) ｜`)
)

// RegexParser implements domain.Parser with anchored label patterns.
// It is the default record parser; stricter structured formats can
// replace it behind the same interface without touching callers.
type RegexParser struct{}

// NewParser returns the pattern-matching vendor record parser.
func NewParser() RegexParser { return RegexParser{} }

// Parse extracts all schema fields from text. It is a pure function of
// its input and never fails: a field whose pattern does not match is set
// to the sentinel.
func (RegexParser) Parse(text string) domain.Attributes {
	return domain.Attributes{
		Name:            first(nameRe, text),
		VendorID:        first(vendorIDRe, text),
		Aliases:         first(aliasesRe, text),
		InterviewStatus: first(interviewStatusRe, text),
		Category:        first(categoryRe, text),
		IndustryTags:    first(industryTagsRe, text),
		TechStack:       first(techStackRe, text),
		PriceRange:      first(priceRangeRe, text),
		Deployment:      first(deploymentRe, text),
		Strengths:       first(strengthsRe, text),
		ServiceSummary:  first(serviceSummaryRe, text),
		Description:     first(descriptionRe, text),
		URL:             first(urlRe, text),
	}
}

func first(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return Sentinel
	}
	return strings.TrimSpace(m[1])
}
