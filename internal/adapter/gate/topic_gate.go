// Package gate implements the keyword pre-filter that decides whether a
// query should trigger retrieval at all. A false positive costs one
// extra retrieval; a false negative silently degrades answer quality,
// so the matcher is deliberately over-inclusive: plain case-insensitive
// substring containment, no stemming, no negation handling.
package gate

import "strings"

// DefaultKeywords covers the lending domain of the bundled knowledge
// base.
var DefaultKeywords = []string{
	"loan",
	"borrow",
	"financing",
	"interest",
	"rate",
	"apr",
	"payment",
	"credit",
	"eligibility",
	"document",
	"requirement",
	"apply",
	"approval",
	"auto",
	"car",
	"vehicle",
	"personal",
	"mortgage",
	"refinance",
	"down payment",
	"monthly payment",
	"term",
	"collateral",
	"cosigner",
	"prepayment",
	"default",
	"insurance",
	"gap insurance",
}

type TopicGate struct {
	keywords []string
}

// New creates a gate over the given keywords. An empty list falls back
// to DefaultKeywords.
func New(keywords []string) *TopicGate {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &TopicGate{keywords: lowered}
}

// ShouldRetrieve reports whether any keyword appears anywhere in the
// query.
func (g *TopicGate) ShouldRetrieve(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range g.keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
