package enrich

import (
	"strings"

	"github.com/deckworks/slidesearch/internal/deck"
)

// Category labels. Every slide gets exactly one.
const (
	CategoryECommerce      = "eCommerce"
	CategoryLeadGeneration = "Lead Generation"
	CategoryCaseStudies    = "Case Studies"
	CategoryPricing        = "Pricing"
	CategoryFeatures       = "Features"
	CategoryDemos          = "Demos"
	CategoryContact        = "Contact"
	CategorySolutions      = "Solutions"
	CategoryAboutUs        = "About Us"
	CategoryNavigation     = "Navigation"
	CategoryMetrics        = "Metrics & Results"
	CategoryGeneral        = "General"
)

// Categories returns the closed label set.
func Categories() []string {
	return []string{
		CategoryECommerce,
		CategoryLeadGeneration,
		CategoryCaseStudies,
		CategoryPricing,
		CategoryFeatures,
		CategoryDemos,
		CategoryContact,
		CategorySolutions,
		CategoryAboutUs,
		CategoryNavigation,
		CategoryMetrics,
		CategoryGeneral,
	}
}

// contentRules are evaluated in order against the lower-cased concatenation
// of extracted text, notes and deck name; the first hit wins. Matching is
// plain substring containment, not word-boundary matching, so "pricing"
// matches inside "outpricing". That looseness is a known limitation kept on
// purpose: the labels were tuned against it.
var contentRules = []struct {
	label    string
	keywords []string
}{
	{CategoryCaseStudies, []string{"case stud", "client", "customer", "testimonial", "result", "success"}},
	{CategoryPricing, []string{"pricing", "cost", "$", "price", "plan", "subscription"}},
	{CategoryFeatures, []string{"feature", "capability", "functionality", "benefit"}},
	{CategoryDemos, []string{"demo", "example", "showcase", "overview"}},
	{CategoryContact, []string{"contact", "email", "phone", "@", "reach", "get in touch"}},
	{CategorySolutions, []string{"problem", "solution", "challenge", "solve"}},
	{CategoryAboutUs, []string{"team", "about", "company", "founder"}},
	{CategoryNavigation, []string{"index", "table of content", "overview"}},
}

var (
	pricingHints = []string{"pricing", "cost", "$", "price"}
	contactHints = []string{"contact", "email", "phone", "@"}
)

// Classify assigns a single category. Rule order is load-bearing: index
// metadata outranks deck-name rules, which outrank content keywords, so a
// slide the index marks eCommerce stays eCommerce even when its text screams
// pricing.
func Classify(text, notes, deckName string, elements []deck.Element, idx *deck.IndexRecord) string {
	content := strings.ToLower(text + " " + notes + " " + deckName)

	if idx != nil {
		switch {
		case idx.Type == "eCommerce":
			return CategoryECommerce
		case idx.Type == "Lead Generation":
			return CategoryLeadGeneration
		case strings.Contains(strings.ToLower(idx.Industry), "case stud"):
			return CategoryCaseStudies
		}
	}

	deckLower := strings.ToLower(deckName)
	if strings.Contains(deckLower, "case stud") {
		return CategoryCaseStudies
	}
	if strings.Contains(deckLower, "sales") {
		if containsAny(content, pricingHints) {
			return CategoryPricing
		}
		if containsAny(content, contactHints) {
			return CategoryContact
		}
	}

	for _, rule := range contentRules {
		if containsAny(content, rule.keywords) {
			return rule.label
		}
	}

	for _, el := range elements {
		if containsDigit(el.Text) &&
			(strings.Contains(el.Text, "%") || strings.Contains(el.Text, "rating") || strings.Contains(el.Text, "month")) {
			return CategoryMetrics
		}
	}

	return CategoryGeneral
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
