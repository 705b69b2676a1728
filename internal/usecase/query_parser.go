package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/partsflow/backend/internal/domain"
)

// digitRunRegex matches the first run of digits anywhere in the query
var digitRunRegex = regexp.MustCompile(`\d+`)

// phraseRule binds a specific product-name phrase to its category.
type phraseRule struct {
	phrase   string
	category string
}

// productPhraseRules maps product phrases to categories. Scanning stops at
// the first phrase contained in the query, so definition order is the
// tie-break: "brake pads" must precede "brake pad", and so on.
var productPhraseRules = []phraseRule{
	{"brake pads", "brakes"},
	{"brake pad", "brakes"},
	{"brake rotor", "brakes"},
	{"brake fluid", "brakes"},
	{"brake hose", "brakes"},
	{"master cylinder", "brakes"},
	{"air filter", "filters"},
	{"oil filter", "filters"},
	{"cabin air filter", "filters"},
	{"fuel filter", "filters"},
	{"transmission filter", "filters"},
	{"power steering filter", "filters"},
	{"hydraulic filter", "filters"},
	{"spark plug", "engine"},
	{"alternator", "electrical"},
	{"ignition coil", "electrical"},
	{"engine kit", "engine"},
	{"timing chain", "engine"},
	{"crankshaft", "engine"},
	{"camshaft", "engine"},
	{"oil pump", "engine"},
	{"engine block", "engine"},
	{"suspension component", "suspension"},
	{"shock absorber", "suspension"},
	{"spring", "suspension"},
	{"control arm", "suspension"},
	{"battery", "electrical"},
	{"led headlight", "electrical"},
	{"wireless charger", "electrical"},
	{"gps tracker", "electrical"},
	{"solar panel", "electrical"},
	{"fuel pump", "fuel"},
	{"fuel injector", "fuel"},
	{"fuel tank", "fuel"},
	{"steering wheel", "steering"},
	{"steering rack", "steering"},
	{"tie rod", "steering"},
	{"radiator", "cooling"},
	{"water pump", "cooling"},
	{"thermostat", "cooling"},
	{"exhaust pipe", "exhaust"},
	{"muffler", "exhaust"},
	{"catalytic converter", "exhaust"},
	{"clutch", "transmission"},
	{"gearbox", "transmission"},
	{"drive shaft", "transmission"},
}

// categoryNames is the fallback scan list when no product phrase matched.
// First containment match wins.
var categoryNames = []string{
	"brakes", "filters", "engine", "suspension", "steering", "fuel",
	"interior", "exterior", "accessories", "cooling", "exhaust",
	"transmission", "electrical", "ignition",
}

// vehicleBrands are the brand names recognized in queries, matched in order.
var vehicleBrands = []string{
	"toyota", "honda", "nissan", "ford", "chevrolet", "bmw",
	"mercedes", "audi", "volkswagen", "hyundai", "kia", "mazda",
}

// RuleBasedParser extracts structured intent from a query using fixed
// keyword tables. It is deterministic, never fails, and serves as the
// mandatory fallback for the AI-backed parser.
type RuleBasedParser struct{}

// NewRuleBasedParser creates a rule-based query parser
func NewRuleBasedParser() *RuleBasedParser {
	return &RuleBasedParser{}
}

// Parse runs the keyword rules over the query and returns the extracted
// intent. Fields the query does not mention stay nil.
func (p *RuleBasedParser) Parse(query string) *domain.ParsedQuery {
	lower := strings.ToLower(query)
	parsed := &domain.ParsedQuery{}

	// Specific product phrase first; the first matching rule sets both
	// name and category and stops the scan
	for _, rule := range productPhraseRules {
		if strings.Contains(lower, rule.phrase) {
			name := rule.phrase
			category := rule.category
			parsed.ProductName = &name
			parsed.ProductCategory = &category
			break
		}
	}

	// Bare category name if no phrase matched
	if parsed.ProductCategory == nil {
		for _, category := range categoryNames {
			if strings.Contains(lower, category) {
				c := category
				parsed.ProductCategory = &c
				break
			}
		}
	}

	// Vehicle brand, capitalized
	for _, brand := range vehicleBrands {
		if strings.Contains(lower, brand) {
			b := capitalize(brand)
			parsed.Brand = &b
			break
		}
	}

	// Quantity is the first run of digits anywhere in the query
	if digits := digitRunRegex.FindString(lower); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			parsed.Quantity = &n
		}
	}

	if urgency := extractUrgency(lower); urgency != "" {
		parsed.Urgency = &urgency
	}

	if pref := extractPricePreference(lower); pref != "" {
		parsed.PricePreference = &pref
	}

	return parsed
}

func extractUrgency(lower string) string {
	switch {
	case strings.Contains(lower, "urgent") || strings.Contains(lower, "asap"):
		return "high"
	case strings.Contains(lower, "soon"):
		return "medium"
	}
	return ""
}

func extractPricePreference(lower string) string {
	switch {
	case strings.Contains(lower, "cheap") || strings.Contains(lower, "budget"):
		return "budget"
	case strings.Contains(lower, "premium") || strings.Contains(lower, "high-end"):
		return "premium"
	case strings.Contains(lower, "mid"):
		return "mid-range"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
