package usecase

import (
	"strings"

	"github.com/partsflow/backend/internal/domain"
)

// ProductMatcher selects candidate products for a parsed query using a
// tiered strategy: category, then name/SKU, then an optional brand filter,
// then a last-resort fuzzy pass. An empty result is a valid outcome.
type ProductMatcher struct {
	catalog domain.Catalog
}

// NewProductMatcher creates a product matcher over the given catalog
func NewProductMatcher(catalog domain.Catalog) *ProductMatcher {
	return &ProductMatcher{catalog: catalog}
}

// Match returns the candidate products for the parsed query.
func (m *ProductMatcher) Match(parsed *domain.ParsedQuery) []domain.Product {
	var matches []domain.Product

	if parsed.ProductCategory != nil {
		matches = m.catalog.ProductsByCategory(*parsed.ProductCategory)
	}

	if len(matches) == 0 && parsed.ProductName != nil {
		matches = m.catalog.ProductsByName(*parsed.ProductName)
	}

	// Narrow by brand only when an earlier tier produced candidates; a
	// product qualifies if its brand or any compatibility entry contains
	// the requested brand
	if parsed.Brand != nil && len(matches) > 0 {
		matches = filterByBrand(matches, *parsed.Brand)
	}

	if len(matches) == 0 {
		matches = m.fuzzyMatch(parsed)
	}

	return matches
}

func filterByBrand(products []domain.Product, brand string) []domain.Product {
	needle := strings.ToLower(brand)
	var filtered []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Brand), needle) {
			filtered = append(filtered, p)
			continue
		}
		for _, comp := range p.Compatibility {
			if strings.Contains(strings.ToLower(comp), needle) {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// fuzzyMatch is the final pass: the category and name are concatenated into
// one lowercase query and matched against product name, category, and SKU.
// An empty query matches nothing.
func (m *ProductMatcher) fuzzyMatch(parsed *domain.ParsedQuery) []domain.Product {
	var parts []string
	if parsed.ProductCategory != nil {
		parts = append(parts, *parsed.ProductCategory)
	}
	if parsed.ProductName != nil {
		parts = append(parts, *parsed.ProductName)
	}

	query := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
	if query == "" {
		return nil
	}

	var matches []domain.Product
	for _, p := range m.catalog.Products(0) {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) ||
			strings.Contains(strings.ToLower(p.SKU), query) {
			matches = append(matches, p)
		}
	}
	return matches
}
