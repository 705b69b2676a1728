package domain

import "context"

// Catalog defines read-only access to the product/supplier catalog.
// All text lookups are case-insensitive substring matches over the
// relevant field; this fuzziness is a deliberate matching policy.
type Catalog interface {
	Products(limit int) []Product
	Suppliers() []Supplier
	ProductsByCategory(category string) []Product
	ProductsByName(name string) []Product
	ProductsByBrand(brand string) []Product
	SuppliersBySpecialization(specialization string) []Supplier
	Categories() []string
	Brands() []string
}

// QueryParser extracts structured intent from a free-text procurement query.
// Implementations backed by an external service may fail; callers are
// expected to fall back to rule-based parsing on any error.
type QueryParser interface {
	ParseQuery(ctx context.Context, query string) (*ParsedQuery, error)
}
