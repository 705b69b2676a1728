package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/partsflow/backend/internal/domain"
	"go.uber.org/zap"
)

// Store holds the in-memory product and supplier catalog. It is populated
// once at construction and read-only afterwards, so concurrent reads need
// no locking.
type Store struct {
	products  []domain.Product
	suppliers []domain.Supplier
	logger    *zap.Logger
}

// NewStore loads the catalog from the given JSON sources. Each product file
// may be a bare array or an object with a "products" key; the supplier file
// may be a bare array or an object with a "suppliers" key. A missing or
// malformed source is logged and skipped - catalog construction never fails
// on a bad file.
func NewStore(productFiles []string, supplierFile string, logger *zap.Logger) *Store {
	s := &Store{logger: logger}

	for _, file := range productFiles {
		products, err := loadProductFile(file)
		if err != nil {
			logger.Warn("skipping product source",
				zap.String("file", file),
				zap.Error(err))
			continue
		}
		s.products = append(s.products, products...)
	}

	suppliers, err := loadSupplierFile(supplierFile)
	if err != nil {
		logger.Warn("skipping supplier source",
			zap.String("file", supplierFile),
			zap.Error(err))
	} else {
		s.suppliers = suppliers
	}

	logger.Info("catalog loaded",
		zap.Int("products", len(s.products)),
		zap.Int("suppliers", len(s.suppliers)))

	return s
}

func loadProductFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []domain.Product
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("not a product array or object: %w", err)
	}
	if wrapped.Products == nil {
		return nil, fmt.Errorf("object has no products key")
	}
	return wrapped.Products, nil
}

func loadSupplierFile(path string) ([]domain.Supplier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []domain.Supplier
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Suppliers []domain.Supplier `json:"suppliers"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("not a supplier array or object: %w", err)
	}
	if wrapped.Suppliers == nil {
		return nil, fmt.Errorf("object has no suppliers key")
	}
	return wrapped.Suppliers, nil
}

// Products returns the catalog's products in load order, truncated to
// limit when limit > 0.
func (s *Store) Products(limit int) []domain.Product {
	if limit > 0 && limit < len(s.products) {
		return s.products[:limit]
	}
	return s.products
}

// Suppliers returns all suppliers in load order.
func (s *Store) Suppliers() []domain.Supplier {
	return s.suppliers
}

// ProductsByCategory returns products whose category contains the given
// text, case-insensitively.
func (s *Store) ProductsByCategory(category string) []domain.Product {
	needle := strings.ToLower(category)
	var matches []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Category), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ProductsByName returns products whose name or SKU contains the given
// text, case-insensitively.
func (s *Store) ProductsByName(name string) []domain.Product {
	needle := strings.ToLower(name)
	var matches []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ProductsByBrand returns products whose brand contains the given text,
// case-insensitively.
func (s *Store) ProductsByBrand(brand string) []domain.Product {
	needle := strings.ToLower(brand)
	var matches []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Brand), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// SuppliersBySpecialization returns suppliers whose specialization contains
// the given text, case-insensitively.
func (s *Store) SuppliersBySpecialization(specialization string) []domain.Supplier {
	needle := strings.ToLower(specialization)
	var matches []domain.Supplier
	for _, sup := range s.suppliers {
		if strings.Contains(strings.ToLower(sup.Specialization), needle) {
			matches = append(matches, sup)
		}
	}
	return matches
}

// Categories returns the distinct product categories in first-seen order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Brands returns the distinct product brands in first-seen order.
func (s *Store) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, p := range s.products {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands
}
