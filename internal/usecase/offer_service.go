package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/partsflow/backend/internal/domain"
	"go.uber.org/zap"
)

// categoryBasePrices is the canonical per-category unit price table before
// the supplier multiplier is applied.
var categoryBasePrices = map[string]float64{
	"brakes":       50,
	"filters":      15,
	"engine":       200,
	"electrical":   120,
	"suspension":   100,
	"steering":     80,
	"fuel":         60,
	"interior":     40,
	"exterior":     30,
	"accessories":  25,
	"cooling":      70,
	"exhaust":      90,
	"transmission": 150,
	"ignition":     45,
}

const defaultBasePrice = 50.0

// Simulated stock is a pseudo-random integer in [availabilityFloor,
// availabilityFloor+availabilitySpan-1], modeling supplier-side fluctuation.
const (
	availabilityFloor = 100
	availabilitySpan  = 1000
)

// Scoring weights: supplier reputation (0-100), inverse per-unit price
// (0-100, floored at 0), and discount magnitude (0-50)
const (
	ratingWeight    = 20.0
	unitPriceWeight = 2.0
	discountWeight  = 50.0
)

// Recommendation thresholds
const (
	highValueOrderThreshold = 1000.0
	topSupplierRating       = 4.5
	smallOrderQuantity      = 50
)

// ProcurementConfig holds configuration for the procurement service
type ProcurementConfig struct {
	// Rand drives the availability simulation. Leave nil for a
	// time-seeded source; tests inject a fixed seed to pin outcomes.
	Rand *rand.Rand
}

// ProcurementService runs the full pipeline: interpret the query, match
// products, synthesize priced supplier offers, rank them, and derive
// recommendations. Stateless per call apart from the randomness source.
type ProcurementService struct {
	catalog     domain.Catalog
	interpreter *QueryInterpreter
	matcher     *ProductMatcher
	logger      *zap.Logger

	randMu sync.Mutex
	rand   *rand.Rand
}

// NewProcurementService creates the pipeline service with its dependencies
func NewProcurementService(
	catalog domain.Catalog,
	interpreter *QueryInterpreter,
	config ProcurementConfig,
	logger *zap.Logger,
) *ProcurementService {
	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &ProcurementService{
		catalog:     catalog,
		interpreter: interpreter,
		matcher:     NewProductMatcher(catalog),
		logger:      logger,
		rand:        rng,
	}
}

// Process handles one procurement request end to end.
func (s *ProcurementService) Process(ctx context.Context, request *domain.ProcurementRequest) (*domain.ProcurementResponse, error) {
	start := time.Now()

	if strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrMissingQuery
	}

	parsed := s.interpreter.Interpret(ctx, request.Query)

	products := s.matcher.Match(parsed)
	if len(products) == 0 {
		return &domain.ProcurementResponse{
			Query:       request.Query,
			ParsedQuery: *parsed,
			Offers:      []domain.SupplierOffer{},
			TotalOffers: 0,
			Recommendations: []string{
				"No products found matching your criteria. Please try a different search term.",
			},
			ProcessingTime: time.Since(start).Milliseconds(),
		}, nil
	}

	offers := s.synthesizeOffers(products, request, parsed)

	// Stable sort keeps synthesis order for equal scores
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Score > offers[j].Score
	})

	recommendations := generateRecommendations(offers, parsed)

	response := &domain.ProcurementResponse{
		Query:           request.Query,
		ParsedQuery:     *parsed,
		Offers:          offers,
		TotalOffers:     len(offers),
		Recommendations: recommendations,
		ProcessingTime:  time.Since(start).Milliseconds(),
	}
	if len(offers) > 0 {
		response.BestOffer = &offers[0]
	}

	s.logger.Debug("procurement request processed",
		zap.String("query", request.Query),
		zap.Int("products", len(products)),
		zap.Int("offers", len(offers)))

	return response, nil
}

// synthesizeOffers builds a priced offer for every (product, supplier) pair
// where the supplier specializes in the product's category and simulated
// stock covers the requested quantity.
func (s *ProcurementService) synthesizeOffers(
	products []domain.Product,
	request *domain.ProcurementRequest,
	parsed *domain.ParsedQuery,
) []domain.SupplierOffer {
	quantity := 1
	if request.Quantity != nil {
		quantity = *request.Quantity
	} else if parsed.Quantity != nil {
		quantity = *parsed.Quantity
	}
	// A non-positive quantity would slip past the availability check and
	// price a negative fulfillment; fall back to the single-unit default
	if quantity < 1 {
		quantity = 1
	}

	offers := []domain.SupplierOffer{}
	for _, product := range products {
		suppliers := s.catalog.SuppliersBySpecialization(product.Category)
		for _, supplier := range suppliers {
			available := s.simulateAvailability()
			if available < quantity {
				continue
			}
			offers = append(offers, buildOffer(product, supplier, quantity, available))
		}
	}
	return offers
}

func (s *ProcurementService) simulateAvailability() int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return availabilityFloor + s.rand.Intn(availabilitySpan)
}

// buildOffer prices a single (product, supplier) pair.
func buildOffer(product domain.Product, supplier domain.Supplier, requested, available int) domain.SupplierOffer {
	basePrice := unitBasePrice(product.Category, supplier.Rating)

	fulfilled := requested
	if available < fulfilled {
		fulfilled = available
	}

	totalCost := round2(basePrice * float64(fulfilled))
	discount := firstQualifyingDiscount(supplier.BulkDiscount, fulfilled)
	discountedCost := totalCost * (1 - discount)

	shippingCost := supplier.ShippingCost
	if discountedCost >= supplier.FreeShippingThreshold {
		shippingCost = 0
	}

	finalPrice := round2(discountedCost + shippingCost)

	return domain.SupplierOffer{
		Supplier:            supplier,
		Product:             product,
		Price:               basePrice,
		QuantityAvailable:   available,
		DeliveryTime:        supplier.DeliveryTime,
		TotalCost:           totalCost,
		ShippingCost:        shippingCost,
		BulkDiscountApplied: discount,
		FinalPrice:          finalPrice,
		Score:               offerScore(supplier.Rating, finalPrice, fulfilled, discount),
	}
}

// unitBasePrice derives the per-unit price from the category table and the
// supplier rating multiplier, which spans [0.8, 1.2].
func unitBasePrice(category string, rating float64) float64 {
	base, ok := categoryBasePrices[category]
	if !ok {
		base = defaultBasePrice
	}
	multiplier := 0.8 + (rating/5)*0.4
	return round2(base * multiplier)
}

// firstQualifyingDiscount returns the rate of the first tier, in stored key
// order, whose threshold the fulfilled quantity satisfies. First match, not
// best match. Thresholds may carry a trailing "+".
func firstQualifyingDiscount(tiers domain.DiscountTiers, fulfilled int) float64 {
	for _, tier := range tiers {
		threshold, err := strconv.Atoi(strings.TrimSuffix(tier.Threshold, "+"))
		if err != nil {
			continue
		}
		if fulfilled >= threshold {
			return tier.Rate
		}
	}
	return 0
}

// offerScore blends supplier rating, inverse per-unit price, and discount
// magnitude into a single ranking number.
func offerScore(rating, finalPrice float64, fulfilled int, discount float64) int {
	ratingScore := rating * ratingWeight
	priceScore := math.Max(0, 100-(finalPrice/float64(fulfilled))*unitPriceWeight)
	discountScore := discount * discountWeight
	return int(math.Round(ratingScore + priceScore + discountScore))
}

// generateRecommendations derives guidance strings from the ranked offers
// and the parsed intent. Rules are additive; several may apply at once.
func generateRecommendations(offers []domain.SupplierOffer, parsed *domain.ParsedQuery) []string {
	if len(offers) == 0 {
		return []string{"No offers found. Consider broadening your search criteria."}
	}

	recommendations := []string{}
	best := offers[0]

	if best.FinalPrice > highValueOrderThreshold {
		recommendations = append(recommendations,
			"Consider ordering in larger quantities to qualify for bulk discounts.")
	}

	if best.Supplier.Rating >= topSupplierRating {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highly recommended supplier: %s (%.1f/5 rating)",
			best.Supplier.Name, best.Supplier.Rating))
	}

	if parsed.Urgency != nil && *parsed.Urgency == "high" {
		recommendations = append(recommendations,
			"For urgent orders, consider suppliers with faster delivery times.")
	}

	if parsed.Quantity != nil && *parsed.Quantity < smallOrderQuantity {
		recommendations = append(recommendations,
			"Consider ordering larger quantities to benefit from bulk pricing.")
	}

	return recommendations
}

// round2 rounds a currency amount to 2 decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
