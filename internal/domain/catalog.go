package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product represents an automotive part in the catalog.
// Products are immutable once loaded; identity is the SKU.
type Product struct {
	SKU            string                 `json:"sku"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	Brand          string                 `json:"brand"`
	Compatibility  []string               `json:"compatibility"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Dimensions     Dimensions             `json:"dimensions"`
	Weight         string                 `json:"weight"`
	Warranty       string                 `json:"warranty"`
	Certifications []string               `json:"certifications"`
	Description    string                 `json:"description"`
}

// Dimensions holds formatted length/width/height strings, e.g. "155mm".
type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Supplier represents a parts supplier. Immutable once loaded; identity is ID.
type Supplier struct {
	ID                    string        `json:"id"`
	Name                  string        `json:"name"`
	Specialization        string        `json:"specialization"`
	Location              string        `json:"location"`
	Rating                float64       `json:"rating"` // 0.0-5.0
	DeliveryTime          string        `json:"delivery_time"`
	MinimumOrder          int           `json:"minimum_order"`
	BulkDiscount          DiscountTiers `json:"bulk_discount"`
	PaymentTerms          string        `json:"payment_terms"`
	ShippingCost          float64       `json:"shipping_cost"`
	FreeShippingThreshold float64       `json:"free_shipping_threshold"`
}

// DiscountTier maps a quantity-threshold label ("50" or "50+") to a
// fractional discount in [0.0, 1.0].
type DiscountTier struct {
	Threshold string
	Rate      float64
}

// DiscountTiers holds a supplier's bulk discount tiers in the key order of
// the source JSON object. Offer synthesis applies the first qualifying tier,
// so the stored order is significant and a plain map cannot represent it.
type DiscountTiers []DiscountTier

// UnmarshalJSON decodes a JSON object into tiers, preserving key order.
func (d *DiscountTiers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("bulk_discount: expected JSON object, got %v", tok)
	}

	tiers := DiscountTiers{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("bulk_discount: non-string key %v", keyTok)
		}
		var rate float64
		if err := dec.Decode(&rate); err != nil {
			return fmt.Errorf("bulk_discount: invalid rate for threshold %q: %w", key, err)
		}
		tiers = append(tiers, DiscountTier{Threshold: key, Rate: rate})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = tiers
	return nil
}

// MarshalJSON re-emits the tiers as a JSON object in stored order.
func (d DiscountTiers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tier := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tier.Threshold)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		rate, err := json.Marshal(tier.Rate)
		if err != nil {
			return nil, err
		}
		buf.Write(rate)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
