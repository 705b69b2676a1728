package domain

import (
	"encoding/json"
	"testing"
)

func TestDiscountTiersUnmarshal(t *testing.T) {
	t.Run("preserves document key order", func(t *testing.T) {
		var tiers DiscountTiers
		err := json.Unmarshal([]byte(`{"50": 0.05, "100": 0.10, "25": 0.02}`), &tiers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := DiscountTiers{
			{Threshold: "50", Rate: 0.05},
			{Threshold: "100", Rate: 0.10},
			{Threshold: "25", Rate: 0.02},
		}
		if len(tiers) != len(want) {
			t.Fatalf("len = %d, want %d", len(tiers), len(want))
		}
		for i := range want {
			if tiers[i] != want[i] {
				t.Errorf("tiers[%d] = %+v, want %+v", i, tiers[i], want[i])
			}
		}
	})

	t.Run("accepts null", func(t *testing.T) {
		var tiers DiscountTiers
		if err := json.Unmarshal([]byte(`null`), &tiers); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tiers != nil {
			t.Errorf("tiers = %v, want nil", tiers)
		}
	})

	t.Run("rejects arrays", func(t *testing.T) {
		var tiers DiscountTiers
		if err := json.Unmarshal([]byte(`[1, 2]`), &tiers); err == nil {
			t.Error("expected error for JSON array")
		}
	})

	t.Run("rejects non-numeric rates", func(t *testing.T) {
		var tiers DiscountTiers
		if err := json.Unmarshal([]byte(`{"50": "five percent"}`), &tiers); err == nil {
			t.Error("expected error for string rate")
		}
	})
}

func TestDiscountTiersMarshal(t *testing.T) {
	t.Run("round trip keeps order and values", func(t *testing.T) {
		original := DiscountTiers{
			{Threshold: "50+", Rate: 0.05},
			{Threshold: "100+", Rate: 0.10},
		}
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"50+":0.05,"100+":0.1}` {
			t.Errorf("marshaled = %s", data)
		}

		var decoded DiscountTiers
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range original {
			if decoded[i] != original[i] {
				t.Errorf("decoded[%d] = %+v, want %+v", i, decoded[i], original[i])
			}
		}
	})
}

func TestSupplierOfferRoundTrip(t *testing.T) {
	offer := SupplierOffer{
		Supplier: Supplier{
			ID:           "SUP-001",
			Rating:       4.8,
			BulkDiscount: DiscountTiers{{Threshold: "50+", Rate: 0.05}},
		},
		Product:             Product{SKU: "BRK-020", Category: "brakes"},
		Price:               57.6,
		QuantityAvailable:   734,
		TotalCost:           2880.0,
		ShippingCost:        0,
		BulkDiscountApplied: 0.05,
		FinalPrice:          2736.0,
		Score:               101,
	}

	data, err := json.Marshal(offer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded SupplierOffer
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.Price != offer.Price ||
		decoded.TotalCost != offer.TotalCost ||
		decoded.FinalPrice != offer.FinalPrice ||
		decoded.BulkDiscountApplied != offer.BulkDiscountApplied ||
		decoded.Score != offer.Score {
		t.Errorf("numeric fields changed in round trip: %+v vs %+v", decoded, offer)
	}
	if len(decoded.Supplier.BulkDiscount) != 1 || decoded.Supplier.BulkDiscount[0] != offer.Supplier.BulkDiscount[0] {
		t.Errorf("bulk discount changed in round trip: %+v", decoded.Supplier.BulkDiscount)
	}
}
