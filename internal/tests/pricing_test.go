package tests

import (
	"context"
	"testing"

	"haulage/internal/domain"
	"haulage/internal/service"
)

// ──────────────────────────────────────────────
// 1. CONTRACT PRICE RESOLUTION
// ──────────────────────────────────────────────

func matrixFixture() []domain.PriceMatrixEntry {
	return []domain.PriceMatrixEntry{
		{
			Origin:           "Bangkok",
			Destination:      "Chonburi",
			TruckType:        "10-wheel",
			Subcontractor:    "ThaiHaul Co",
			BasePrice:        3000,
			SellingBasePrice: 4500,
			DropOffFee:       200,
		},
		{
			Origin:           "Bangkok",
			Destination:      "Rayong",
			TruckType:        "trailer",
			Subcontractor:    "ThaiHaul Co",
			BasePrice:        8000,
			SellingBasePrice: 11000,
			DropOffFee:       350,
		},
	}
}

func TestResolveContractPrice_ExactMatchWithDropFees(t *testing.T) {
	t.Parallel()

	price, ok := service.ResolveContractPrice(matrixFixture(),
		"Bangkok", "Chonburi", "10-wheel", "ThaiHaul Co", 2)
	if !ok {
		t.Fatal("expected a contracted price")
	}

	// Base 3000 plus two drops at 200 each.
	if price.Cost != 3400 {
		t.Errorf("expected cost 3400, got %v", price.Cost)
	}
	if price.Revenue != 4900 {
		t.Errorf("expected revenue 4900, got %v", price.Revenue)
	}
}

func TestResolveContractPrice_ZeroDrops(t *testing.T) {
	t.Parallel()

	price, ok := service.ResolveContractPrice(matrixFixture(),
		"Bangkok", "Rayong", "trailer", "ThaiHaul Co", 0)
	if !ok {
		t.Fatal("expected a contracted price")
	}
	if price.Cost != 8000 {
		t.Errorf("expected cost 8000, got %v", price.Cost)
	}
	if price.Revenue != 11000 {
		t.Errorf("expected revenue 11000, got %v", price.Revenue)
	}
}

func TestResolveContractPrice_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	snapshot := []domain.PriceMatrixEntry{
		{
			Origin:           " Bangkok ",
			Destination:      "Chonburi",
			TruckType:        "10-wheel",
			Subcontractor:    "ThaiHaul Co",
			BasePrice:        3000,
			SellingBasePrice: 4500,
			DropOffFee:       200,
		},
	}

	price, ok := service.ResolveContractPrice(snapshot,
		"Bangkok", " Chonburi", "10-wheel ", "ThaiHaul Co", 0)
	if !ok {
		t.Fatal("expected whitespace-insensitive match")
	}
	if price.Cost != 3000 {
		t.Errorf("expected cost 3000, got %v", price.Cost)
	}
}

func TestResolveContractPrice_NoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		origin        string
		destination   string
		truckType     string
		subcontractor string
	}{
		{"unknown origin", "Phuket", "Chonburi", "10-wheel", "ThaiHaul Co"},
		{"unknown destination", "Bangkok", "Phuket", "10-wheel", "ThaiHaul Co"},
		{"wrong truck type", "Bangkok", "Chonburi", "trailer", "ThaiHaul Co"},
		{"wrong subcontractor", "Bangkok", "Chonburi", "10-wheel", "Other Co"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, ok := service.ResolveContractPrice(matrixFixture(),
				tt.origin, tt.destination, tt.truckType, tt.subcontractor, 1)
			if ok {
				t.Error("expected no contracted price")
			}
		})
	}
}

func TestResolveContractPrice_DuplicateRowsFirstWins(t *testing.T) {
	t.Parallel()

	snapshot := append(matrixFixture(), domain.PriceMatrixEntry{
		Origin:           "Bangkok",
		Destination:      "Chonburi",
		TruckType:        "10-wheel",
		Subcontractor:    "ThaiHaul Co",
		BasePrice:        9999,
		SellingBasePrice: 9999,
		DropOffFee:       0,
	})

	price, ok := service.ResolveContractPrice(snapshot,
		"Bangkok", "Chonburi", "10-wheel", "ThaiHaul Co", 0)
	if !ok {
		t.Fatal("expected a contracted price")
	}
	if price.Cost != 3000 {
		t.Errorf("expected first row to win with cost 3000, got %v", price.Cost)
	}
}

func TestResolveContractPrice_Deterministic(t *testing.T) {
	t.Parallel()

	snapshot := matrixFixture()
	first, ok := service.ResolveContractPrice(snapshot, "Bangkok", "Chonburi", "10-wheel", "ThaiHaul Co", 3)
	if !ok {
		t.Fatal("expected a contracted price")
	}

	// Same snapshot, same inputs, same answer every time.
	for i := 0; i < 50; i++ {
		price, ok := service.ResolveContractPrice(snapshot, "Bangkok", "Chonburi", "10-wheel", "ThaiHaul Co", 3)
		if !ok {
			t.Fatal("expected a contracted price")
		}
		if price != first {
			t.Fatalf("resolution not deterministic: %v vs %v", price, first)
		}
	}
}

// ──────────────────────────────────────────────
// 2. PRICING SERVICE QUOTES
// ──────────────────────────────────────────────

func TestPricingService_QuoteContracted(t *testing.T) {
	t.Parallel()

	matrixRepo := NewMockPriceMatrixRepository()
	for _, e := range matrixFixture() {
		matrixRepo.AddEntry(e)
	}
	pricing := service.NewPricingService(matrixRepo, nil)

	resp, err := pricing.Quote(context.Background(), service.QuoteRequest{
		Origin:        "Bangkok",
		Destination:   "Chonburi",
		TruckType:     "10-wheel",
		Subcontractor: "ThaiHaul Co",
		DropCount:     1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Contracted {
		t.Fatal("expected a contracted quote")
	}
	if resp.Cost != 3200 {
		t.Errorf("expected cost 3200, got %v", resp.Cost)
	}
	if resp.Revenue != 4700 {
		t.Errorf("expected revenue 4700, got %v", resp.Revenue)
	}
}

func TestPricingService_QuoteUncontracted(t *testing.T) {
	t.Parallel()

	matrixRepo := NewMockPriceMatrixRepository()
	pricing := service.NewPricingService(matrixRepo, nil)

	resp, err := pricing.Quote(context.Background(), service.QuoteRequest{
		Origin:        "Bangkok",
		Destination:   "Nowhere",
		TruckType:     "10-wheel",
		Subcontractor: "ThaiHaul Co",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Contracted {
		t.Error("expected an uncontracted quote")
	}
	if resp.Cost != 0 || resp.Revenue != 0 {
		t.Errorf("expected zero amounts, got cost=%v revenue=%v", resp.Cost, resp.Revenue)
	}
}
