package service

import (
	"context"
	"strings"

	"haulage/internal/domain"
	"haulage/internal/redis"
	"haulage/internal/repository"
)

// ContractPrice is the resolved contracted cost and revenue for a route and
// fleet assignment, drop fees included.
type ContractPrice struct {
	Cost    float64
	Revenue float64
}

// ResolveContractPrice matches the proposed route and fleet assignment
// against a price matrix snapshot. The four string keys are compared after
// trimming whitespace. Returns false when no row matches: the job is
// uncontracted and a price must be negotiated manually.
//
// The function is pure and cheap enough to call on every edit for live
// recalculation. At most one active row per key tuple is assumed; if the
// matrix carries duplicates the first row in snapshot order wins.
func ResolveContractPrice(snapshot []domain.PriceMatrixEntry, origin, destination, truckType, subcontractor string, dropCount int) (ContractPrice, bool) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	truckType = strings.TrimSpace(truckType)
	subcontractor = strings.TrimSpace(subcontractor)

	for _, e := range snapshot {
		if strings.TrimSpace(e.Origin) != origin ||
			strings.TrimSpace(e.Destination) != destination ||
			strings.TrimSpace(e.TruckType) != truckType ||
			strings.TrimSpace(e.Subcontractor) != subcontractor {
			continue
		}

		fees := float64(dropCount) * e.DropOffFee
		return ContractPrice{
			Cost:    e.BasePrice + fees,
			Revenue: e.SellingBasePrice + fees,
		}, true
	}

	return ContractPrice{}, false
}

// PricingService serves price matrix snapshots and contract quotes.
type PricingService struct {
	matrixRepo repository.PriceMatrixRepository
	cache      redis.SnapshotCacheInterface
}

// NewPricingService creates a new PricingService.
func NewPricingService(matrixRepo repository.PriceMatrixRepository, cache redis.SnapshotCacheInterface) *PricingService {
	return &PricingService{
		matrixRepo: matrixRepo,
		cache:      cache,
	}
}

// Snapshot returns the current price matrix, served from cache when fresh.
// The snapshot is loaded as one value so a resolution never observes a
// half-updated matrix.
func (s *PricingService) Snapshot(ctx context.Context) ([]domain.PriceMatrixEntry, error) {
	if s.cache != nil {
		if entries, err := s.cache.GetPriceMatrix(ctx); err == nil && entries != nil {
			return entries, nil
		}
	}

	entries, err := s.matrixRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetPriceMatrix(ctx, entries)
	}

	return entries, nil
}

// QuoteRequest contains the parameters for a contract price quote.
type QuoteRequest struct {
	Origin        string
	Destination   string
	TruckType     string
	Subcontractor string
	DropCount     int
}

// QuoteResponse contains the result of a contract price quote.
type QuoteResponse struct {
	Contracted bool
	Cost       float64
	Revenue    float64
}

// Quote resolves a contract price against the current matrix snapshot.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	price, ok := ResolveContractPrice(snapshot, req.Origin, req.Destination, req.TruckType, req.Subcontractor, req.DropCount)
	if !ok {
		return &QuoteResponse{Contracted: false}, nil
	}

	return &QuoteResponse{
		Contracted: true,
		Cost:       price.Cost,
		Revenue:    price.Revenue,
	}, nil
}
