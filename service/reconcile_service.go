package service

import (
	"context"
	"fmt"
	"log"

	"dropship-invoicer/models"
)

// ReconcileService resolves local references against the remote order
// service and builds the per-cycle line-item index.
// Implements ReconcileServiceInterface
type ReconcileService struct {
	api OrderAPIServiceInterface
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(api OrderAPIServiceInterface) *ReconcileService {
	return &ReconcileService{api: api}
}

// Ensure ReconcileService implements ReconcileServiceInterface
var _ ReconcileServiceInterface = (*ReconcileService)(nil)

// Resolve issues one lookup per reference and indexes the resulting line
// items by product identifier. Any failed lookup aborts the whole resolve:
// a partially populated index would let the assembler invoice incomplete
// data. Duplicate product IDs within one order overwrite last-wins, logged
// as a data-quality warning.
//
// The returned index is built completely before anything downstream runs
// and must be treated as read-only.
func (s *ReconcileService) Resolve(ctx context.Context, refs []string) (models.RemoteOrderIndex, error) {
	index := make(models.RemoteOrderIndex, len(refs))

	for _, ref := range refs {
		order, err := s.api.GetOrderByReference(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve reference %q: %w", ref, err)
		}

		items := make(map[string]models.RemoteLineItem, len(order.Items))
		for _, item := range order.Items {
			if _, dup := items[item.ProductIDOriginal]; dup {
				log.Printf("⚠️  Duplicate product %q in remote order for reference %q, keeping the later entry", item.ProductIDOriginal, ref)
			}
			items[item.ProductIDOriginal] = models.RemoteLineItem{
				ProductID:   item.ProductIDOriginal,
				Description: item.ProductName,
				UnitPrice:   item.PricePerCase,
				LineTotal:   item.LineTotal,
			}
		}
		index[ref] = items
	}

	log.Printf("✓ Resolved %d references against the order service", len(refs))
	return index, nil
}
