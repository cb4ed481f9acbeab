package repository

import (
	"context"
	"time"

	"dropship-invoicer/models"
)

// ProductionOrderRepositoryInterface defines the contract for production
// order store operations
type ProductionOrderRepositoryInterface interface {
	GetUnprocessed(ctx context.Context) ([]models.LineRecord, error)
	MarkInvoiced(ctx context.Context, reference string, when time.Time) error
}
