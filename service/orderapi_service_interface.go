package service

import (
	"context"

	"dropship-invoicer/models"
)

// OrderAPIServiceInterface defines the contract for remote order lookups
type OrderAPIServiceInterface interface {
	GetOrderByReference(ctx context.Context, reference string) (*models.RemoteOrder, error)
}
