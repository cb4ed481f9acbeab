package service

import (
	"context"

	"dropship-invoicer/models"
)

// ReconcileServiceInterface defines the contract for building the remote
// order index for one cycle
type ReconcileServiceInterface interface {
	Resolve(ctx context.Context, refs []string) (models.RemoteOrderIndex, error)
}
