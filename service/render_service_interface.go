package service

import (
	"context"

	"dropship-invoicer/models"
)

// RenderServiceInterface defines the contract for producing and cleaning up
// invoice artifacts
type RenderServiceInterface interface {
	GeneratePDF(ctx context.Context, inv models.Invoice, destination string) error
	DeleteArtifact(destination string)
}
