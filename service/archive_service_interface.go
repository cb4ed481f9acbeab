package service

import "context"

// ArchiveServiceInterface defines the contract for archiving rendered
// artifacts to durable storage
type ArchiveServiceInterface interface {
	UploadInvoice(ctx context.Context, path string) (string, error)
}
