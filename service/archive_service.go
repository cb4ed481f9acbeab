package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ArchiveService keeps a durable copy of rendered invoices in a Google
// Drive folder before the local tmp directory is cleaned.
// Implements ArchiveServiceInterface
type ArchiveService struct {
	client   *drive.Service
	folderID string
}

// NewArchiveService creates a new ArchiveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewArchiveService(credentialsPath, folderID string) (*ArchiveService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &ArchiveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure ArchiveService implements ArchiveServiceInterface
var _ ArchiveServiceInterface = (*ArchiveService)(nil)

// UploadInvoice uploads one rendered artifact into the archive folder and
// returns the created Drive file ID.
func (s *ArchiveService) UploadInvoice(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact for archival: %w", err)
	}
	defer f.Close()

	meta := &drive.File{
		Name:     filepath.Base(path),
		MimeType: "application/pdf",
		Parents:  []string{s.folderID},
	}

	created, err := s.client.Files.Create(meta).
		Media(f).
		Context(ctx).
		Fields("id").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact %q: %w", filepath.Base(path), err)
	}

	return created.Id, nil
}
