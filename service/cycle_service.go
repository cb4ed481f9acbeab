package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"dropship-invoicer/invoice"
	"dropship-invoicer/progress"
	"dropship-invoicer/repository"
)

// CycleService runs one invoicing cycle: fetch unprocessed order lines,
// group them by reference, resolve each reference against the remote order
// service, assemble and render one invoice per reference, mark the source
// rows, then mail, archive and clean up the artifacts.
//
// References move through the pipeline strictly sequentially. Any fatal
// error before or during render+mark aborts the batch; marks already
// committed stand, which is safe because re-rendering a marked reference
// can never happen (its rows are no longer selected) and an unmarked
// rendered reference is merely re-rendered next run.
type CycleService struct {
	orders     repository.ProductionOrderRepositoryInterface
	reconciler ReconcileServiceInterface
	renderer   RenderServiceInterface
	mailer     MailServiceInterface
	archive    ArchiveServiceInterface // nil disables archival
	reporter   progress.Reporter
	tmpDir     string
	now        func() time.Time
}

// NewCycleService creates a new CycleService
func NewCycleService(
	orders repository.ProductionOrderRepositoryInterface,
	reconciler ReconcileServiceInterface,
	renderer RenderServiceInterface,
	mailer MailServiceInterface,
	archive ArchiveServiceInterface,
	reporter progress.Reporter,
	tmpDir string,
) *CycleService {
	return &CycleService{
		orders:     orders,
		reconciler: reconciler,
		renderer:   renderer,
		mailer:     mailer,
		archive:    archive,
		reporter:   reporter,
		tmpDir:     tmpDir,
		now:        time.Now,
	}
}

// ArtifactPath returns the deterministic destination for one invoice:
// sanitized reference plus the current date, inside the tmp directory.
func (s *CycleService) ArtifactPath(reference string) string {
	return filepath.Join(s.tmpDir, fmt.Sprintf("%s_%s.pdf", reference, s.now().Format("01_02_2006")))
}

// Run executes one complete cycle. A nil return means every reference in
// the batch was rendered and marked; mail, archival and cleanup problems
// after that point are reported in the log but do not fail the cycle.
func (s *CycleService) Run(ctx context.Context) error {
	s.reporter.Start("Getting orders without PDF invoices...")
	rows, err := s.orders.GetUnprocessed(ctx)
	s.reporter.Stop()
	if err != nil {
		return err
	}

	groups, refs, err := invoice.GroupOrders(rows)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		log.Printf("No orders without PDFs found. Exiting cycle.")
		return nil
	}
	log.Printf("📦 Processing %d reference(s) from %d order line(s)", len(refs), len(rows))

	s.reporter.Start("Getting remote order data...")
	index, err := s.reconciler.Resolve(ctx, refs)
	s.reporter.Stop()
	if err != nil {
		return err
	}

	invoices, err := invoice.Assemble(groups, refs, index)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.tmpDir, 0755); err != nil {
		return fmt.Errorf("failed to create tmp directory: %w", err)
	}

	// Render then mark, per reference and in that order: the processed mark
	// must only ever cover an invoice whose artifact exists.
	s.reporter.Start("Generating PDF invoices...")
	var artifacts []string
	for _, inv := range invoices {
		destination := s.ArtifactPath(inv.Reference)
		if err := s.renderer.GeneratePDF(ctx, inv, destination); err != nil {
			s.reporter.Stop()
			return err
		}
		if err := s.orders.MarkInvoiced(ctx, inv.SourceRef, s.now()); err != nil {
			s.reporter.Stop()
			return err
		}
		artifacts = append(artifacts, destination)
	}
	s.reporter.Stop()

	s.reporter.Start("Sending PDF invoices...")
	err = s.mailer.SendInvoiceBundle(
		"Company PDF Invoices",
		"Attached are the latest Company PDF invoices.",
		artifacts,
	)
	s.reporter.Stop()
	if err != nil {
		// Marks are already committed; delivery can be redone by hand.
		log.Printf("❌ Failed to send invoice bundle: %v", err)
	}

	if s.archive != nil {
		s.reporter.Start("Archiving PDF invoices...")
		for _, path := range artifacts {
			if fileID, err := s.archive.UploadInvoice(ctx, path); err != nil {
				log.Printf("❌ Failed to archive %s: %v", filepath.Base(path), err)
			} else {
				log.Printf("✓ Archived %s (drive id %s)", filepath.Base(path), fileID)
			}
		}
		s.reporter.Stop()
	}

	s.reporter.Start("Cleaning up PDF invoices...")
	for _, path := range artifacts {
		s.renderer.DeleteArtifact(path)
	}
	s.reporter.Stop()

	log.Printf("✓ Cycle completed successfully: %d invoice(s)", len(artifacts))
	return nil
}
