package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/google/uuid"

	"dropship-invoicer/config"
	"dropship-invoicer/db"
	"dropship-invoicer/progress"
	"dropship-invoicer/repository"
	"dropship-invoicer/service"
)

// Run wires the application together and executes one invoicing cycle.
// On a fatal cycle error it sends exactly one failure report and returns
// the error.
func Run(ctx context.Context) error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return err
	}

	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	mailer := service.NewMailService(
		cfg.Mail.SMTPHost,
		cfg.Mail.SMTPPort,
		secrets.SMTPUsername,
		secrets.SMTPPassword,
		cfg.Mail.Sender,
		cfg.Mail.ReportRecipients,
		cfg.Mail.InvoiceRecipients,
		cfg.Mail.AttachmentsPerMessage,
	)

	logoURI, err := service.LoadLogoDataURI(cfg.Seller.LogoPath)
	if err != nil {
		// The invoice is still valid without a logo.
		log.Printf("⚠️  Warning: %v, rendering without logo", err)
	}
	renderer := service.NewRenderService(service.Branding{
		CompanyAddress: cfg.Seller.CompanyAddress,
		BillToAddress:  cfg.Seller.BillToAddress,
		ShipToAddress:  cfg.Seller.ShipToAddress,
		LogoDataURI:    logoURI,
	})

	orderAPI := service.NewOrderAPIService(
		cfg.OrderAPI.BaseURL,
		secrets.OrderAPIUsername,
		secrets.OrderAPIPassword,
		cfg.OrderAPI.PageSize,
	)

	var archive service.ArchiveServiceInterface
	if cfg.Archive.FolderID != "" && secrets.GoogleCredentials != "" {
		archiveService, err := service.NewArchiveService(secrets.GoogleCredentials, cfg.Archive.FolderID)
		if err != nil {
			log.Printf("⚠️  Warning: archival disabled: %v", err)
		} else {
			archive = archiveService
		}
	}

	cycle := service.NewCycleService(
		repository.NewProductionOrderRepository(),
		service.NewReconcileService(orderAPI),
		renderer,
		mailer,
		archive,
		progress.NewSpinnerReporter(),
		cfg.TmpDir,
	)

	cycleID := uuid.New().String()
	log.Printf("🧾 Starting invoicing cycle %s", cycleID)

	if err := cycle.Run(ctx); err != nil {
		log.Printf("❌ Cycle %s aborted: %v", cycleID, err)
		body := fmt.Sprintf("Cycle %s aborted.\n\nError: %v\n\n%s", cycleID, err, debug.Stack())
		if mailErr := mailer.SendFailureReport("An Error Occurred", body); mailErr != nil {
			log.Printf("❌ Failed to send failure report: %v", mailErr)
		}
		return err
	}

	return nil
}
