package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"dropship-invoicer/models"
	"dropship-invoicer/utils"
)

//go:embed invoice.html
var invoiceTemplateHTML string

var invoiceTemplate = template.Must(
	template.New("invoice").Funcs(template.FuncMap{
		"usd": utils.FormatUSD,
	}).Parse(invoiceTemplateHTML),
)

// Branding carries the fixed seller identity printed on every invoice.
type Branding struct {
	CompanyAddress string
	BillToAddress  string
	ShipToAddress  string
	LogoDataURI    string
}

// RenderService turns invoices into paginated PDF artifacts.
// Implements RenderServiceInterface
type RenderService struct {
	branding Branding
}

// NewRenderService creates a new RenderService
func NewRenderService(branding Branding) *RenderService {
	return &RenderService{branding: branding}
}

// Ensure RenderService implements RenderServiceInterface
var _ RenderServiceInterface = (*RenderService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// RenderInvoiceHTML renders the invoice document as HTML. Pure function of
// the invoice and the branding: the same inputs always produce the same
// document, so artifacts are regenerable.
func RenderInvoiceHTML(inv models.Invoice, branding Branding) (string, error) {
	data := struct {
		Invoice models.Invoice
		Branding
		// html/template strips data: URIs from plain strings; the logo is
		// built locally, so mark it trusted.
		LogoURL template.URL
	}{Invoice: inv, Branding: branding, LogoURL: template.URL(branding.LogoDataURI)}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the invoice and prints it to a paginated PDF at
// destination using headless Chrome. Failure to write the artifact is fatal
// and surfaced to the caller; nothing is retried here.
func (s *RenderService) GeneratePDF(ctx context.Context, inv models.Invoice, destination string) error {
	html, err := RenderInvoiceHTML(inv, s.branding)
	if err != nil {
		return err
	}

	// Chrome loads the document from a sibling temp file; data: URLs choke
	// on large invoices.
	htmlPath := destination + ".html"
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write render input for %q: %w", destination, err)
	}
	defer os.Remove(htmlPath)

	pdfBuf, err := printToPDF(ctx, htmlPath)
	if err != nil {
		return fmt.Errorf("failed to generate PDF for reference %q: %w", inv.Reference, err)
	}

	if err := os.WriteFile(destination, pdfBuf, 0644); err != nil {
		return fmt.Errorf("failed to write artifact %q: %w", destination, err)
	}

	log.Printf("✓ Invoice generated: %s", destination)
	return nil
}

// printToPDF drives headless Chrome over the given HTML file and returns
// letter-size PDF bytes. Page breaks follow the document's CSS.
func printToPDF(ctx context.Context, htmlPath string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve render input path: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("file://"+absPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5). // letter
				WithPaperHeight(11).
				WithMarginTop(0). // margins live in the document CSS
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// DeleteArtifact removes a previously rendered artifact. A missing file is
// reported but not an error (a prior run may already have cleaned it); any
// other failure is logged so cleanup of the remaining artifacts continues.
func (s *RenderService) DeleteArtifact(destination string) {
	err := os.Remove(destination)
	switch {
	case err == nil:
		log.Printf("✓ Invoice deleted: %s", destination)
	case os.IsNotExist(err):
		log.Printf("⚠️  Artifact not found at path: %s", destination)
	default:
		log.Printf("❌ Failed to delete artifact %s: %v", destination, err)
	}
}
