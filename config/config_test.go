package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
seller:
  company_address: "Selling Company Address\nCity, State Zip"
order_api:
  base_url: https://example.api.orders.test/rest/api
mail:
  smtp_host: smtp.example.com
  sender: sender@example.com
  report_recipients: [ops@example.com]
  invoice_recipients: [billing@example.com, ap@example.com]
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TmpDir != "tmp_invoices" {
		t.Errorf("expected default tmp dir, got %q", cfg.TmpDir)
	}
	if cfg.OrderAPI.PageSize != 50 {
		t.Errorf("expected default page size 50, got %d", cfg.OrderAPI.PageSize)
	}
	if cfg.Mail.SMTPPort != 465 {
		t.Errorf("expected default SMTP port 465, got %d", cfg.Mail.SMTPPort)
	}
	if cfg.Mail.AttachmentsPerMessage != 10 {
		t.Errorf("expected default attachments per message 10, got %d", cfg.Mail.AttachmentsPerMessage)
	}
	if len(cfg.Mail.InvoiceRecipients) != 2 {
		t.Errorf("expected 2 invoice recipients, got %v", cfg.Mail.InvoiceRecipients)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mangle  func(string) string
		wantErr string
	}{
		{"missing base url", func(s string) string { return strings.Replace(s, "base_url:", "x_url:", 1) }, "base_url"},
		{"missing smtp host", func(s string) string { return strings.Replace(s, "smtp_host:", "x_host:", 1) }, "smtp_host"},
		{"missing sender", func(s string) string { return strings.Replace(s, "sender:", "x_sender:", 1) }, "sender"},
		{"no report recipients", func(s string) string { return strings.Replace(s, "report_recipients: [ops@example.com]", "report_recipients: []", 1) }, "report_recipients"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mangle(validYAML)))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
