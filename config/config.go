package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the invoicing cycle needs besides secrets.
// Secrets (database, API and SMTP credentials) come from the environment;
// see LoadSecrets.
type Config struct {
	Seller   SellerConfig   `yaml:"seller"`
	OrderAPI OrderAPIConfig `yaml:"order_api"`
	Mail     MailConfig     `yaml:"mail"`
	Archive  ArchiveConfig  `yaml:"archive"`

	// TmpDir is the transient working directory for rendered artifacts,
	// created on demand. Default: "tmp_invoices"
	TmpDir string `yaml:"tmp_dir"`
}

// SellerConfig is the fixed identity block printed on every invoice.
type SellerConfig struct {
	CompanyAddress string `yaml:"company_address"`
	BillToAddress  string `yaml:"bill_to_address"`
	ShipToAddress  string `yaml:"ship_to_address"`
	LogoPath       string `yaml:"logo_path"`
}

// OrderAPIConfig locates the remote order service.
type OrderAPIConfig struct {
	BaseURL string `yaml:"base_url"`
	// PageSize bounds each per-reference lookup. Default: 50
	PageSize int `yaml:"page_size"`
}

// MailConfig configures SMTP-SSL transport and the two recipient lists:
// ReportRecipients get failure reports, InvoiceRecipients get the PDFs.
type MailConfig struct {
	SMTPHost          string   `yaml:"smtp_host"`
	SMTPPort          int      `yaml:"smtp_port"`
	Sender            string   `yaml:"sender"`
	ReportRecipients  []string `yaml:"report_recipients"`
	InvoiceRecipients []string `yaml:"invoice_recipients"`
	// AttachmentsPerMessage bounds how many PDFs ride in one mail. Default: 10
	AttachmentsPerMessage int `yaml:"attachments_per_message"`
}

// ArchiveConfig enables Drive archival of rendered invoices when FolderID
// is set.
type ArchiveConfig struct {
	FolderID string `yaml:"folder_id"`
}

// Secrets are credentials read from the environment (typically via a .env
// file in development).
type Secrets struct {
	OrderAPIUsername string
	OrderAPIPassword string
	SMTPUsername     string
	SMTPPassword     string
	// GoogleCredentials is the Service Account JSON path; empty disables
	// Drive archival even when a folder ID is configured.
	GoogleCredentials string
}

// Load reads and validates the YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TmpDir == "" {
		c.TmpDir = "tmp_invoices"
	}
	if c.OrderAPI.PageSize <= 0 {
		c.OrderAPI.PageSize = 50
	}
	if c.Mail.SMTPPort <= 0 {
		c.Mail.SMTPPort = 465
	}
	if c.Mail.AttachmentsPerMessage <= 0 {
		c.Mail.AttachmentsPerMessage = 10
	}
}

func (c *Config) validate() error {
	if c.OrderAPI.BaseURL == "" {
		return fmt.Errorf("config: order_api.base_url is required")
	}
	if c.Mail.SMTPHost == "" {
		return fmt.Errorf("config: mail.smtp_host is required")
	}
	if c.Mail.Sender == "" {
		return fmt.Errorf("config: mail.sender is required")
	}
	if len(c.Mail.ReportRecipients) == 0 {
		return fmt.Errorf("config: mail.report_recipients must not be empty")
	}
	if len(c.Mail.InvoiceRecipients) == 0 {
		return fmt.Errorf("config: mail.invoice_recipients must not be empty")
	}
	return nil
}

// LoadSecrets reads credentials from the environment.
func LoadSecrets() (*Secrets, error) {
	s := &Secrets{
		OrderAPIUsername:  os.Getenv("ORDER_API_USERNAME"),
		OrderAPIPassword:  os.Getenv("ORDER_API_PASSWORD"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	if s.OrderAPIUsername == "" || s.OrderAPIPassword == "" {
		return nil, fmt.Errorf("ORDER_API_USERNAME and ORDER_API_PASSWORD must be set")
	}
	if s.SMTPUsername == "" || s.SMTPPassword == "" {
		return nil, fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD must be set")
	}
	return s, nil
}
