package service

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"

	gomail "gopkg.in/gomail.v2"

	"dropship-invoicer/utils"
)

// MailService sends the rendered invoice bundle and failure reports over
// SMTP-SSL.
// Implements MailServiceInterface
type MailService struct {
	host              string
	port              int
	username          string
	password          string
	sender            string
	reportRecipients  []string
	invoiceRecipients []string
	attachmentsPerMsg int
}

// NewMailService creates a new MailService
func NewMailService(host string, port int, username, password, sender string,
	reportRecipients, invoiceRecipients []string, attachmentsPerMsg int) *MailService {
	return &MailService{
		host:              host,
		port:              port,
		username:          username,
		password:          password,
		sender:            sender,
		reportRecipients:  reportRecipients,
		invoiceRecipients: invoiceRecipients,
		attachmentsPerMsg: attachmentsPerMsg,
	}
}

// Ensure MailService implements MailServiceInterface
var _ MailServiceInterface = (*MailService)(nil)

func (s *MailService) dialer() *gomail.Dialer {
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	d.SSL = true
	return d
}

// SendInvoiceBundle delivers the rendered artifacts as attachments to the
// invoice recipient list, chunked so a large batch does not exceed message
// size limits. Artifacts that vanished before sending are logged and
// skipped rather than failing the whole bundle.
func (s *MailService) SendInvoiceBundle(subject, body string, paths []string) error {
	var present []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			log.Printf("❌ PDF file not found at path: %s", path)
			continue
		}
		present = append(present, path)
	}
	if len(present) == 0 {
		return fmt.Errorf("no artifacts available to send")
	}

	batches := utils.Chunk(present, s.attachmentsPerMsg)
	for i, batch := range batches {
		m := gomail.NewMessage()
		m.SetHeader("From", s.sender)
		m.SetHeader("To", s.invoiceRecipients...)
		if len(batches) > 1 {
			m.SetHeader("Subject", fmt.Sprintf("%s (%d/%d)", subject, i+1, len(batches)))
		} else {
			m.SetHeader("Subject", subject)
		}
		m.SetBody("text/plain", body)
		for _, path := range batch {
			m.Attach(path, gomail.Rename(filepath.Base(path)))
		}

		if err := s.dialer().DialAndSend(m); err != nil {
			return fmt.Errorf("failed to send invoice bundle: %w", err)
		}
	}

	log.Printf("✓ Sent %d invoice(s) in %d message(s)", len(present), len(batches))
	return nil
}

// SendFailureReport delivers a single failure mail to the report recipients,
// with the sending host, user and working directory appended so the source
// of an aborted cycle is traceable across machines.
func (s *MailService) SendFailureReport(subject, body string) error {
	hostname, _ := os.Hostname()
	username := "unknown"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	wd, _ := os.Getwd()

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", s.reportRecipients...)
	m.SetHeader("Subject", fmt.Sprintf("%s : %s", subject, filepath.Base(wd)))
	m.SetBody("text/plain", fmt.Sprintf("%s\n%s on %s (%s)", body, filepath.Base(wd), hostname, username))

	if err := s.dialer().DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send failure report: %w", err)
	}

	log.Printf("✓ Failure report sent")
	return nil
}
