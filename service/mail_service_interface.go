package service

// MailServiceInterface defines the contract for outbound mail
type MailServiceInterface interface {
	SendInvoiceBundle(subject, body string, paths []string) error
	SendFailureReport(subject, body string) error
}
