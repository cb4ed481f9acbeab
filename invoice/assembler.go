package invoice

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"dropship-invoicer/models"
)

// ErrMissingLineItem reports a local part code with no matching line item in
// the remote order. Emitting an invoice anyway would silently under-bill, so
// the whole batch aborts instead.
var ErrMissingLineItem = errors.New("part has no remote line item")

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]`)

// SanitizeReference strips every character outside [A-Za-z0-9] so the
// reference is safe for file names and document identifiers. Idempotent.
func SanitizeReference(ref string) string {
	return nonAlphanumeric.ReplaceAllString(ref, "")
}

// Assemble joins each order group with its remote line-item index and emits
// one normalized invoice per reference, in the given reference order.
//
// Prices and descriptions are copied verbatim from the remote data. The
// subtotal is the exact decimal sum of the line totals in group order; fees
// are a fixed zero policy, total = subtotal + fees. Any part code absent
// from the remote index is fatal: no invoices are returned for the batch.
func Assemble(groups map[string]*models.OrderGroup, refs []string, index models.RemoteOrderIndex) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0, len(refs))

	for _, ref := range refs {
		group, ok := groups[ref]
		if !ok || len(group.Records) == 0 {
			return nil, fmt.Errorf("reference %q has no order group", ref)
		}
		remote := index[ref]

		lines := make([]models.InvoiceLine, 0, len(group.Records))
		subtotal := decimal.Zero
		for _, rec := range group.Records {
			item, ok := remote[rec.Part]
			if !ok {
				return nil, fmt.Errorf("reference %q part %q: %w", ref, rec.Part, ErrMissingLineItem)
			}
			lines = append(lines, models.InvoiceLine{
				PONumber:    rec.PONumber,
				Part:        rec.Part,
				Qty:         rec.Qty,
				Description: item.Description,
				UnitPrice:   item.UnitPrice,
				LineTotal:   item.LineTotal,
			})
			subtotal = subtotal.Add(item.LineTotal)
		}

		fees := decimal.Zero
		invoices = append(invoices, models.Invoice{
			Reference: SanitizeReference(ref),
			SourceRef: ref,
			ProdDate:  group.ProdDate,
			Lines:     lines,
			Subtotal:  subtotal,
			Fees:      fees,
			Total:     subtotal.Add(fees),
		})
	}

	return invoices, nil
}
