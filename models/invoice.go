package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine joins one local order line with its remote pricing data.
// UnitPrice and LineTotal are copied verbatim from the remote line item,
// never recomputed locally.
type InvoiceLine struct {
	PONumber    string
	Part        string
	Qty         int
	Description string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Invoice is the normalized invoice for one reference. It is constructed
// fresh each cycle and never persisted; its only durable traces are the
// rendered artifact and the processed mark on the source rows.
//
// Reference is sanitized to [A-Za-z0-9] for display and file naming.
// SourceRef keeps the raw store key so the processed mark hits the actual
// rows (the reference may contain characters the sanitizer strips).
type Invoice struct {
	Reference string
	SourceRef string
	ProdDate  time.Time
	Lines     []InvoiceLine
	Subtotal  decimal.Decimal
	Fees      decimal.Decimal
	Total     decimal.Decimal
}

// TotalQty returns the summed quantity across all lines, shown in the
// rendered summary block.
func (inv Invoice) TotalQty() int {
	qty := 0
	for _, line := range inv.Lines {
		qty += line.Qty
	}
	return qty
}
