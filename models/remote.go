package models

import "github.com/shopspring/decimal"

// RemoteLineItem is one line item of an order held by the remote order
// service, keyed by product identifier within its order.
type RemoteLineItem struct {
	ProductID   string
	Description string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// RemoteOrderIndex maps reference -> product identifier -> line item.
// Built once per cycle by the reconciler and read-only afterward.
type RemoteOrderIndex map[string]map[string]RemoteLineItem

// RemoteOrderList is the wire shape of the order service's order search
// response. The expected case returns at most one order per reference.
type RemoteOrderList struct {
	Items []RemoteOrder `json:"Items"`
}

// RemoteOrder is a single order as returned by the order service.
type RemoteOrder struct {
	Items []RemoteOrderItem `json:"Items"`
}

// RemoteOrderItem is the wire shape of one order line item.
type RemoteOrderItem struct {
	ProductIDOriginal string          `json:"ProductIDOriginal"`
	ProductName       string          `json:"ProductName"`
	PricePerCase      decimal.Decimal `json:"PricePerCase"`
	LineTotal         decimal.Decimal `json:"LineTotal"`
}
