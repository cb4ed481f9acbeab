package models

import "time"

// LineRecord is one raw row of a production order as stored in the database.
// String fields are trimmed by the repository before the record leaves the
// store layer; records are never mutated after that.
type LineRecord struct {
	Reference string
	PONumber  string
	Part      string
	AliasPart string
	Qty       int
	ProdDate  time.Time
}

// OrderGroup holds all line records sharing one business reference.
// The record sequence preserves store order and is never empty; ProdDate is
// the production date shared by every record in the group.
type OrderGroup struct {
	ProdDate time.Time
	Records  []LineRecord
}
