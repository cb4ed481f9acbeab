package invoice

import (
	"errors"
	"fmt"

	"dropship-invoicer/models"
)

// ErrDateMismatch reports line records of one reference carrying different
// production dates. Every row of a reference must share one date; anything
// else would misdate the invoice.
var ErrDateMismatch = errors.New("production date mismatch within reference")

// GroupOrders groups raw line records by business reference. It returns one
// OrderGroup per distinct reference with records appended in input order,
// plus the references in first-seen order so downstream processing stays
// deterministic.
//
// Rows must arrive with non-empty, trimmed reference and PO strings; that is
// the store adapter's job. Divergent production dates within a reference are
// rejected with ErrDateMismatch.
func GroupOrders(rows []models.LineRecord) (map[string]*models.OrderGroup, []string, error) {
	groups := make(map[string]*models.OrderGroup, len(rows))
	var refs []string

	for _, row := range rows {
		group, seen := groups[row.Reference]
		if !seen {
			groups[row.Reference] = &models.OrderGroup{
				ProdDate: row.ProdDate,
				Records:  []models.LineRecord{row},
			}
			refs = append(refs, row.Reference)
			continue
		}

		if !row.ProdDate.Equal(group.ProdDate) {
			return nil, nil, fmt.Errorf("reference %q has rows dated %s and %s: %w",
				row.Reference,
				group.ProdDate.Format("2006-01-02"),
				row.ProdDate.Format("2006-01-02"),
				ErrDateMismatch)
		}
		group.Records = append(group.Records, row)
	}

	return groups, refs, nil
}
