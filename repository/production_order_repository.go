package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"dropship-invoicer/db"
	"dropship-invoicer/models"
)

// ProductionOrderRepository handles database operations for production orders
// Implements ProductionOrderRepositoryInterface
type ProductionOrderRepository struct{}

// NewProductionOrderRepository creates a new ProductionOrderRepository
func NewProductionOrderRepository() *ProductionOrderRepository {
	return &ProductionOrderRepository{}
}

// Ensure ProductionOrderRepository implements ProductionOrderRepositoryInterface
var _ ProductionOrderRepositoryInterface = (*ProductionOrderRepository)(nil)

// GetUnprocessed returns every order line that has not been invoiced yet and
// already exists in the remote order service. String fields come back
// trimmed; rows with an empty reference or PO number after trimming are a
// source-data error and abort the fetch.
func (r *ProductionOrderRepository) GetUnprocessed(ctx context.Context) ([]models.LineRecord, error) {
	query := `
		SELECT ref_number, po_number, rc_part,
		       COALESCE(alias_part, '') as alias_part,
		       qty, prod_date
		FROM production_orders
		WHERE pdf_invoiced = false AND in_source_system = true
		ORDER BY id
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unprocessed orders: %w", err)
	}
	defer rows.Close()

	var records []models.LineRecord
	for rows.Next() {
		var rec models.LineRecord
		err := rows.Scan(
			&rec.Reference,
			&rec.PONumber,
			&rec.Part,
			&rec.AliasPart,
			&rec.Qty,
			&rec.ProdDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		rec.Reference = strings.TrimSpace(rec.Reference)
		rec.PONumber = strings.TrimSpace(rec.PONumber)
		rec.Part = strings.TrimSpace(rec.Part)
		rec.AliasPart = strings.TrimSpace(rec.AliasPart)

		if rec.Reference == "" || rec.PONumber == "" {
			return nil, fmt.Errorf("order row with empty reference or PO number (part %q)", rec.Part)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	log.Printf("✓ Fetched %d unprocessed order lines", len(records))
	return records, nil
}

// MarkInvoiced flags every row of a reference as invoiced and stamps when.
// This is the sole idempotency guard against re-invoicing: once set, the
// rows are never selected again. Re-marking is harmless and simply records
// the newer timestamp.
func (r *ProductionOrderRepository) MarkInvoiced(ctx context.Context, reference string, when time.Time) error {
	query := `
		UPDATE production_orders
		SET pdf_invoiced = true, pdf_invoiced_date = $1
		WHERE ref_number = $2
	`

	result, err := db.DB.ExecContext(ctx, query, when, reference)
	if err != nil {
		return fmt.Errorf("failed to mark reference %q invoiced: %w", reference, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		log.Printf("⚠️  No rows marked for reference %q (record may not exist)", reference)
	}

	return nil
}
