package model

import "github.com/google/uuid"

// StagingRow is a catalog row tagged with its import batch, ready for COPY
// into catalog.insulin_rows. Values are stored as read; the catalog builder
// decides which rows are usable.
type StagingRow struct {
	ImportBatchID   uuid.UUID
	SourceRowNumber int64

	InsulinType         *string
	ConcentrationUPerML *float64
	Form                *string
	AmountPerDevice     *float64
}

// StagingColumns returns the ordered column names for COPY into catalog.insulin_rows.
func StagingColumns() []string {
	return []string{
		"import_batch_id",
		"source_row_number",
		"insulin_type",
		"concentration_u_ml",
		"form",
		"amount_device",
	}
}

// CopyValues returns the row values in the same order as StagingColumns(),
// suitable for pgx CopyFromSource.
func (r *StagingRow) CopyValues() []any {
	return []any{
		r.ImportBatchID,
		r.SourceRowNumber,
		r.InsulinType,
		r.ConcentrationUPerML,
		r.Form,
		r.AmountPerDevice,
	}
}

// CatalogRow drops the import bookkeeping.
func (r *StagingRow) CatalogRow() CatalogRow {
	return CatalogRow{
		InsulinType:         r.InsulinType,
		ConcentrationUPerML: r.ConcentrationUPerML,
		Form:                r.Form,
		AmountPerDevice:     r.AmountPerDevice,
	}
}
