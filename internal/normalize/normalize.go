package normalize

import (
	"math"

	"github.com/google/uuid"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// ToStagingRow tags a source row with its import batch and row number.
// String fields are whitespace-normalized and NaN numbers become nil so the
// database never stores values the catalog builder would reject as absent.
func ToStagingRow(row *model.CatalogRow, batchID uuid.UUID, rowNum int64) *model.StagingRow {
	return &model.StagingRow{
		ImportBatchID:       batchID,
		SourceRowNumber:     rowNum,
		InsulinType:         NormalizeName(row.InsulinType),
		ConcentrationUPerML: finite(row.ConcentrationUPerML),
		Form:                NormalizeName(row.Form),
		AmountPerDevice:     finite(row.AmountPerDevice),
	}
}

func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
