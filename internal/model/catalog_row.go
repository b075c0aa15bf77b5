package model

// CatalogRow mirrors one row of the insulin catalog source table. Every
// field is optional because spreadsheet rows are frequently incomplete;
// incomplete rows are dropped when the catalog is built.
type CatalogRow struct {
	InsulinType         *string  `parquet:"insulin_type,optional"`
	ConcentrationUPerML *float64 `parquet:"concentration_u_ml,optional"`
	Form                *string  `parquet:"form,optional"`
	AmountPerDevice     *float64 `parquet:"amount_device,optional"`
}

// Source column headers as they appear in the spreadsheet export.
const (
	ColumnInsulinType   = "Insulin Type"
	ColumnConcentration = "Concentration u/ml"
	ColumnForm          = "Form"
	ColumnAmount        = "Amount/Device"
)

// CatalogColumns returns the spreadsheet headers in canonical order.
func CatalogColumns() []string {
	return []string{ColumnInsulinType, ColumnConcentration, ColumnForm, ColumnAmount}
}
