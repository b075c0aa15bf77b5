package catalogsrc

import (
	"bytes"
	_ "embed"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// DefaultName identifies the embedded catalog in logs and import records.
const DefaultName = "embedded:insulin_rx.csv"

//go:embed data/insulin_rx.csv
var defaultCSV []byte

// Default returns the rows of the catalog table shipped with the binary.
func Default() ([]model.CatalogRow, error) {
	r, err := OpenDefault()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadAll(r)
}

// OpenDefault streams the embedded catalog table.
func OpenDefault() (RowReader, error) {
	r, err := newCSVReader(DefaultName, bytes.NewReader(defaultCSV), nil)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultBytes returns the raw embedded CSV.
func DefaultBytes() []byte {
	return defaultCSV
}
