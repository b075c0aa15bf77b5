// Package catalogsrc reads insulin catalog rows from xlsx, csv or parquet
// files, or from the catalog table embedded in the binary.
package catalogsrc

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// ErrUnavailable is returned when a catalog source cannot be opened or read.
var ErrUnavailable = errors.New("catalog source unavailable")

// RowReader streams catalog rows. Read follows io.Reader conventions: it
// returns io.EOF once every row has been delivered.
type RowReader interface {
	Read(rows []model.CatalogRow) (int, error)
	Close() error
}

// Format is a catalog file format.
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported catalog file %q (want .xlsx, .csv or .parquet)", path)
	}
}

// Open returns a RowReader for path. Open and read failures wrap
// ErrUnavailable; a malformed header does not.
func Open(path string) (RowReader, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return OpenXLSX(path, "")
	case FormatCSV:
		return OpenCSV(path)
	default:
		r, err := OpenParquet(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// Load reads every row from path.
func Load(path string) ([]model.CatalogRow, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadAll(r)
}

// ReadAll drains r.
func ReadAll(r RowReader) ([]model.CatalogRow, error) {
	var all []model.CatalogRow
	buf := make([]model.CatalogRow, 256)
	for {
		n, err := r.Read(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return all, err
		}
	}
}
