package catalogsrc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// ParquetReader wraps a parquet GenericReader for streaming CatalogRow records.
type ParquetReader struct {
	file   *os.File
	reader *parquet.GenericReader[model.CatalogRow]
}

// OpenParquet opens a Parquet file, validates its schema and returns a
// streaming reader.
func OpenParquet(path string) (*ParquetReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet file: %v", ErrUnavailable, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat parquet file: %v", ErrUnavailable, err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: open parquet: %v", ErrUnavailable, err)
	}
	if err := ValidateSchema(pf.Schema()); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r := parquet.NewGenericReader[model.CatalogRow](pf)
	return &ParquetReader{file: f, reader: r}, nil
}

// NumRows returns the total number of rows in the Parquet file.
func (r *ParquetReader) NumRows() int64 {
	return r.reader.NumRows()
}

// Read reads up to len(rows) records into the provided slice.
// Returns the number of rows read and io.EOF when done.
func (r *ParquetReader) Read(rows []model.CatalogRow) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: read parquet rows: %v", ErrUnavailable, err)
	}
	return n, err
}

// Close releases all resources.
func (r *ParquetReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// ParquetColumns are the column names CatalogRow maps to.
func ParquetColumns() []string {
	return []string{"insulin_type", "concentration_u_ml", "form", "amount_device"}
}

// ValidateSchema checks that the Parquet schema contains every catalog column.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	var missing []string
	for _, col := range ParquetColumns() {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// WriteParquet writes rows to path.
func WriteParquet(path string, rows []model.CatalogRow) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer := parquet.NewGenericWriter[model.CatalogRow](out)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return out.Close()
}
