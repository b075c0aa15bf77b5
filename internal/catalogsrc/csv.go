package catalogsrc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// OpenCSV opens a comma-separated catalog export with a header row.
func OpenCSV(path string) (RowReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	r, err := newCSVReader(path, f, f.Close)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func newCSVReader(source string, in io.Reader, closeFn func() error) (*tableReader, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return newTableReader(source, cr.Read, closeFn)
}
