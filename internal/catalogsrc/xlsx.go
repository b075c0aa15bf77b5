package catalogsrc

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// DefaultSheet is the worksheet read when none is named.
const DefaultSheet = "Sheet1"

// OpenXLSX streams rows from one worksheet. An empty sheet name selects
// DefaultSheet, or the first sheet when the workbook has no Sheet1.
func OpenXLSX(path, sheet string) (RowReader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrUnavailable, path, err)
	}

	if sheet == "" {
		sheet = pickSheet(f.GetSheetList())
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s sheet %q: %v", ErrUnavailable, path, sheet, err)
	}

	next := func() ([]string, error) {
		if !rows.Next() {
			if err := rows.Error(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return rows.Columns()
	}
	closeFn := func() error {
		rows.Close()
		return f.Close()
	}

	r, err := newTableReader(fmt.Sprintf("%s[%s]", path, sheet), next, closeFn)
	if err != nil {
		closeFn()
		return nil, err
	}
	return r, nil
}

func pickSheet(sheets []string) string {
	for _, s := range sheets {
		if s == DefaultSheet {
			return s
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return DefaultSheet
}

// WriteXLSX writes rows to a new workbook in the spreadsheet layout.
func WriteXLSX(path string, rows []model.CatalogRow) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, 0, 4)
	for _, col := range model.CatalogColumns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(DefaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{deref(row.InsulinType), derefNum(row.ConcentrationUPerML), deref(row.Form), derefNum(row.AmountPerDevice)}
		if err := f.SetSheetRow(DefaultSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// deref returns nil for absent values so the cell is left empty.
func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefNum(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
