package catalogsrc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
)

// headerAliases maps folded header text to the canonical column. Parquet
// column names are accepted in csv/xlsx headers too.
var headerAliases = map[string]string{
	"insulin type":       model.ColumnInsulinType,
	"insulin_type":       model.ColumnInsulinType,
	"concentration u/ml": model.ColumnConcentration,
	"concentration_u_ml": model.ColumnConcentration,
	"form":               model.ColumnForm,
	"amount/device":      model.ColumnAmount,
	"amount_device":      model.ColumnAmount,
}

// columnIndex maps each canonical column to its position in a record.
type columnIndex map[string]int

// indexHeader validates a header record.
func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(headerAliases))
	for i, h := range header {
		key := normalize.FoldKey(strings.TrimPrefix(h, "\ufeff"))
		if col, ok := headerAliases[key]; ok {
			if _, dup := idx[col]; !dup {
				idx[col] = i
			}
		}
	}
	var missing []string
	for _, col := range model.CatalogColumns() {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// tableReader turns string records (csv lines, sheet rows) into CatalogRows.
type tableReader struct {
	next   func() ([]string, error)
	close  func() error
	cols   columnIndex
	source string
	line   int
}

func newTableReader(source string, next func() ([]string, error), closeFn func() error) (*tableReader, error) {
	header, err := next()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty catalog (no header row)", source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read header: %v", ErrUnavailable, source, err)
	}
	cols, err := indexHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &tableReader{next: next, close: closeFn, cols: cols, source: source, line: 1}, nil
}

func (t *tableReader) Read(rows []model.CatalogRow) (int, error) {
	n := 0
	for n < len(rows) {
		rec, err := t.next()
		if err == io.EOF {
			return n, io.EOF
		}
		if err != nil {
			return n, fmt.Errorf("%w: %s line %d: %v", ErrUnavailable, t.source, t.line+1, err)
		}
		t.line++
		if blank(rec) {
			continue
		}
		rows[n] = t.row(rec)
		n++
	}
	return n, nil
}

func (t *tableReader) Close() error {
	if t.close == nil {
		return nil
	}
	return t.close()
}

func (t *tableReader) row(rec []string) model.CatalogRow {
	return model.CatalogRow{
		InsulinType:         textCell(t.cell(rec, model.ColumnInsulinType)),
		ConcentrationUPerML: concentrationCell(t.cell(rec, model.ColumnConcentration)),
		Form:                textCell(t.cell(rec, model.ColumnForm)),
		AmountPerDevice:     numberCell(t.cell(rec, model.ColumnAmount)),
	}
}

// cell tolerates short records; spreadsheets drop trailing empty cells.
func (t *tableReader) cell(rec []string, col string) string {
	i := t.cols[col]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func textCell(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// numberCell returns nil for empty or unparseable cells so the row is
// dropped at catalog build.
func numberCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// concentrationCell also accepts labels such as "U-100".
func concentrationCell(s string) *float64 {
	if v := numberCell(s); v != nil {
		return v
	}
	label, err := normalize.ParseConcentration(s)
	if err != nil {
		return nil
	}
	return numberCell(strings.TrimPrefix(label, "U-"))
}
