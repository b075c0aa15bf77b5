// Package catalog holds the immutable insulin product lookup table and its
// per-class views.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
)

// ErrInvalidSelection is returned when an insulin, concentration or device
// form is not present in the catalog.
var ErrInvalidSelection = errors.New("invalid insulin selection")

// Catalog maps insulin name -> concentration label -> device form ->
// units per device. It is built once and never mutated afterwards, so it is
// safe to share between goroutines.
type Catalog struct {
	products map[string]map[string]map[string]float64
	classes  map[string]model.InsulinClass
	folded   map[string]string // FoldKey(name) -> name
}

// BuildStats reports what happened to the source rows.
type BuildStats struct {
	RowsRead    int
	RowsUsed    int
	RowsDropped int
	// Overwrites counts rows that replaced an earlier row with the same
	// (name, concentration, form).
	Overwrites int
}

// Build constructs a Catalog from raw rows. Rows missing a name,
// concentration, form or capacity are skipped. A later row with the same
// (name, concentration, form) silently replaces the capacity of an earlier one.
func Build(rows []model.CatalogRow) (*Catalog, BuildStats) {
	c := &Catalog{
		products: make(map[string]map[string]map[string]float64),
		classes:  make(map[string]model.InsulinClass),
		folded:   make(map[string]string),
	}
	var stats BuildStats

	for i := range rows {
		stats.RowsRead++
		rec, ok := recordFromRow(&rows[i])
		if !ok {
			stats.RowsDropped++
			continue
		}
		stats.RowsUsed++

		byConc, ok := c.products[rec.Name]
		if !ok {
			byConc = make(map[string]map[string]float64)
			c.products[rec.Name] = byConc
			c.classes[rec.Name] = model.ClassOf(rec.Name)
			c.folded[normalize.FoldKey(rec.Name)] = rec.Name
		}
		byForm, ok := byConc[rec.Concentration]
		if !ok {
			byForm = make(map[string]float64)
			byConc[rec.Concentration] = byForm
		}
		if _, dup := byForm[rec.DeviceForm]; dup {
			stats.Overwrites++
		}
		byForm[rec.DeviceForm] = rec.UnitsPerDevice
	}

	return c, stats
}

// Usable reports whether Build would keep row.
func Usable(row *model.CatalogRow) bool {
	_, ok := recordFromRow(row)
	return ok
}

func recordFromRow(row *model.CatalogRow) (model.InsulinRecord, bool) {
	name := normalize.NormalizeName(row.InsulinType)
	conc := normalize.ConcentrationLabel(row.ConcentrationUPerML)
	form := normalize.NormalizeName(row.Form)
	if name == nil || conc == nil || form == nil || row.AmountPerDevice == nil {
		return model.InsulinRecord{}, false
	}
	return model.InsulinRecord{
		Name:           *name,
		Concentration:  *conc,
		DeviceForm:     *form,
		UnitsPerDevice: *row.AmountPerDevice,
	}, true
}

// Len returns the number of insulin names in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Names returns the sorted insulin names belonging to class.
func (c *Catalog) Names(class model.InsulinClass) []string {
	var names []string
	for name, cl := range c.classes {
		if cl == class {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// AllNames returns every insulin name, including unclassified ones.
func (c *Catalog) AllNames() []string {
	names := make([]string, 0, len(c.products))
	for name := range c.products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Class returns the dosing class resolved for name at build time.
func (c *Catalog) Class(name string) (model.InsulinClass, error) {
	canon, err := c.resolve(name)
	if err != nil {
		return model.ClassUnclassified, err
	}
	return c.classes[canon], nil
}

// Concentrations returns the sorted concentration labels for an insulin.
func (c *Catalog) Concentrations(name string) ([]string, error) {
	canon, err := c.resolve(name)
	if err != nil {
		return nil, err
	}
	return sortedKeys(c.products[canon]), nil
}

// Forms returns the sorted device forms for an insulin at a concentration.
func (c *Catalog) Forms(name, concentration string) ([]string, error) {
	canon, err := c.resolve(name)
	if err != nil {
		return nil, err
	}
	byForm, ok := c.products[canon][concentration]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no concentration %q", ErrInvalidSelection, canon, concentration)
	}
	return sortedKeys(byForm), nil
}

// Lookup returns the product record for a full selection.
func (c *Catalog) Lookup(name, concentration, form string) (model.InsulinRecord, error) {
	canon, err := c.resolve(name)
	if err != nil {
		return model.InsulinRecord{}, err
	}
	byForm, ok := c.products[canon][concentration]
	if !ok {
		return model.InsulinRecord{}, fmt.Errorf("%w: %s has no concentration %q", ErrInvalidSelection, canon, concentration)
	}
	units, ok := byForm[form]
	if !ok {
		for f, u := range byForm {
			if normalize.FoldKey(f) == normalize.FoldKey(form) {
				form, units, ok = f, u, true
				break
			}
		}
	}
	if !ok {
		return model.InsulinRecord{}, fmt.Errorf("%w: %s %s has no device form %q", ErrInvalidSelection, canon, concentration, form)
	}
	return model.InsulinRecord{
		Name:           canon,
		Concentration:  concentration,
		DeviceForm:     form,
		UnitsPerDevice: units,
	}, nil
}

// resolve maps a user-supplied name to the catalog key, ignoring case.
func (c *Catalog) resolve(name string) (string, error) {
	if _, ok := c.products[name]; ok {
		return name, nil
	}
	if canon, ok := c.folded[normalize.FoldKey(name)]; ok {
		return canon, nil
	}
	return "", fmt.Errorf("%w: unknown insulin %q", ErrInvalidSelection, name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
