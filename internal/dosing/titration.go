package dosing

import (
	"strings"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/normalize"
)

// TitrationOverride selects products titrated in 2 unit steps. Empty
// Concentration or DeviceForm match anything; DeviceForm matches as a
// case-insensitive substring.
type TitrationOverride struct {
	Insulin       string
	Concentration string
	DeviceForm    string
}

// DefaultTitrationOverrides: Tresiba U-200 and the Toujeo DoubleStar pen dial
// in 2 unit steps.
func DefaultTitrationOverrides() []TitrationOverride {
	return []TitrationOverride{
		{Insulin: "Tresiba", Concentration: "U-200"},
		{Insulin: "Toujeo", DeviceForm: "DoubleStar"},
	}
}

// Matches reports whether the override applies to rec.
func (o TitrationOverride) Matches(rec model.InsulinRecord) bool {
	if normalize.FoldKey(o.Insulin) != normalize.FoldKey(rec.Name) {
		return false
	}
	if o.Concentration != "" && !strings.EqualFold(o.Concentration, rec.Concentration) {
		return false
	}
	if o.DeviceForm != "" && !strings.Contains(normalize.FoldKey(rec.DeviceForm), normalize.FoldKey(o.DeviceForm)) {
		return false
	}
	return true
}

// TitrationIncrement returns 2 for overridden products and 1 otherwise.
func TitrationIncrement(rec model.InsulinRecord, overrides []TitrationOverride) int {
	for _, o := range overrides {
		if o.Matches(rec) {
			return OverriddenIncrement
		}
	}
	return DefaultIncrement
}
