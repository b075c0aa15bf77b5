package model

// InsulinRecord is one dispensable (insulin, concentration, device) product.
type InsulinRecord struct {
	Name           string  `json:"name"`
	Concentration  string  `json:"concentration"` // e.g. "U-100"
	DeviceForm     string  `json:"device_form"`   // e.g. "Pen", "Vial", "Cartridge"
	UnitsPerDevice float64 `json:"units_per_device"`
}
