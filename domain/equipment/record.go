package equipment

import "time"

// Record is a fully normalized equipment row, ready to persist. Canonical
// fields that could not be coerced (or were absent) are nil pointers; the
// dynamic columns live in Attributes.
type Record struct {
	EquipmentID  string
	Name         string
	Type         string
	Manufacturer string
	ModelNumber  string
	SerialNumber string
	Location     string
	Status       Status
	Notes        string

	Capacity    *float64
	Flowrate    *float64
	Pressure    *float64
	Temperature *float64

	InstallationDate *time.Time
	LastMaintenance  *time.Time

	Attributes Attributes
}
