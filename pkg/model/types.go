package model

import internalmodel "github.com/riskform/go-riskform/internal/model"

// WidgetKind re-exports the internal widget enumeration.
type WidgetKind = internalmodel.WidgetKind

const (
	WidgetNumber       = internalmodel.WidgetNumber
	WidgetSingleSelect = internalmodel.WidgetSingleSelect
	WidgetBinaryChoice = internalmodel.WidgetBinaryChoice
	WidgetFreeText     = internalmodel.WidgetFreeText
)

type FormField = internalmodel.FormField
type FormModel = internalmodel.FormModel

// GenderOptions returns the fixed gender option order (Female at index 0).
func GenderOptions() []string { return internalmodel.GenderOptions() }

// BinaryOptions returns the fixed binary-choice option order (No at index 0).
func BinaryOptions() []string { return internalmodel.BinaryOptions() }

// CategoricalLevels returns the ordered option list for a known categorical
// field, or nil when the field has no fixed table.
func CategoricalLevels(name string) []string {
	return internalmodel.CategoricalLevels(name)
}

// CategoricalIndex maps an option string of a known categorical field to
// its wire integer.
func CategoricalIndex(name, value string) (int, bool) {
	return internalmodel.CategoricalIndex(name, value)
}

// CanonicalName maps raw descriptor names onto the internal field name the
// UI uses everywhere (sex collapses onto gender).
func CanonicalName(raw string) string { return internalmodel.CanonicalName(raw) }

// IsBooleanFlag reports whether a field name is on the boolean allow-list.
func IsBooleanFlag(name string) bool { return internalmodel.IsBooleanFlag(name) }
