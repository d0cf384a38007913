package model

// WidgetKind is the input control type a field renders as.
type WidgetKind string

const (
	WidgetNumber       WidgetKind = "number"
	WidgetSingleSelect WidgetKind = "single-select"
	WidgetBinaryChoice WidgetKind = "binary-choice"
	WidgetFreeText     WidgetKind = "free-text"
)

// FormField is the UI-ready field definition derived from a raw descriptor.
// Created once per predictor load and never mutated afterward. Options keep
// domain order, not alphabetical: for binary-choice fields index 0 is "No"
// and for gender index 0 is "Female", matching the numeric encoding the
// scoring service expects.
type FormField struct {
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Widget      WidgetKind `json:"widget"`
	Required    bool       `json:"required"`
	Options     []string   `json:"options,omitempty"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Step        *float64   `json:"step,omitempty"`
	Unit        string     `json:"unit,omitempty"`
	Description string     `json:"description,omitempty"`
}

// FormModel is the top-level form representation for one predictor. Field
// order is the descriptor order, which is the canonical display order.
type FormModel struct {
	PredictorID string      `json:"predictorId"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
}

// Field looks up a form field by its canonical name.
func (m FormModel) Field(name string) (FormField, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FormField{}, false
}

func floatPtr(v float64) *float64 { return &v }
