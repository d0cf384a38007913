// Package validation checks form values against their field definitions
// and produces user-facing error messages keyed by field name.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskform/go-riskform/pkg/model"
)

// Realism bounds applied on top of per-field ranges. A value can pass its
// field's declared range and still fail these.
const (
	ageRealisticMin = 0
	ageRealisticMax = 150
	bpRealisticMin  = 50
	bpRealisticMax  = 300
)

// Field validates a single value against its field definition. It returns
// the first failing rule's message, or the empty string when the value is
// acceptable.
func Field(field model.FormField, value any) string {
	text := strings.TrimSpace(stringify(value))

	if text == "" {
		if field.Required {
			return fmt.Sprintf("%s is required", field.Label)
		}
		return ""
	}

	if field.Widget != model.WidgetNumber {
		return ""
	}

	number, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Sprintf("%s must be a valid number", field.Label)
	}

	if field.Min != nil && number < *field.Min {
		return fmt.Sprintf("%s must be at least %s", field.Label, formatBound(*field.Min))
	}
	if field.Max != nil && number > *field.Max {
		return fmt.Sprintf("%s must be no more than %s", field.Label, formatBound(*field.Max))
	}

	return realism(field, number)
}

// realism applies name-based sanity bounds independent of the field's own
// declared range.
func realism(field model.FormField, number float64) string {
	name := strings.ToLower(field.Name)

	if name == "age" || strings.HasSuffix(name, "_age") || strings.HasPrefix(name, "age_") {
		if number < ageRealisticMin || number > ageRealisticMax {
			return fmt.Sprintf("%s must be between %d and %d", field.Label, ageRealisticMin, ageRealisticMax)
		}
	}

	if strings.Contains(name, "bp") || strings.Contains(name, "blood_pressure") {
		if number < bpRealisticMin || number > bpRealisticMax {
			return fmt.Sprintf("%s must be between %d and %d", field.Label, bpRealisticMin, bpRealisticMax)
		}
	}

	return ""
}

// Form validates every field of a form against the supplied values, in
// field order. The result maps field names to messages and contains only
// the fields that failed.
func Form(form model.FormModel, values map[string]any) map[string]string {
	failures := map[string]string{}
	for _, field := range form.Fields {
		if msg := Field(field, values[field.Name]); msg != "" {
			failures[field.Name] = msg
		}
	}
	return failures
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
