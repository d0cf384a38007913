// Package formstate tracks the editing lifecycle of a single form: current
// values, per-field validation messages, and completion progress.
package formstate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskform/go-riskform/pkg/defaults"
	"github.com/riskform/go-riskform/pkg/model"
	"github.com/riskform/go-riskform/pkg/validation"
)

var ErrUnknownField = errors.New("form state: field not in form")

// State holds the mutable form session. Values and errors are keyed by
// field name; only names present in the form are accepted.
type State struct {
	form   model.FormModel
	values map[string]any
	errs   map[string]string
}

// New builds a State seeded with default values for every field. The seed
// values are not validated up front; errors accumulate as fields are edited
// or when Validate runs.
func New(form model.FormModel) *State {
	return &State{
		form:   form,
		values: defaults.Seed(form),
		errs:   map[string]string{},
	}
}

// NewEmpty builds a State with no seeded values.
func NewEmpty(form model.FormModel) *State {
	return &State{
		form:   form,
		values: make(map[string]any, len(form.Fields)),
		errs:   map[string]string{},
	}
}

// Form returns the form definition the state was built from.
func (s *State) Form() model.FormModel {
	return s.form
}

// SetValue stores a value and immediately re-validates the single field it
// belongs to. Names that are not part of the form are rejected.
func (s *State) SetValue(name string, value any) error {
	field, ok := s.form.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	s.values[name] = value
	if msg := validation.Field(field, value); msg != "" {
		s.errs[name] = msg
	} else {
		delete(s.errs, name)
	}
	return nil
}

// Value returns the current value for a field.
func (s *State) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Values returns a copy of the current value map.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current per-field error messages.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// Error returns the current message for one field, if any.
func (s *State) Error(name string) (string, bool) {
	msg, ok := s.errs[name]
	return msg, ok
}

// Validate re-runs validation across the whole form, replacing the error
// set, and reports whether the form is submittable.
func (s *State) Validate() bool {
	s.errs = validation.Form(s.form, s.values)
	return len(s.errs) == 0
}

// Progress reports how much of the form is filled in, as a fraction in
// [0, 1]. A field counts as filled when its value is non-empty, regardless
// of validity. Empty forms report 1.
func (s *State) Progress() float64 {
	if len(s.form.Fields) == 0 {
		return 1
	}
	filled := 0
	for _, field := range s.form.Fields {
		if v, ok := s.values[field.Name]; ok && !isEmpty(v) {
			filled++
		}
	}
	return float64(filled) / float64(len(s.form.Fields))
}

func isEmpty(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}
