package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskform/go-riskform/pkg/formstate"
	"github.com/riskform/go-riskform/pkg/model"
	"github.com/riskform/go-riskform/pkg/validation"
)

// Walker asks the user for every field of a form, in field order, feeding
// answers into the form state. Invalid answers are re-asked by the prompt
// validator, so a completed walk leaves the state submittable.
type Walker struct {
	driver PromptDriver
}

// WalkerOption adjusts walker construction.
type WalkerOption func(*Walker)

// WithDriver replaces the prompt driver.
func WithDriver(d PromptDriver) WalkerOption {
	return func(w *Walker) { w.driver = d }
}

// NewWalker builds a walker with the terminal driver unless overridden.
func NewWalker(opts ...WalkerOption) *Walker {
	w := &Walker{driver: NewSurveyDriver()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk prompts for every field of the state's form.
func (w *Walker) Walk(ctx context.Context, state *formstate.State) error {
	form := state.Form()
	for _, field := range form.Fields {
		value, err := w.ask(ctx, field, state)
		if err != nil {
			return err
		}
		if err := state.SetValue(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) ask(ctx context.Context, field model.FormField, state *formstate.State) (string, error) {
	message := field.Label
	if field.Unit != "" {
		message = fmt.Sprintf("%s (%s)", field.Label, field.Unit)
	}

	switch field.Widget {
	case model.WidgetSingleSelect, model.WidgetBinaryChoice:
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: currentOptionIndex(field, state),
			Help:         field.Description,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", errors.New("tui: selection out of range")
		}
		return field.Options[idx], nil

	default:
		return w.driver.Input(ctx, InputConfig{
			Message: message,
			Default: currentText(field, state),
			Help:    field.Description,
			Validator: func(answer string) error {
				if msg := validation.Field(field, answer); msg != "" {
					return errors.New(msg)
				}
				return nil
			},
		})
	}
}

func currentOptionIndex(field model.FormField, state *formstate.State) int {
	text := currentText(field, state)
	for i, option := range field.Options {
		if strings.EqualFold(option, text) {
			return i
		}
	}
	return 0
}

func currentText(field model.FormField, state *formstate.State) string {
	value, ok := state.Value(field.Name)
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
