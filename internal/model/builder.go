package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/riskform/go-riskform/pkg/schema"
)

var errNoDescriptors = errors.New("infer: descriptor set is empty")

// Builder derives UI form models from raw field descriptors. Inference is
// an ordered rule set evaluated per field; the first matching rule wins
// and later rules never reshape its output.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build converts a predictor descriptor set into a FormModel. Descriptor
// order is preserved; when two raw names canonicalize to the same field
// (gender/sex) only the first occurrence produces a form field.
func (b *Builder) Build(s schema.PredictorSchema) (FormModel, error) {
	if len(s.Fields) == 0 {
		return FormModel{}, errNoDescriptors
	}

	form := FormModel{
		PredictorID: s.ID,
		Name:        s.Name,
		Description: s.Description,
		Fields:      make([]FormField, 0, len(s.Fields)),
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for _, fd := range s.Fields {
		canonical := CanonicalName(fd.Name)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		form.Fields = append(form.Fields, b.inferField(fd, canonical))
	}
	return form, nil
}

// inferField applies the priority rules. The boolean allow-list is checked
// ahead of the numeric rule on purpose: the backing flags are int-typed on
// the wire, and letting the numeric rule claim them first would render
// known yes/no questions as bare number inputs.
func (b *Builder) inferField(fd schema.FieldDescriptor, canonical string) FormField {
	field := FormField{
		Name:        canonical,
		Label:       b.opts.Labeler(canonical, fd.Description),
		Required:    true,
		Description: fd.Description,
	}

	switch {
	case canonical == "gender":
		field.Widget = WidgetSingleSelect
		field.Options = GenderOptions()
		field.Label = "Gender"

	case applyKnownField(&field, canonical):
		// Constraints were filled from the hand-specified table.

	case isBooleanField(fd, canonical):
		field.Widget = WidgetBinaryChoice
		field.Options = BinaryOptions()

	case fd.Type == schema.PrimitiveInt || fd.Type == schema.PrimitiveFloat:
		field.Widget = WidgetNumber
		if fd.Type == schema.PrimitiveFloat {
			field.Step = floatPtr(0.1)
		}

	case applyScalePattern(&field, fd.Description):
		// min/max were parsed from the "0-N scale" pattern.

	default:
		field.Widget = WidgetFreeText
	}

	return field
}

func applyKnownField(field *FormField, canonical string) bool {
	spec, ok := knownFieldSpecs[canonical]
	if !ok {
		return false
	}
	if len(spec.options) > 0 {
		field.Widget = WidgetSingleSelect
		field.Options = append([]string(nil), spec.options...)
		return true
	}
	field.Widget = WidgetNumber
	if spec.hasRange {
		field.Min = floatPtr(spec.min)
		field.Max = floatPtr(spec.max)
	}
	if spec.hasStep {
		field.Step = floatPtr(spec.step)
	}
	field.Unit = spec.unit
	return true
}

var yesNoLiteralPattern = regexp.MustCompile(`(?i)1\s*=\s*yes\s*,\s*0\s*=\s*no`)

// isBooleanField combines the allow-list with the description detector.
// The exact "1 = yes, 0 = no" literal is trusted for any primitive type;
// the looser both-words check applies only to string-typed fields, where
// the value really is the word Yes or No on the wire.
func isBooleanField(fd schema.FieldDescriptor, canonical string) bool {
	if IsBooleanFlag(canonical) {
		return true
	}
	if yesNoLiteralPattern.MatchString(fd.Description) {
		return true
	}
	if fd.Type != schema.PrimitiveString {
		return false
	}
	lower := strings.ToLower(fd.Description)
	return strings.Contains(lower, "yes") && strings.Contains(lower, "no")
}

var scalePattern = regexp.MustCompile(`(?i)0\s*-\s*(\d+)\s*scale`)

func applyScalePattern(field *FormField, description string) bool {
	match := scalePattern.FindStringSubmatch(description)
	if match == nil {
		return false
	}
	upper, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return false
	}
	field.Widget = WidgetNumber
	field.Min = floatPtr(0)
	field.Max = floatPtr(upper)
	field.Step = floatPtr(1)
	return true
}
