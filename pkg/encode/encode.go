// Package encode turns edited form values into the submission payload the
// scoring service expects. The declared wire type of each backend field
// decides its encoding: int-typed fields receive the integer codes of the
// service's training data, float-typed fields are parsed, and string-typed
// fields travel as the display string. Field names are rewritten to the
// per-predictor aliases the service was trained with.
package encode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskform/go-riskform/pkg/model"
	"github.com/riskform/go-riskform/pkg/schema"
)

var ErrUnmappedValue = errors.New("encode: value has no categorical mapping")

// Payload is the request body of a scoring submission.
type Payload struct {
	PredictorType   string         `json:"predictor_type"`
	Data            map[string]any `json:"data"`
	IncludeAnalysis bool           `json:"include_analysis"`
}

// fieldAliases rewrites canonical field names back to the names a given
// predictor's service-side model was trained with.
var fieldAliases = map[string]map[string]string{
	"heart_disease": {"gender": "sex"},
}

// wireName resolves the service-side name for a field of a predictor.
func wireName(predictorID, field string) string {
	if aliases, ok := fieldAliases[predictorID]; ok {
		if alias, ok := aliases[field]; ok {
			return alias
		}
	}
	return field
}

// Submission encodes form values into a payload. The descriptors carry the
// backend's declared types, looked up by wire name. Empty values are
// omitted; display strings with no known mapping encode to 0.
func Submission(form model.FormModel, descriptors schema.PredictorSchema, values map[string]any, includeAnalysis bool) Payload {
	payload, _ := build(form, descriptors, values, includeAnalysis, false)
	return payload
}

// SubmissionStrict behaves like Submission but fails on select values that
// have no categorical mapping instead of encoding them to 0.
func SubmissionStrict(form model.FormModel, descriptors schema.PredictorSchema, values map[string]any, includeAnalysis bool) (Payload, error) {
	return build(form, descriptors, values, includeAnalysis, true)
}

func build(form model.FormModel, descriptors schema.PredictorSchema, values map[string]any, includeAnalysis, strict bool) (Payload, error) {
	data := make(map[string]any, len(form.Fields))

	for _, field := range form.Fields {
		raw, ok := values[field.Name]
		if !ok {
			continue
		}
		text := strings.TrimSpace(stringify(raw))
		if text == "" {
			continue
		}

		wire := wireName(form.PredictorID, field.Name)
		encoded, err := encodeValue(field, declaredType(descriptors, wire, field.Name), text, strict)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %s=%q", ErrUnmappedValue, field.Name, text)
		}
		data[wire] = encoded
	}

	return Payload{
		PredictorType:   form.PredictorID,
		Data:            data,
		IncludeAnalysis: includeAnalysis,
	}, nil
}

// declaredType resolves the backend wire type of a field. The wire name is
// authoritative; the canonical UI name covers descriptors that were never
// aliased. An empty result means no descriptor is known.
func declaredType(descriptors schema.PredictorSchema, wire, canonical string) schema.PrimitiveType {
	if fd, ok := descriptors.Field(wire); ok {
		return fd.Type
	}
	if fd, ok := descriptors.Field(canonical); ok {
		return fd.Type
	}
	return ""
}

// encodeValue dispatches on the backend's declared type. String-typed
// fields pass through unchanged: the service expects the words, not codes.
// Fields without a descriptor fall back to the widget-kind tables.
func encodeValue(field model.FormField, declared schema.PrimitiveType, text string, strict bool) (any, error) {
	switch declared {
	case schema.PrimitiveInt:
		return encodeInt(field, text, strict)
	case schema.PrimitiveFloat:
		return encodeFloat(text), nil
	case schema.PrimitiveString:
		return text, nil
	default:
		return encodeWidget(field, text, strict)
	}
}

// encodeInt maps a display value onto the integer code of an int-typed
// backend field. Unmatched categorical strings default to 0; that silent
// fallback mirrors the scoring service and is the known sharp edge of the
// wire contract.
func encodeInt(field model.FormField, text string, strict bool) (any, error) {
	if field.Name == "gender" {
		return encodeGender(text, strict)
	}
	if idx, ok := model.CategoricalIndex(field.Name, text); ok {
		return idx, nil
	}
	if code, err := encodeBinary(text, true); err == nil {
		return code, nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int(f), nil
	}
	if strict && len(field.Options) > 0 {
		return nil, ErrUnmappedValue
	}
	return 0, nil
}

func encodeFloat(text string) float64 {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return f
}

// encodeWidget is the descriptor-less fallback, keyed on the inferred
// widget kind.
func encodeWidget(field model.FormField, text string, strict bool) (any, error) {
	switch field.Widget {
	case model.WidgetBinaryChoice:
		return encodeBinary(text, strict)

	case model.WidgetSingleSelect:
		if field.Name == "gender" {
			return encodeGender(text, strict)
		}
		if idx, ok := model.CategoricalIndex(field.Name, text); ok {
			return idx, nil
		}
		// Binary answers can surface on plain selects too.
		if code, err := encodeBinary(text, true); err == nil {
			return code, nil
		}
		if strict {
			return nil, ErrUnmappedValue
		}
		return 0, nil

	case model.WidgetNumber:
		return encodeNumber(text), nil

	default:
		return text, nil
	}
}

func encodeGender(text string, strict bool) (any, error) {
	switch strings.ToLower(text) {
	case "female", "f", "0":
		return 0, nil
	case "male", "m", "1":
		return 1, nil
	}
	if strict {
		return nil, ErrUnmappedValue
	}
	return 0, nil
}

func encodeBinary(text string, strict bool) (any, error) {
	switch strings.ToLower(text) {
	case "no", "n", "false", "0":
		return 0, nil
	case "yes", "y", "true", "1":
		return 1, nil
	}
	if strict {
		return nil, ErrUnmappedValue
	}
	return 0, nil
}

// encodeNumber keeps integral values as int so the JSON body matches what
// the service's feature pipeline expects for count-like fields.
func encodeNumber(text string) any {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return 0
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
