package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedFields = errors.New("schema: malformed fields response")

// fieldsResponse mirrors the descriptor-fetch payload of the scoring
// service. required_fields and field_descriptions are parsed separately so
// field order can be recovered from the raw document.
type fieldsResponse struct {
	PredictorType     string            `json:"predictor_type"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	RequiredFields    map[string]string `json:"required_fields"`
	FieldDescriptions map[string]string `json:"field_descriptions"`
}

// ParseFieldsResponse decodes a descriptor-fetch payload. The JSON object
// order of required_fields is preserved as the field order.
func ParseFieldsResponse(raw []byte) (PredictorSchema, error) {
	var resp fieldsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return PredictorSchema{}, fmt.Errorf("%w: %v", ErrMalformedFields, err)
	}

	order, err := orderedRequiredFields(raw)
	if err != nil {
		return PredictorSchema{}, err
	}

	s := PredictorSchema{
		ID:          resp.PredictorType,
		Name:        resp.Name,
		Description: resp.Description,
		Fields:      make([]FieldDescriptor, 0, len(order)),
	}
	for _, name := range order {
		typ, err := ParsePrimitive(resp.RequiredFields[name])
		if err != nil {
			return PredictorSchema{}, fmt.Errorf("field %q: %w", name, err)
		}
		s.Fields = append(s.Fields, FieldDescriptor{
			Name:        name,
			Type:        typ,
			Description: resp.FieldDescriptions[name],
		})
	}
	return s, nil
}

// orderedRequiredFields walks the raw token stream to recover the key
// order of the required_fields object, which encoding/json maps discard.
func orderedRequiredFields(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFields, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrMalformedFields
		}
		if key != "required_fields" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		var order []string
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedFields, err)
			}
			name, ok := tok.(string)
			if !ok {
				return nil, ErrMalformedFields
			}
			order = append(order, name)
			if err := skipValue(dec); err != nil {
				return nil, err
			}
		}
		return order, nil
	}
	return nil, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFields, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return ErrMalformedFields
	}
	return nil
}

// skipValue consumes exactly one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFields, err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
