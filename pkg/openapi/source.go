// Package openapi derives predictor descriptor sets from an OpenAPI 3
// document describing a scoring service. Each object schema under
// components.schemas becomes one predictor: property names and types map
// onto field descriptors, the schema title and description onto predictor
// metadata.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	riskschema "github.com/riskform/go-riskform/pkg/schema"
)

var (
	ErrEmptyDocument = errors.New("openapi source: document payload is empty")
	ErrNotFound      = errors.New("openapi source: predictor schema not found")
)

// Source reads descriptor sets out of a parsed OpenAPI document. It
// implements riskschema.Source.
type Source struct {
	doc *openapi3.T
}

// Load parses an OpenAPI document from raw bytes.
func Load(ctx context.Context, raw []byte) (*Source, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi source: load document: %w", err)
	}
	return &Source{doc: doc}, nil
}

// LoadFile parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*Source, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi source: load %s: %w", path, err)
	}
	return &Source{doc: doc}, nil
}

// Predictors lists the predictor ids the document defines, sorted.
func (s *Source) Predictors() []riskschema.PredictorRef {
	if s.doc == nil || s.doc.Components == nil {
		return nil
	}
	var refs []riskschema.PredictorRef
	for name, ref := range s.doc.Components.Schemas {
		if !isPredictorSchema(ref) {
			continue
		}
		refs = append(refs, riskschema.PredictorRef{
			ID:          name,
			Name:        ref.Value.Title,
			Description: ref.Value.Description,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

// Schema resolves one predictor's descriptor set. Required properties come
// first in their declared required order; the rest follow sorted by name,
// since JSON/YAML object order is not recoverable through the loader.
func (s *Source) Schema(ctx context.Context, predictorID string) (riskschema.PredictorSchema, error) {
	if err := ctx.Err(); err != nil {
		return riskschema.PredictorSchema{}, err
	}
	if s.doc == nil || s.doc.Components == nil {
		return riskschema.PredictorSchema{}, fmt.Errorf("%w: %q", ErrNotFound, predictorID)
	}

	ref, ok := s.doc.Components.Schemas[predictorID]
	if !ok || !isPredictorSchema(ref) {
		return riskschema.PredictorSchema{}, fmt.Errorf("%w: %q", ErrNotFound, predictorID)
	}
	value := ref.Value

	out := riskschema.PredictorSchema{
		ID:          predictorID,
		Name:        value.Title,
		Description: value.Description,
	}

	seen := map[string]bool{}
	appendField := func(name string) error {
		prop, ok := value.Properties[name]
		if !ok || prop == nil || prop.Value == nil || seen[name] {
			return nil
		}
		typ, err := primitiveFor(prop.Value)
		if err != nil {
			return fmt.Errorf("openapi source: %s.%s: %w", predictorID, name, err)
		}
		out.Fields = append(out.Fields, riskschema.FieldDescriptor{
			Name:        name,
			Type:        typ,
			Description: prop.Value.Description,
		})
		seen[name] = true
		return nil
	}

	for _, name := range value.Required {
		if err := appendField(name); err != nil {
			return riskschema.PredictorSchema{}, err
		}
	}

	rest := make([]string, 0, len(value.Properties))
	for name := range value.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		if err := appendField(name); err != nil {
			return riskschema.PredictorSchema{}, err
		}
	}

	return out, nil
}

func isPredictorSchema(ref *openapi3.SchemaRef) bool {
	if ref == nil || ref.Value == nil {
		return false
	}
	if len(ref.Value.Properties) == 0 {
		return false
	}
	return firstType(ref.Value.Type) == "" || firstType(ref.Value.Type) == "object"
}

func primitiveFor(s *openapi3.Schema) (riskschema.PrimitiveType, error) {
	switch firstType(s.Type) {
	case "integer", "boolean":
		return riskschema.PrimitiveInt, nil
	case "number":
		return riskschema.PrimitiveFloat, nil
	case "string":
		return riskschema.PrimitiveString, nil
	default:
		return "", fmt.Errorf("unsupported property type %q", firstType(s.Type))
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return strings.ToLower(values[0])
}
