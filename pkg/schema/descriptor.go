// Package schema holds the descriptor representation of a predictor: the
// ordered field list a scoring service advertises, before any form
// inference happens.
package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPrimitive = errors.New("schema: unknown primitive type")

// PrimitiveType is the declared wire type of a descriptor field.
type PrimitiveType string

const (
	PrimitiveInt    PrimitiveType = "int"
	PrimitiveFloat  PrimitiveType = "float"
	PrimitiveString PrimitiveType = "string"
)

// ParsePrimitive normalizes a declared type token. Scoring services write
// "str" for strings; both spellings are accepted.
func ParsePrimitive(raw string) (PrimitiveType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "int", "integer":
		return PrimitiveInt, nil
	case "float", "double", "number":
		return PrimitiveFloat, nil
	case "str", "string":
		return PrimitiveString, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPrimitive, raw)
	}
}

// FieldDescriptor is one advertised input field.
type FieldDescriptor struct {
	Name        string
	Type        PrimitiveType
	Description string
}

// PredictorRef is the directory entry for a predictor.
type PredictorRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PredictorSchema is the full descriptor set for one predictor, in the
// order the service advertises it.
type PredictorSchema struct {
	ID          string
	Name        string
	Description string
	Fields      []FieldDescriptor
}

// Field looks up a descriptor by name.
func (s PredictorSchema) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Source resolves the descriptor set for a predictor id. Implementations
// include the live service client, the static catalog, and the OpenAPI
// document reader.
type Source interface {
	Schema(ctx context.Context, predictorID string) (PredictorSchema, error)
}
