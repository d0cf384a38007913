package model

import (
	"github.com/riskform/go-riskform/internal/model"
	"github.com/riskform/go-riskform/pkg/schema"
)

// Builder converts predictor descriptor sets into form models.
type Builder interface {
	Build(s schema.PredictorSchema) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(name, description string) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(name, description string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}

// Infer is a convenience wrapper building a form model with default options.
func Infer(s schema.PredictorSchema) (FormModel, error) {
	return NewBuilder().Build(s)
}
