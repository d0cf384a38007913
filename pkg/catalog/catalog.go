// Package catalog ships a built-in predictor directory so forms can be
// built and walked without reaching the scoring service. It backs static
// mode and serves as the fallback when a descriptor fetch fails.
package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/riskform/go-riskform/pkg/schema"
)

var ErrNotFound = errors.New("catalog: predictor not found")

//go:embed data/predictors.yaml
var dataFS embed.FS

// document is the on-disk shape of a catalog file.
type document struct {
	Predictors []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Fields      []struct {
			Name        string `yaml:"name"`
			Type        string `yaml:"type"`
			Description string `yaml:"description"`
		} `yaml:"fields"`
	} `yaml:"predictors"`
}

// Catalog is an in-memory predictor directory. It implements
// schema.Source. The zero value is empty; use New for the built-in set.
type Catalog struct {
	order   []string
	entries map[string]schema.PredictorSchema
}

// New loads the built-in predictor set.
func New() *Catalog {
	c := &Catalog{entries: map[string]schema.PredictorSchema{}}
	raw, err := dataFS.ReadFile("data/predictors.yaml")
	if err != nil {
		// The file is compiled in; a read failure is a build defect.
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}
	if err := c.merge(raw); err != nil {
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}
	return c
}

// Empty returns a catalog with no predictors, for overlay-only setups.
func Empty() *Catalog {
	return &Catalog{entries: map[string]schema.PredictorSchema{}}
}

func (c *Catalog) merge(raw []byte) error {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("catalog: parse: %w", err)
	}

	for _, p := range doc.Predictors {
		if p.ID == "" {
			return errors.New("catalog: predictor entry missing id")
		}
		entry := schema.PredictorSchema{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Fields:      make([]schema.FieldDescriptor, 0, len(p.Fields)),
		}
		for _, f := range p.Fields {
			typ, err := schema.ParsePrimitive(f.Type)
			if err != nil {
				return fmt.Errorf("catalog: predictor %q field %q: %w", p.ID, f.Name, err)
			}
			entry.Fields = append(entry.Fields, schema.FieldDescriptor{
				Name:        f.Name,
				Type:        typ,
				Description: f.Description,
			})
		}

		if _, exists := c.entries[p.ID]; !exists {
			c.order = append(c.order, p.ID)
		}
		c.entries[p.ID] = entry
	}
	return nil
}

// Predictors lists all known predictors in catalog order.
func (c *Catalog) Predictors() []schema.PredictorRef {
	refs := make([]schema.PredictorRef, 0, len(c.order))
	for _, id := range c.order {
		entry := c.entries[id]
		refs = append(refs, schema.PredictorRef{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
		})
	}
	return refs
}

// Schema returns the descriptor set for a predictor.
func (c *Catalog) Schema(_ context.Context, predictorID string) (schema.PredictorSchema, error) {
	entry, ok := c.entries[predictorID]
	if !ok {
		return schema.PredictorSchema{}, fmt.Errorf("%w: %q", ErrNotFound, predictorID)
	}
	return entry, nil
}

// Has reports whether a predictor id is known.
func (c *Catalog) Has(predictorID string) bool {
	_, ok := c.entries[predictorID]
	return ok
}

// Len returns the number of predictors in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}
