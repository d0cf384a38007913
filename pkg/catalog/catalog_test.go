package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskform/go-riskform/pkg/schema"
)

func TestNewLoadsAllPredictors(t *testing.T) {
	c := New()

	if c.Len() != 23 {
		t.Fatalf("expected 23 predictors, got %d", c.Len())
	}

	for _, id := range []string{
		"heart_disease", "diabetes", "stroke_risk", "cancer_detection",
		"kidney_disease", "liver_disease", "alzheimer", "parkinson",
		"sepsis", "hospital_readmission", "icu_mortality",
		"post_surgery_complication", "pregnancy_complication",
		"obesity_risk", "hypertension", "cholesterol_risk", "mental_health",
		"sleep_apnea", "covid_risk", "asthma_copd", "anemia",
		"thyroid_disorder", "cancer_recurrence",
	} {
		if !c.Has(id) {
			t.Errorf("missing predictor %q", id)
		}
	}
}

func TestSchemaPreservesFieldOrder(t *testing.T) {
	c := New()

	s, err := c.Schema(context.Background(), "heart_disease")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if s.Name != "Heart Disease Risk Predictor" {
		t.Fatalf("name = %q", s.Name)
	}

	var names []string
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	want := []string{
		"age", "sex", "chest_pain_type", "resting_bp", "cholesterol",
		"fasting_blood_sugar", "resting_ecg", "max_heart_rate",
		"exercise_angina", "st_depression", "st_slope", "smoking",
		"family_history",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaFieldTypes(t *testing.T) {
	c := New()

	s, err := c.Schema(context.Background(), "diabetes")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}

	gender, ok := s.Field("gender")
	if !ok {
		t.Fatal("diabetes schema missing gender")
	}
	if gender.Type != schema.PrimitiveString {
		t.Fatalf("diabetes gender type = %v, want string", gender.Type)
	}

	bmi, ok := s.Field("bmi")
	if !ok {
		t.Fatal("diabetes schema missing bmi")
	}
	if bmi.Type != schema.PrimitiveFloat {
		t.Fatalf("bmi type = %v, want float", bmi.Type)
	}
}

func TestSchemaNotFound(t *testing.T) {
	c := New()

	_, err := c.Schema(context.Background(), "palm_reading")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPredictorsOrderStable(t *testing.T) {
	refs := New().Predictors()
	if len(refs) == 0 || refs[0].ID != "heart_disease" {
		t.Fatalf("unexpected leading entry: %+v", refs)
	}
	for _, ref := range refs {
		if ref.Name == "" || ref.Description == "" {
			t.Errorf("predictor %q missing metadata", ref.ID)
		}
	}
}

const overlayDoc = `
predictors:
  - id: frailty
    name: Frailty Index Predictor
    description: Estimates frailty from functional assessment scores
    fields:
      - name: age
        type: int
        description: Age in years
      - name: grip_strength
        type: float
        description: Grip strength (kg)
  - id: heart_disease
    name: Heart Disease Risk Predictor (v2)
    description: Replacement entry
    fields:
      - name: age
        type: int
        description: Age in years
`

func TestLoadOverlayAppendsAndReplaces(t *testing.T) {
	c := New()
	before := c.Len()

	if err := c.LoadOverlay(strings.NewReader(overlayDoc)); err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}

	if c.Len() != before+1 {
		t.Fatalf("expected %d predictors, got %d", before+1, c.Len())
	}
	if !c.Has("frailty") {
		t.Fatal("overlay predictor not merged")
	}

	s, err := c.Schema(context.Background(), "heart_disease")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if s.Name != "Heart Disease Risk Predictor (v2)" {
		t.Fatalf("overlay did not replace entry, name = %q", s.Name)
	}

	// Replacement keeps the original position.
	if refs := c.Predictors(); refs[0].ID != "heart_disease" {
		t.Fatalf("replaced entry moved: %+v", refs[0])
	}
}

func TestLoadOverlayRejectsBadType(t *testing.T) {
	c := Empty()
	err := c.LoadOverlay(strings.NewReader(`
predictors:
  - id: broken
    name: Broken
    description: Bad field type
    fields:
      - name: age
        type: decimal
        description: Age
`))
	if err == nil {
		t.Fatal("expected error for unknown field type")
	}
}
