package encode

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskform/go-riskform/pkg/catalog"
	"github.com/riskform/go-riskform/pkg/defaults"
	"github.com/riskform/go-riskform/pkg/model"
	"github.com/riskform/go-riskform/pkg/schema"
)

func heartForm() model.FormModel {
	return model.FormModel{
		PredictorID: "heart_disease",
		Fields: []model.FormField{
			{Name: "age", Label: "Age", Widget: model.WidgetNumber},
			{Name: "gender", Label: "Gender", Widget: model.WidgetSingleSelect, Options: model.GenderOptions()},
			{Name: "chest_pain_type", Label: "Chest Pain Type", Widget: model.WidgetSingleSelect, Options: model.CategoricalLevels("chest_pain_type")},
			{Name: "exercise_angina", Label: "Exercise Angina", Widget: model.WidgetBinaryChoice, Options: model.BinaryOptions()},
			{Name: "st_depression", Label: "ST Depression", Widget: model.WidgetNumber},
		},
	}
}

func heartDescriptors() schema.PredictorSchema {
	return schema.PredictorSchema{
		ID: "heart_disease",
		Fields: []schema.FieldDescriptor{
			{Name: "age", Type: schema.PrimitiveInt},
			{Name: "sex", Type: schema.PrimitiveInt},
			{Name: "chest_pain_type", Type: schema.PrimitiveInt},
			{Name: "exercise_angina", Type: schema.PrimitiveInt},
			{Name: "st_depression", Type: schema.PrimitiveFloat},
		},
	}
}

func TestSubmissionEncodesHeartDisease(t *testing.T) {
	got := Submission(heartForm(), heartDescriptors(), map[string]any{
		"age":             "54",
		"gender":          "Male",
		"chest_pain_type": "Atypical angina",
		"exercise_angina": "Yes",
		"st_depression":   "1.4",
	}, true)

	want := Payload{
		PredictorType:   "heart_disease",
		IncludeAnalysis: true,
		Data: map[string]any{
			"age":             54,
			"sex":             1, // service-side alias for gender
			"chest_pain_type": 1,
			"exercise_angina": 1,
			"st_depression":   1.4,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionGenderCoding(t *testing.T) {
	form := model.FormModel{
		PredictorID: "stroke_risk",
		Fields: []model.FormField{
			{Name: "gender", Widget: model.WidgetSingleSelect, Options: model.GenderOptions()},
		},
	}
	descriptors := schema.PredictorSchema{
		ID:     "stroke_risk",
		Fields: []schema.FieldDescriptor{{Name: "gender", Type: schema.PrimitiveInt}},
	}

	tests := []struct {
		value string
		want  int
	}{
		{"Female", 0},
		{"female", 0},
		{"Male", 1},
		{"M", 1},
	}
	for _, tt := range tests {
		got := Submission(form, descriptors, map[string]any{"gender": tt.value}, false)
		if got.Data["gender"] != tt.want {
			t.Fatalf("gender %q encoded to %v, want %d", tt.value, got.Data["gender"], tt.want)
		}
	}
}

// The diabetes service declares gender and family_history_diabetes as
// strings; the words travel on the wire, not integer codes.
func TestSubmissionStringTypedFieldsPassThrough(t *testing.T) {
	descriptors, err := catalog.New().Schema(context.Background(), "diabetes")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	form, err := model.Infer(descriptors)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}

	got := Submission(form, descriptors, map[string]any{
		"gender":                  "Female",
		"family_history_diabetes": "No",
		"glucose_level":           "105",
	}, false)

	want := map[string]any{
		"gender":                  "Female",
		"family_history_diabetes": "No",
		"glucose_level":           105.0,
	}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionOmitsEmptyValues(t *testing.T) {
	got := Submission(heartForm(), heartDescriptors(), map[string]any{
		"age":    "54",
		"gender": "  ",
	}, false)

	if _, ok := got.Data["sex"]; ok {
		t.Fatal("blank gender must be omitted")
	}
	if len(got.Data) != 1 {
		t.Fatalf("expected one entry, got %v", got.Data)
	}
}

func TestSubmissionUnknownCategoricalDefaultsToZero(t *testing.T) {
	got := Submission(heartForm(), heartDescriptors(), map[string]any{
		"chest_pain_type": "Crushing",
	}, false)

	if got.Data["chest_pain_type"] != 0 {
		t.Fatalf("unknown level encoded to %v, want 0", got.Data["chest_pain_type"])
	}
}

func TestSubmissionStrictRejectsUnknownLevel(t *testing.T) {
	_, err := SubmissionStrict(heartForm(), heartDescriptors(), map[string]any{
		"chest_pain_type": "Crushing",
	}, false)
	if !errors.Is(err, ErrUnmappedValue) {
		t.Fatalf("expected ErrUnmappedValue, got %v", err)
	}
}

func TestSubmissionNumberParsing(t *testing.T) {
	form := model.FormModel{
		PredictorID: "stroke_risk",
		Fields: []model.FormField{
			{Name: "age", Widget: model.WidgetNumber},
			{Name: "avg_glucose_level", Widget: model.WidgetNumber},
			{Name: "bmi", Widget: model.WidgetNumber},
		},
	}
	descriptors := schema.PredictorSchema{
		ID: "stroke_risk",
		Fields: []schema.FieldDescriptor{
			{Name: "age", Type: schema.PrimitiveInt},
			{Name: "avg_glucose_level", Type: schema.PrimitiveFloat},
			{Name: "bmi", Type: schema.PrimitiveFloat},
		},
	}

	got := Submission(form, descriptors, map[string]any{
		"age":               "61",
		"avg_glucose_level": "110.5",
		"bmi":               "not-a-number",
	}, false)

	want := map[string]any{
		"age":               61,
		"avg_glucose_level": 110.5,
		"bmi":               0.0,
	}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionCategoricalTables(t *testing.T) {
	form := model.FormModel{
		PredictorID: "stroke_risk",
		Fields: []model.FormField{
			{Name: "smoking_status", Widget: model.WidgetSingleSelect, Options: model.CategoricalLevels("smoking_status")},
			{Name: "work_type", Widget: model.WidgetSingleSelect, Options: model.CategoricalLevels("work_type")},
			{Name: "residence_type", Widget: model.WidgetSingleSelect, Options: model.CategoricalLevels("residence_type")},
		},
	}
	descriptors := schema.PredictorSchema{
		ID: "stroke_risk",
		Fields: []schema.FieldDescriptor{
			{Name: "smoking_status", Type: schema.PrimitiveInt},
			{Name: "work_type", Type: schema.PrimitiveInt},
			{Name: "residence_type", Type: schema.PrimitiveInt},
		},
	}

	got := Submission(form, descriptors, map[string]any{
		"smoking_status": "Formerly Smoked",
		"work_type":      "Self-employed",
		"residence_type": "Urban",
	}, false)

	want := map[string]any{
		"smoking_status": 1,
		"work_type":      1,
		"residence_type": 1,
	}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmissionFreeTextPassesThrough(t *testing.T) {
	form := model.FormModel{
		PredictorID: "covid_risk",
		Fields: []model.FormField{
			{Name: "symptoms", Widget: model.WidgetFreeText},
		},
	}
	descriptors := schema.PredictorSchema{
		ID:     "covid_risk",
		Fields: []schema.FieldDescriptor{{Name: "symptoms", Type: schema.PrimitiveString}},
	}

	got := Submission(form, descriptors, map[string]any{"symptoms": "dry cough, fever"}, false)
	if got.Data["symptoms"] != "dry cough, fever" {
		t.Fatalf("free text mangled: %v", got.Data["symptoms"])
	}
}

// Without descriptors the widget-kind tables still apply, so callers that
// built the form from an untyped source keep the integer contract.
func TestSubmissionWithoutDescriptorsUsesWidgetTables(t *testing.T) {
	got := Submission(heartForm(), schema.PredictorSchema{}, map[string]any{
		"gender":          "Male",
		"exercise_angina": "No",
	}, false)

	want := map[string]any{
		"sex":             1,
		"exercise_angina": 0,
	}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

// A freshly seeded form must encode to a payload carrying every advertised
// field for every bundled predictor, with no empty values.
func TestSubmissionOfSeededDefaultsIsComplete(t *testing.T) {
	cat := catalog.New()
	ctx := context.Background()

	for _, ref := range cat.Predictors() {
		descriptors, err := cat.Schema(ctx, ref.ID)
		if err != nil {
			t.Fatalf("%s: Schema: %v", ref.ID, err)
		}
		form, err := model.Infer(descriptors)
		if err != nil {
			t.Fatalf("%s: Infer: %v", ref.ID, err)
		}

		payload := Submission(form, descriptors, defaults.Seed(form), false)

		want := make(map[string]bool, len(descriptors.Fields))
		for _, fd := range descriptors.Fields {
			want[fd.Name] = true
		}
		for name := range want {
			if _, ok := payload.Data[name]; !ok {
				t.Errorf("%s: payload missing %s", ref.ID, name)
			}
		}
		for name, value := range payload.Data {
			if !want[name] {
				t.Errorf("%s: payload has unexpected key %s", ref.ID, name)
			}
			if value == nil {
				t.Errorf("%s: payload value for %s is nil", ref.ID, name)
				continue
			}
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				t.Errorf("%s: payload value for %s is empty", ref.ID, name)
			}
		}
	}
}
