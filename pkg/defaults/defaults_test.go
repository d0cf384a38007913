package defaults

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskform/go-riskform/pkg/model"
)

func float64Ptr(v float64) *float64 { return &v }

func TestValueForCuratedField(t *testing.T) {
	got := ValueFor(model.FormField{Name: "age", Widget: model.WidgetNumber})
	if got != 45 {
		t.Fatalf("expected curated age 45, got %v", got)
	}

	got = ValueFor(model.FormField{Name: "gender", Widget: model.WidgetSingleSelect, Options: model.GenderOptions()})
	if got != "Female" {
		t.Fatalf("expected Female, got %v", got)
	}
}

func TestValueForBoundedNumberMidpoint(t *testing.T) {
	field := model.FormField{
		Name:   "tumor_diameter",
		Widget: model.WidgetNumber,
		Min:    float64Ptr(0),
		Max:    float64Ptr(15),
	}
	got := ValueFor(field)
	if got != float64(8) {
		t.Fatalf("expected rounded midpoint 8, got %v", got)
	}
}

func TestValueForMinOnlyNumber(t *testing.T) {
	field := model.FormField{Name: "lesion_count", Widget: model.WidgetNumber, Min: float64Ptr(1)}
	if got := ValueFor(field); got != float64(1) {
		t.Fatalf("expected min 1, got %v", got)
	}
}

func TestValueForUnboundedNumber(t *testing.T) {
	field := model.FormField{Name: "custom_marker", Widget: model.WidgetNumber}
	if got := ValueFor(field); got != float64(0) {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestValueForSelectFallsBackToFirstOption(t *testing.T) {
	field := model.FormField{
		Name:    "tissue_type",
		Widget:  model.WidgetSingleSelect,
		Options: []string{"Epithelial", "Connective"},
	}
	if got := ValueFor(field); got != "Epithelial" {
		t.Fatalf("expected first option, got %v", got)
	}
}

func TestValueForFreeTextFallsBackToEmpty(t *testing.T) {
	field := model.FormField{Name: "notes", Widget: model.WidgetFreeText}
	if got := ValueFor(field); got != "" {
		t.Fatalf("expected empty string, got %v", got)
	}
}

func TestSeedCoversEveryField(t *testing.T) {
	form := model.FormModel{
		PredictorID: "stroke_risk",
		Fields: []model.FormField{
			{Name: "age", Widget: model.WidgetNumber},
			{Name: "gender", Widget: model.WidgetSingleSelect, Options: model.GenderOptions()},
			{Name: "hypertension", Widget: model.WidgetBinaryChoice, Options: model.BinaryOptions()},
		},
	}

	want := map[string]any{
		"age":          45,
		"gender":       "Female",
		"hypertension": "No",
	}
	if diff := cmp.Diff(want, Seed(form)); diff != "" {
		t.Fatalf("seed mismatch (-want +got):\n%s", diff)
	}
}
