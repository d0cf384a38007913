package model

import "strings"

// Canonical option orders for categorical clinical fields. Index position
// is the integer the scoring service expects, so the orders below are a
// wire contract, not presentation preference.
var (
	genderOptions = []string{"Female", "Male"}
	binaryOptions = []string{"No", "Yes"}

	categoricalLevels = map[string][]string{
		"chest_pain_type": {"Typical angina", "Atypical angina", "Non-anginal pain", "Asymptomatic"},
		"resting_ecg":     {"Normal", "ST-T wave abnormality", "Left ventricular hypertrophy"},
		"smoking_status":  {"Never Smoked", "Formerly Smoked", "Smokes", "Unknown"},
		"work_type":       {"Private", "Self-employed", "Government", "Children", "Never worked"},
		"residence_type":  {"Rural", "Urban"},
	}
)

// GenderOptions returns the fixed gender option order (Female at index 0).
func GenderOptions() []string {
	return append([]string(nil), genderOptions...)
}

// BinaryOptions returns the fixed binary-choice option order (No at index 0).
func BinaryOptions() []string {
	return append([]string(nil), binaryOptions...)
}

// CategoricalLevels returns the ordered option list for a known categorical
// field, or nil when the field has no fixed table.
func CategoricalLevels(name string) []string {
	levels, ok := categoricalLevels[name]
	if !ok {
		return nil
	}
	return append([]string(nil), levels...)
}

// CategoricalIndex maps an option string of a known categorical field to
// its wire integer. Unmatched strings report ok=false; callers that follow
// the scoring-service contract encode those as 0.
func CategoricalIndex(name, value string) (int, bool) {
	levels, ok := categoricalLevels[name]
	if !ok {
		return 0, false
	}
	trimmed := strings.TrimSpace(value)
	for i, level := range levels {
		if strings.EqualFold(level, trimmed) {
			return i, true
		}
	}
	return 0, false
}

// fieldSpec carries the hand-specified constraints for a known clinical
// field. These are domain constants; no formula recovers them from the
// primitive type.
type fieldSpec struct {
	min, max, step float64
	hasRange       bool
	hasStep        bool
	unit           string
	options        []string
}

var knownFieldSpecs = map[string]fieldSpec{
	"age":               {min: 0, max: 120, step: 1, hasRange: true, hasStep: true, unit: "years"},
	"maternal_age":      {min: 15, max: 55, step: 1, hasRange: true, hasStep: true, unit: "years"},
	"gestational_age":   {min: 4, max: 44, step: 1, hasRange: true, hasStep: true, unit: "weeks"},
	"systolic_bp":       {min: 70, max: 250, hasRange: true, unit: "mmHg"},
	"resting_bp":        {min: 70, max: 250, hasRange: true, unit: "mmHg"},
	"diastolic_bp":      {min: 40, max: 150, hasRange: true, unit: "mmHg"},
	"cholesterol":       {min: 100, max: 400, hasRange: true, unit: "mg/dL"},
	"total_cholesterol": {min: 100, max: 400, hasRange: true, unit: "mg/dL"},
	"bmi":               {min: 10, max: 60, step: 0.1, hasRange: true, hasStep: true, unit: "kg/m²"},
	"smoking_status":    {options: categoricalLevels["smoking_status"]},
	"chest_pain_type":   {options: categoricalLevels["chest_pain_type"]},
	"resting_ecg":       {options: categoricalLevels["resting_ecg"]},
	"work_type":         {options: categoricalLevels["work_type"]},
	"residence_type":    {options: categoricalLevels["residence_type"]},
}

// booleanFlagNames is the curated allow-list of clinical yes/no flags.
// Deliberately an enumerated set: substring heuristics over field names
// produced false positives in the past, so fields missing here fall
// through to the generic rules and the list is extended by hand instead.
var booleanFlagNames = map[string]struct{}{
	"hypertension":             {},
	"diabetes":                 {},
	"diabetes_mellitus":        {},
	"diabetes_pre_pregnancy":   {},
	"heart_disease":            {},
	"kidney_disease":           {},
	"liver_disease":            {},
	"lung_disease":             {},
	"chronic_hypertension":     {},
	"chronic_illness":          {},
	"multiple_pregnancy":       {},
	"previous_complications":   {},
	"previous_cancer":          {},
	"cancer":                   {},
	"ever_married":             {},
	"fasting_bs":               {},
	"fasting_blood_sugar":      {},
	"exercise_angina":          {},
	"smoking":                  {},
	"stroke_history":           {},
	"coronary_artery_disease":  {},
	"cardiovascular_disease":   {},
	"immunocompromised":        {},
	"anemia":                   {},
	"memory_complaints":        {},
	"chest_pain":               {},
	"cough":                    {},
	"shortness_of_breath":      {},
	"headache":                 {},
	"muscle_aches":             {},
	"loss_of_taste_smell":      {},
	"emergency_surgery":        {},
	"transfusion_required":     {},
	"mechanical_ventilation":   {},
	"vasopressor_use":          {},
	"witnessed_apneas":         {},
	"gasping_choking":          {},
	"allergies":                {},
	"occupational_exposure":    {},
	"seasonal_variation":       {},
	"alcohol_before_bed":       {},
	"assisted_reproduction":    {},
	"autoimmune_disease":       {},
	"fetal_growth_restriction": {},
	"copd":                     {},
	"pedal_edema":              {},
	"pale_skin":                {},
	"cold_hands_feet":          {},
	"brittle_nails":            {},
	"proteinuria_present":      {},
	"goiter":                   {},
	"tremor":                   {},
}

// IsBooleanFlag reports whether a canonical field name is on the boolean
// allow-list. Names with a family_history prefix are always flags.
func IsBooleanFlag(name string) bool {
	if strings.HasPrefix(name, "family_history") {
		return true
	}
	_, ok := booleanFlagNames[name]
	return ok
}

// CanonicalName maps raw descriptor names onto the internal field name the
// UI uses everywhere. gender and sex intentionally collapse onto gender;
// the encoder reverses the mapping per predictor at submit time.
func CanonicalName(raw string) string {
	if raw == "sex" {
		return "gender"
	}
	return raw
}
