// Package defaults seeds newly-built forms with clinically plausible
// example values. The provider is total: every field gets a value, because
// completion progress divides by field count and assumes fillable defaults
// exist for the whole schema.
package defaults

import (
	"math"

	"github.com/riskform/go-riskform/pkg/model"
)

// ValueFor returns the seed value for a field. Lookup order: the curated
// example table, then the midpoint of a bounded number field, then the
// minimum (or zero), then the first option, then the empty string.
func ValueFor(field model.FormField) any {
	if v, ok := exampleValues[field.Name]; ok {
		return v
	}

	if field.Widget == model.WidgetNumber {
		if field.Min != nil && field.Max != nil {
			return math.Round((*field.Min + *field.Max) / 2)
		}
		if field.Min != nil {
			return *field.Min
		}
		return float64(0)
	}

	if len(field.Options) > 0 {
		return field.Options[0]
	}

	return ""
}

// Seed produces the initial value map for a whole form.
func Seed(form model.FormModel) map[string]any {
	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		values[field.Name] = ValueFor(field)
	}
	return values
}

// exampleValues is a curated map of plausible example inputs keyed by
// canonical field name. Values follow the conventions of the scoring
// service's reference datasets rather than population averages.
var exampleValues = map[string]any{
	// Demographics and anthropometrics.
	"age":                 45,
	"maternal_age":        30,
	"age_at_diagnosis":    55,
	"gender":              "Female",
	"height":              170.0,
	"weight":              72.0,
	"bmi":                 24.5,
	"pre_pregnancy_bmi":   23.0,
	"waist_circumference": 88.0,
	"hip_circumference":   100.0,
	"neck_circumference":  37.0,
	"body_fat_percentage": 25.0,
	"muscle_mass":         30.0,
	"education_years":     14,

	// Vitals.
	"systolic_bp":              120.0,
	"diastolic_bp":             80.0,
	"resting_bp":               120.0,
	"blood_pressure":           80.0,
	"blood_pressure_systolic":  120.0,
	"blood_pressure_diastolic": 80.0,
	"mean_arterial_pressure":   90.0,
	"mean_bp":                  90.0,
	"heart_rate":               72.0,
	"resting_heart_rate":       68.0,
	"max_heart_rate":           150.0,
	"heart_rate_during_sleep":  60.0,
	"heart_rate_variability":   45.0,
	"respiratory_rate":         16.0,
	"temperature":              36.8,
	"body_temperature":         36.8,
	"spo2":                     97.0,
	"oxygen_saturation":        97.0,
	"oxygen_saturation_min":    92.0,
	"oxygen_saturation_rest":   97.0,

	// Lipids and metabolic labs.
	"cholesterol":                220.0,
	"total_cholesterol":          200.0,
	"cholesterol_total":          200.0,
	"hdl_cholesterol":            50.0,
	"ldl_cholesterol":            120.0,
	"triglycerides":              150.0,
	"glucose":                    100.0,
	"glucose_level":              100.0,
	"glucose_fasting":            95.0,
	"avg_glucose_level":          100.0,
	"blood_glucose_random":       120.0,
	"glucose_tolerance_test":     120.0,
	"insulin_level":              80.0,
	"diabetes_pedigree_function": 0.5,
	"skin_thickness":             20.0,
	"pregnancies":                0,

	// Blood counts and chemistry.
	"hemoglobin":              13.5,
	"preop_hemoglobin":        13.5,
	"hematocrit":              40.0,
	"platelets":               250.0,
	"platelet_count":          250.0,
	"white_blood_cells":       7.5,
	"wbc_count":               7500.0,
	"white_blood_cell_count":  7500.0,
	"red_blood_cell_count":    4.8,
	"lymphocytes":             2000.0,
	"creatinine":              1.0,
	"serum_creatinine":        1.0,
	"preop_creatinine":        1.0,
	"bun":                     15.0,
	"blood_urea":              30.0,
	"lactate":                 1.5,
	"sodium":                  140.0,
	"potassium":               4.0,
	"chloride":                102.0,
	"calcium":                 9.5,
	"magnesium":               2.0,
	"phosphate":               3.5,
	"bicarbonate":             24.0,
	"albumin":                 4.0,
	"preop_albumin":           4.0,
	"uric_acid":               5.0,
	"c_reactive_protein":      1.0,
	"ferritin":                100.0,
	"serum_iron":              90.0,
	"vitamin_b12":             400.0,
	"folate":                  10.0,
	"tsh":                     2.0,
	"free_t4":                 1.2,
	"free_t3":                 3.0,
	"total_bilirubin":         0.8,
	"direct_bilirubin":        0.2,
	"troponin":                0.01,
	"d_dimer":                 0.4,
	"lactate_dehydrogenase":   180.0,
	"procalcitonin":           0.05,
	"ptt":                     30.0,
	"fibrinogen":              300.0,
	"ph":                      7.4,
	"pco2":                    40.0,
	"po2":                     90.0,
	"specific_gravity":        1.02,
	"homocysteine":            10.0,
	"lipoprotein_a":           20.0,
	"eosinophil_count":        200.0,
	"ige_level":               50.0,
	"vitamin_d_level":         30.0,
	"haptoglobin":             100.0,
	"reticulocyte_count":      1.2,
	"transferrin_saturation":  30.0,
	"urine_output":            60.0,

	// Cardiac assessment fields.
	"chest_pain_type":     "Typical angina",
	"resting_ecg":         "Normal",
	"st_depression":       1.0,
	"st_slope":            1,
	"exercise_angina":     "No",
	"fasting_blood_sugar": "No",
	"fasting_bs":          "No",

	// Lifestyle.
	"smoking_status":            "Never Smoked",
	"smoking":                   "No",
	"smoking_history":           0,
	"smoking_pack_years":        0.0,
	"current_smoking_status":    0,
	"alcohol_consumption":       0,
	"alcohol_use":               0,
	"alcohol_drinks_per_week":   0,
	"physical_activity":         3.0,
	"physical_activity_level":   2,
	"physical_activity_minutes": 150,
	"sedentary_hours_per_day":   6,
	"sleep_hours":               7.0,
	"sleep_hours_per_night":     7.0,
	"sleep_duration_hours":      7.0,
	"sleep_quality":             7,
	"sleep_quality_score":       7,
	"stress_level":              4,
	"work_stress_level":         4,
	"financial_stress_level":    3,
	"caffeine_intake_mg":        150.0,
	"water_intake_liters":       2.0,
	"screen_time_hours":         5.0,
	"outdoor_time_hours":        1.0,
	"diet_quality":              2,
	"fiber_intake_grams":        25.0,
	"sodium_intake_mg":          2300.0,
	"potassium_intake_mg":       3000.0,
	"calories_consumed_daily":   2200,
	"fast_food_frequency":       1,
	"vegetable_servings_daily":  3,
	"fruit_servings_daily":      2,
	"ever_married":              "Yes",
	"work_type":                 "Private",
	"residence_type":            "Urban",

	// Histories and flags.
	"hypertension":           "No",
	"diabetes":               "No",
	"diabetes_mellitus":      "No",
	"heart_disease":          "No",
	"kidney_disease":         "No",
	"liver_disease":          "No",
	"lung_disease":           "No",
	"cancer":                 "No",
	"stroke_history":         "No",
	"family_history":         "No",
	"chronic_hypertension":   "No",
	"multiple_pregnancy":     "No",
	"previous_complications": "No",
	"previous_cancer":        "No",
	"immunocompromised":      "No",
	"autoimmune_disease":     "No",

	// Mental health and cognition.
	"phq9_score":            4,
	"gad7_score":            3,
	"mmse_score":            28,
	"depression_score":      3,
	"anxiety_level":         3,
	"fatigue_level":         3,
	"memory_complaints":     "No",
	"functional_assessment": 8,
	"social_isolation":      2,

	// Pregnancy.
	"gestational_age":      28,
	"weight_gain":          10.0,
	"previous_pregnancies": 1,
	"proteinuria":          0,

	// Hospital course.
	"apache_score":        12,
	"glasgow_coma_scale":  15,
	"time_in_hospital":    4,
	"length_of_stay":      3,
	"num_medications":     8,
	"num_lab_procedures":  25,
	"num_procedures":      1,
	"number_diagnoses":    3,
	"previous_admissions": 0,
	"comorbidity_score":   2,
	"comorbidities":       1,
	"surgery_duration":    2.0,
	"blood_loss":          200.0,
	"asa_score":           2,
	"postop_pain_score":   4,
}
