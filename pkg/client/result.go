package client

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Risk levels as surfaced to the UI.
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// Result is the decoded prediction response.
type Result struct {
	PredictorType   string            `json:"predictor_type"`
	RiskLevel       string            `json:"risk_level"`
	RiskScore       float64           `json:"risk_score"`
	Confidence      float64           `json:"confidence"`
	Explanation     string            `json:"explanation,omitempty"`
	Recommendations []string          `json:"recommendations"`
	RiskFactors     []string          `json:"risk_factors,omitempty"`
	Timestamp       string            `json:"timestamp,omitempty"`
	Analysis        *DetailedAnalysis `json:"detailed_analysis,omitempty"`
}

// DetailedAnalysis is the optional enhanced-analysis block a scoring
// service attaches when include_analysis is set.
type DetailedAnalysis struct {
	ContributingFactors []ContributingFactor `json:"contributing_factors,omitempty"`
	HealthMetrics       map[string]any       `json:"health_metrics,omitempty"`
	LifestyleImpact     map[string]any       `json:"lifestyle_impact,omitempty"`
}

// ContributingFactor is one ranked driver of the risk score.
type ContributingFactor struct {
	Factor      string  `json:"factor"`
	Impact      string  `json:"impact,omitempty"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
}

// riskLevelSynonyms maps the legacy level names some service versions emit
// onto the current four-level scale.
var riskLevelSynonyms = map[string]string{
	"low":       RiskLow,
	"moderate":  RiskMedium,
	"medium":    RiskMedium,
	"high":      RiskHigh,
	"very high": RiskCritical,
	"critical":  RiskCritical,
}

// NormalizeRiskLevel collapses legacy level spellings onto the current
// scale. Unknown inputs pass through trimmed.
func NormalizeRiskLevel(raw string) string {
	if level, ok := riskLevelSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return level
	}
	return strings.TrimSpace(raw)
}

// sanitizer strips markup from service-provided prose. The scoring service
// is an external trust boundary; its strings reach terminal and web UIs.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

func sanitizeAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, sanitize(s))
	}
	return out
}

// scrub normalizes and sanitizes a decoded result in place.
func (r *Result) scrub() {
	r.RiskLevel = NormalizeRiskLevel(r.RiskLevel)
	r.Explanation = sanitize(r.Explanation)
	r.Recommendations = sanitizeAll(r.Recommendations)
	r.RiskFactors = sanitizeAll(r.RiskFactors)
	if r.Analysis != nil {
		for i := range r.Analysis.ContributingFactors {
			f := &r.Analysis.ContributingFactors[i]
			f.Factor = sanitize(f.Factor)
			f.Description = sanitize(f.Description)
		}
	}
}
