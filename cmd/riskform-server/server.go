package main

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/riskform/go-riskform/pkg/catalog"
	"github.com/riskform/go-riskform/pkg/schema"
)

type server struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

func (s *server) handleRoot(c *gin.Context) {
	var ids []string
	for _, ref := range s.catalog.Predictors() {
		ids = append(ids, ref.ID)
	}
	c.JSON(http.StatusOK, gin.H{
		"message":              "riskform demo scoring service",
		"version":              "1.0.0",
		"available_predictors": ids,
		"total_predictors":     len(ids),
	})
}

func (s *server) handleDirectory(c *gin.Context) {
	directory := map[string]gin.H{}
	for _, ref := range s.catalog.Predictors() {
		entry, err := s.catalog.Schema(c.Request.Context(), ref.ID)
		if err != nil {
			continue
		}
		required := map[string]string{}
		for _, f := range entry.Fields {
			required[f.Name] = wireType(f.Type)
		}
		directory[ref.ID] = gin.H{
			"name":            ref.Name,
			"description":     ref.Description,
			"required_fields": required,
		}
	}
	c.JSON(http.StatusOK, directory)
}

// handleFields writes the descriptor payload by hand so required_fields
// keeps catalog order; encoding/json would sort map keys.
func (s *server) handleFields(c *gin.Context) {
	id := c.Param("id")
	entry, err := s.catalog.Schema(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Predictor '%s' not found", id)})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", fieldsDocument(entry))
}

func fieldsDocument(entry schema.PredictorSchema) []byte {
	var buf bytes.Buffer
	buf.WriteString("{")
	writeJSONString(&buf, "predictor_type")
	buf.WriteString(":")
	writeJSONString(&buf, entry.ID)
	buf.WriteString(",")
	writeJSONString(&buf, "name")
	buf.WriteString(":")
	writeJSONString(&buf, entry.Name)
	buf.WriteString(",")
	writeJSONString(&buf, "description")
	buf.WriteString(":")
	writeJSONString(&buf, entry.Description)

	buf.WriteString(",")
	writeJSONString(&buf, "required_fields")
	buf.WriteString(":{")
	for i, f := range entry.Fields {
		if i > 0 {
			buf.WriteString(",")
		}
		writeJSONString(&buf, f.Name)
		buf.WriteString(":")
		writeJSONString(&buf, wireType(f.Type))
	}
	buf.WriteString("}")

	buf.WriteString(",")
	writeJSONString(&buf, "field_descriptions")
	buf.WriteString(":{")
	for i, f := range entry.Fields {
		if i > 0 {
			buf.WriteString(",")
		}
		writeJSONString(&buf, f.Name)
		buf.WriteString(":")
		writeJSONString(&buf, f.Description)
	}
	buf.WriteString("}}")
	return buf.Bytes()
}

func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

// wireType maps internal primitive names to the tokens the original
// service advertises (strings travel as "str").
func wireType(t schema.PrimitiveType) string {
	if t == schema.PrimitiveString {
		return "str"
	}
	return string(t)
}

type predictRequest struct {
	PredictorType   string         `json:"predictor_type"`
	Data            map[string]any `json:"data"`
	IncludeAnalysis bool           `json:"include_analysis"`
}

func (s *server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if !s.catalog.Has(req.PredictorType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Predictor '%s' not found", req.PredictorType),
		})
		return
	}

	score := scoreFor(req.Data)
	response := gin.H{
		"predictor_type":  req.PredictorType,
		"risk_score":      score,
		"risk_level":      legacyLevel(score),
		"confidence":      0.75 + 0.2*(1-score),
		"recommendations": recommendationsFor(legacyLevel(score)),
		"risk_factors":    riskFactorsFor(req.Data),
		"explanation": fmt.Sprintf(
			"Synthesized assessment from %d submitted values.", len(req.Data)),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if req.IncludeAnalysis {
		response["detailed_analysis"] = gin.H{
			"contributing_factors": contributingFactors(req.Data),
			"health_metrics":       gin.H{"fields_submitted": len(req.Data)},
			"lifestyle_impact":     gin.H{"note": "demo data"},
		}
	}

	s.log.Info().
		Str("predictor", req.PredictorType).
		Float64("risk_score", score).
		Msg("prediction served")
	c.JSON(http.StatusOK, response)
}

// scoreFor derives a stable pseudo-score from the submitted values, so
// repeated submissions of the same form give the same answer.
func scoreFor(data map[string]any) float64 {
	h := fnv.New32a()
	for name, value := range data {
		fmt.Fprintf(h, "%s=%v;", name, value)
	}
	return float64(h.Sum32()%1000) / 1000
}

// legacyLevel uses the level names of older service versions on purpose;
// clients are expected to normalize them.
func legacyLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "Very High"
	case score >= 0.6:
		return "High"
	case score >= 0.3:
		return "Moderate"
	default:
		return "Low"
	}
}

func recommendationsFor(level string) []string {
	base := []string{
		"Maintain a balanced diet and regular physical activity",
		"Schedule routine check-ups with your healthcare provider",
	}
	if level == "High" || level == "Very High" {
		base = append(base, "Consult a specialist to review these results")
	}
	return base
}

func riskFactorsFor(data map[string]any) []string {
	var factors []string
	for name, value := range data {
		if v, ok := value.(float64); ok && v > 0 && strings.HasPrefix(name, "family_history") {
			factors = append(factors, "Family history of related conditions")
			break
		}
	}
	return factors
}

func contributingFactors(data map[string]any) []gin.H {
	factors := make([]gin.H, 0, 2)
	if age, ok := data["age"].(float64); ok && age >= 55 {
		factors = append(factors, gin.H{
			"factor":      "Age",
			"impact":      "high",
			"description": "Age is a major non-modifiable risk factor",
		})
	}
	if len(factors) == 0 {
		factors = append(factors, gin.H{
			"factor":      "Baseline",
			"impact":      "low",
			"description": "No dominant single factor identified",
		})
	}
	return factors
}

type reportRequest struct {
	PredictorType string         `json:"predictor_type"`
	Prediction    map[string]any `json:"prediction"`
	UserData      map[string]any `json:"user_data"`
}

// handleReport renders a minimal single-page PDF with the prediction
// summary. Enough for download-flow testing; nobody prints these.
func (s *server) handleReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	level, _ := req.Prediction["risk_level"].(string)
	text := fmt.Sprintf("Risk Assessment Report - %s - Level: %s", req.PredictorType, level)

	filename := fmt.Sprintf("%s_report_%s.pdf", req.PredictorType, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", minimalPDF(text))
}

// minimalPDF emits a syntactically valid one-page PDF containing a single
// line of text.
func minimalPDF(text string) []byte {
	var buf bytes.Buffer
	content := fmt.Sprintf("BT /F1 12 Tf 50 750 Td (%s) Tj ET", strings.NewReplacer("(", `\(`, ")", `\)`).Replace(text))

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
