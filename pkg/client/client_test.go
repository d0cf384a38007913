package client

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskform/go-riskform/pkg/encode"
)

func testConfig(url string) Config {
	return Config{APIURL: url, Timeout: 5 * time.Second}
}

// countingTransport fails every request and records that it was asked.
type countingTransport struct {
	mu    sync.Mutex
	calls int
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return nil, errors.New("network disabled")
}

func (t *countingTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func TestFieldsLiveFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predictor/heart_disease/fields" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"predictor_type": "heart_disease",
			"name": "Heart Disease Risk Predictor",
			"required_fields": {"age": "int", "sex": "int"},
			"field_descriptions": {"age": "Age in years", "sex": "Sex (1 = Male, 0 = Female)"}
		}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	s, err := c.Fields(context.Background(), "heart_disease")
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if len(s.Fields) != 2 || s.Fields[0].Name != "age" || s.Fields[1].Name != "sex" {
		t.Fatalf("unexpected fields: %+v", s.Fields)
	}
}

func TestFieldsFallsBackToCatalog(t *testing.T) {
	c := New(testConfig("http://127.0.0.1:1"),
		WithHTTPClient(&http.Client{Transport: &countingTransport{}}))

	s, err := c.Fields(context.Background(), "stroke_risk")
	if err != nil {
		t.Fatalf("Fields should fall back to catalog: %v", err)
	}
	if s.ID != "stroke_risk" || len(s.Fields) == 0 {
		t.Fatalf("unexpected catalog schema: %+v", s)
	}
}

func TestFieldsNotFoundAnywhere(t *testing.T) {
	c := New(testConfig("http://127.0.0.1:1"),
		WithHTTPClient(&http.Client{Transport: &countingTransport{}}))

	_, err := c.Fields(context.Background(), "tea_leaves")
	if !errors.Is(err, ErrPredictorNotFound) {
		t.Fatalf("expected ErrPredictorNotFound, got %v", err)
	}
}

func TestPredictDecodesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{
			"predictor_type": "heart_disease",
			"risk_level": "Very High",
			"risk_score": 0.91,
			"confidence": 0.88,
			"explanation": "<script>alert(1)</script>Elevated cholesterol and blood pressure",
			"recommendations": ["Consult a <b>cardiologist</b> promptly"]
		}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	result, err := c.Predict(context.Background(), encode.Payload{
		PredictorType:   "heart_disease",
		Data:            map[string]any{"age": 60},
		IncludeAnalysis: true,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if result.RiskLevel != RiskCritical {
		t.Fatalf("risk level = %q, want Critical", result.RiskLevel)
	}
	if strings.Contains(result.Explanation, "<script>") {
		t.Fatalf("explanation not sanitized: %q", result.Explanation)
	}
	if !strings.Contains(result.Explanation, "Elevated cholesterol") {
		t.Fatalf("explanation text lost: %q", result.Explanation)
	}
	if strings.Contains(result.Recommendations[0], "<b>") {
		t.Fatalf("recommendation not sanitized: %q", result.Recommendations[0])
	}
}

func TestPredictServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Predict(context.Background(), encode.Payload{PredictorType: "sepsis"})
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestPredictSingleInFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"predictor_type": "sepsis", "risk_level": "Low", "risk_score": 0.1, "confidence": 0.9, "recommendations": ["rest"]}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := c.Predict(context.Background(), encode.Payload{PredictorType: "sepsis"})
		done <- err
	}()

	<-started
	// Wait for the first request to reach the server.
	time.Sleep(50 * time.Millisecond)

	_, err := c.Predict(context.Background(), encode.Payload{PredictorType: "sepsis"})
	if !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// The guard resets once the first submission settles.
	if _, err := c.Predict(context.Background(), encode.Payload{PredictorType: "sepsis"}); err != nil {
		t.Fatalf("follow-up submission failed: %v", err)
	}
}

func TestStaticModeNeverTouchesNetwork(t *testing.T) {
	transport := &countingTransport{}
	cfg := testConfig("http://127.0.0.1:1")
	cfg.StaticMode = true
	c := New(cfg,
		WithHTTPClient(&http.Client{Transport: transport}),
		WithRandSource(rand.NewSource(1)))

	ctx := context.Background()

	if _, err := c.ListPredictors(ctx); err != nil {
		t.Fatalf("ListPredictors: %v", err)
	}
	if _, err := c.Fields(ctx, "diabetes"); err != nil {
		t.Fatalf("Fields: %v", err)
	}

	for i := 0; i < 20; i++ {
		result, err := c.Predict(ctx, encode.Payload{PredictorType: "diabetes"})
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		switch result.RiskLevel {
		case RiskLow, RiskMedium, RiskHigh:
		default:
			t.Fatalf("static risk level = %q", result.RiskLevel)
		}
		if len(result.Recommendations) == 0 {
			t.Fatal("static result has no recommendations")
		}
	}

	if transport.count() != 0 {
		t.Fatalf("static mode issued %d network calls", transport.count())
	}
}

func TestStaticModeReportUnavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.StaticMode = true
	c := New(cfg, WithHTTPClient(&http.Client{Transport: &countingTransport{}}))

	_, _, err := c.DownloadReport(context.Background(), Result{PredictorType: "diabetes"}, nil)
	if !errors.Is(err, ErrReportUnavailable) {
		t.Fatalf("expected ErrReportUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "not available in demo mode") {
		t.Fatalf("message must say the feature is absent, got %q", err.Error())
	}
}

func TestDownloadReportFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 demo"))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	doc, filename, err := c.DownloadReport(context.Background(), Result{PredictorType: "heart_disease"}, nil)
	if err != nil {
		t.Fatalf("DownloadReport: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("empty document")
	}
	if !strings.HasPrefix(filename, "heart_disease_report_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("filename = %q", filename)
	}
}

func TestListPredictorsLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"stroke_risk": {"name": "Stroke Risk Predictor", "description": "Stroke risk"},
			"heart_disease": {"name": "Heart Disease Risk Predictor", "description": "Cardiac risk"}
		}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	refs, err := c.ListPredictors(context.Background())
	if err != nil {
		t.Fatalf("ListPredictors: %v", err)
	}
	if len(refs) != 2 || refs[0].ID != "heart_disease" || refs[1].ID != "stroke_risk" {
		t.Fatalf("unexpected directory: %+v", refs)
	}
}

func TestNormalizeRiskLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Low", RiskLow},
		{"Moderate", RiskMedium},
		{"Medium", RiskMedium},
		{"High", RiskHigh},
		{"Very High", RiskCritical},
		{"Critical", RiskCritical},
		{" critical ", RiskCritical},
		{"Unknowable", "Unknowable"},
	}
	for _, tt := range tests {
		if got := NormalizeRiskLevel(tt.raw); got != tt.want {
			t.Fatalf("NormalizeRiskLevel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
