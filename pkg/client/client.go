// Package client talks to the risk scoring service: predictor directory,
// descriptor fetch, prediction submission, and report download. A client
// in static mode answers everything locally from the catalog and never
// opens a connection.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/riskform/go-riskform/pkg/catalog"
	"github.com/riskform/go-riskform/pkg/encode"
	"github.com/riskform/go-riskform/pkg/schema"
)

var (
	ErrPredictorNotFound  = errors.New("client: predictor not found")
	ErrSubmissionInFlight = errors.New("client: a submission is already in flight")
	ErrReportUnavailable  = errors.New("client: report download is not available in demo mode")
	ErrService            = errors.New("client: scoring service error")
)

// Client is the scoring-service client. Safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	log      zerolog.Logger
	static   bool
	catalog  *catalog.Catalog
	synth    *synthesizer
	inFlight atomic.Bool
}

// Option adjusts client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithCatalog replaces the fallback catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *Client) { c.catalog = cat }
}

// WithRandSource fixes the randomness behind demo-mode results.
func WithRandSource(src rand.Source) Option {
	return func(c *Client) { c.synth = newSynthesizer(src) }
}

// New builds a client from config. The static-mode flag is latched here
// and gates every network path for the client's lifetime.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.APIURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     zerolog.Nop(),
		static:  cfg.StaticMode,
		catalog: catalog.New(),
		synth:   newSynthesizer(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Static reports whether the client is in demo mode.
func (c *Client) Static() bool {
	return c.static
}

// ListPredictors returns the predictor directory. In static mode this is
// the catalog; otherwise the live directory endpoint, with the catalog as
// fallback when the service is unreachable.
func (c *Client) ListPredictors(ctx context.Context) ([]schema.PredictorRef, error) {
	if c.static {
		return c.catalog.Predictors(), nil
	}

	raw, err := c.get(ctx, "/predictors")
	if err != nil {
		c.log.Warn().Err(err).Msg("predictor directory fetch failed, using catalog")
		return c.catalog.Predictors(), nil
	}

	var directory map[string]struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &directory); err != nil {
		return nil, fmt.Errorf("%w: decode directory: %v", ErrService, err)
	}

	refs := make([]schema.PredictorRef, 0, len(directory))
	for id, entry := range directory {
		refs = append(refs, schema.PredictorRef{
			ID:          id,
			Name:        entry.Name,
			Description: entry.Description,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// Fields resolves the descriptor set for a predictor. Live fetch failures
// fall back to the catalog; a predictor unknown to both is not found.
func (c *Client) Fields(ctx context.Context, predictorID string) (schema.PredictorSchema, error) {
	if c.static {
		return c.catalogSchema(ctx, predictorID)
	}

	raw, err := c.get(ctx, "/predictor/"+predictorID+"/fields")
	if err != nil {
		c.log.Warn().Err(err).Str("predictor", predictorID).
			Msg("descriptor fetch failed, trying catalog")
		return c.catalogSchema(ctx, predictorID)
	}

	s, err := schema.ParseFieldsResponse(raw)
	if err != nil {
		return schema.PredictorSchema{}, err
	}
	if s.ID == "" {
		s.ID = predictorID
	}
	return s, nil
}

func (c *Client) catalogSchema(ctx context.Context, predictorID string) (schema.PredictorSchema, error) {
	s, err := c.catalog.Schema(ctx, predictorID)
	if errors.Is(err, catalog.ErrNotFound) {
		return schema.PredictorSchema{}, fmt.Errorf("%w: %q", ErrPredictorNotFound, predictorID)
	}
	return s, err
}

// Schema implements schema.Source.
func (c *Client) Schema(ctx context.Context, predictorID string) (schema.PredictorSchema, error) {
	return c.Fields(ctx, predictorID)
}

// Predict submits an encoded payload. Only one submission may be in flight
// at a time; concurrent calls fail fast with ErrSubmissionInFlight. In
// static mode no network call happens and a synthetic result is returned.
func (c *Client) Predict(ctx context.Context, payload encode.Payload) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	if c.static {
		return c.Synthesize(ctx, payload.PredictorType), nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("client: encode request: %w", err)
	}

	raw, err := c.post(ctx, "/predict", "application/json", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, fmt.Errorf("%w: decode result: %v", ErrService, err)
	}
	result.scrub()

	c.log.Info().
		Str("predictor", payload.PredictorType).
		Str("risk_level", result.RiskLevel).
		Float64("risk_score", result.RiskScore).
		Msg("prediction received")
	return result, nil
}

// Synthesize fabricates a local demo result for a predictor. It is the
// whole of the static submission path: no encoding, no network.
func (c *Client) Synthesize(ctx context.Context, predictorID string) Result {
	name := predictorID
	if s, err := c.catalog.Schema(ctx, predictorID); err == nil {
		name = s.Name
	}
	return c.synth.result(predictorID, name)
}

// reportRequest is the report-endpoint body.
type reportRequest struct {
	PredictorType string         `json:"predictor_type"`
	Prediction    Result         `json:"prediction"`
	UserData      map[string]any `json:"user_data,omitempty"`
}

// DownloadReport fetches the PDF report for a prediction and returns the
// document with its suggested filename. Static mode does not support
// reports at all, as opposed to failing transiently.
func (c *Client) DownloadReport(ctx context.Context, result Result, userData map[string]any) ([]byte, string, error) {
	if c.static {
		return nil, "", ErrReportUnavailable
	}

	body, err := json.Marshal(reportRequest{
		PredictorType: result.PredictorType,
		Prediction:    result,
		UserData:      userData,
	})
	if err != nil {
		return nil, "", fmt.Errorf("client: encode request: %w", err)
	}

	doc, err := c.post(ctx, "/download-report", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_report_%s.pdf",
		result.PredictorType, time.Now().Format("20060102_150405"))
	return doc, filename, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrService, req.URL.Path, resp.StatusCode)
	}
	return raw, nil
}
