// Package riskform ties the form engine together: it resolves a
// predictor's descriptors, infers the form, seeds defaults, tracks edits
// and validation, and encodes and submits the finished form to the
// scoring service.
package riskform

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskform/go-riskform/pkg/client"
	"github.com/riskform/go-riskform/pkg/encode"
	"github.com/riskform/go-riskform/pkg/formstate"
	"github.com/riskform/go-riskform/pkg/model"
	"github.com/riskform/go-riskform/pkg/schema"
)

var (
	ErrNotStarted       = errors.New("riskform: session not started")
	ErrValidationFailed = errors.New("riskform: form has validation errors")
	ErrNoResult         = errors.New("riskform: no prediction result yet")
)

// Session is one assessment pass for a single predictor. Starting a new
// predictor requires a new session; state never leaks across predictors.
type Session struct {
	client      *client.Client
	descriptors schema.PredictorSchema
	form        model.FormModel
	state       *formstate.State
	result      *client.Result
}

// NewSession builds a session on top of a configured client.
func NewSession(c *client.Client) *Session {
	return &Session{client: c}
}

// Start resolves the predictor's descriptors, infers the form, and seeds
// default values.
func (s *Session) Start(ctx context.Context, predictorID string) error {
	descriptors, err := s.client.Fields(ctx, predictorID)
	if err != nil {
		return err
	}

	form, err := model.Infer(descriptors)
	if err != nil {
		return fmt.Errorf("riskform: infer %q: %w", predictorID, err)
	}

	s.descriptors = descriptors
	s.form = form
	s.state = formstate.New(form)
	s.result = nil
	return nil
}

// Form returns the inferred form model.
func (s *Session) Form() model.FormModel {
	return s.form
}

// State returns the live form state, or nil before Start.
func (s *Session) State() *formstate.State {
	return s.state
}

// SetValue stores one field edit.
func (s *Session) SetValue(name string, value any) error {
	if s.state == nil {
		return ErrNotStarted
	}
	return s.state.SetValue(name, value)
}

// Errors returns the current per-field validation messages.
func (s *Session) Errors() map[string]string {
	if s.state == nil {
		return nil
	}
	return s.state.Errors()
}

// Submit validates the form and sends it for scoring. Validation failures
// block the submission entirely; nothing is sent. In static mode the
// encoder is skipped and a synthetic result is produced locally.
func (s *Session) Submit(ctx context.Context) (client.Result, error) {
	if s.state == nil {
		return client.Result{}, ErrNotStarted
	}
	if !s.state.Validate() {
		return client.Result{}, ErrValidationFailed
	}

	var result client.Result
	if s.client.Static() {
		result = s.client.Synthesize(ctx, s.form.PredictorID)
	} else {
		payload := encode.Submission(s.form, s.descriptors, s.state.Values(), true)
		var err error
		result, err = s.client.Predict(ctx, payload)
		if err != nil {
			// Entered values survive a failed submission for retry.
			return client.Result{}, err
		}
	}

	s.result = &result
	return result, nil
}

// Result returns the last successful prediction.
func (s *Session) Result() (client.Result, bool) {
	if s.result == nil {
		return client.Result{}, false
	}
	return *s.result, true
}

// DownloadReport fetches the PDF report for the last prediction. A report
// failure leaves the prediction result untouched.
func (s *Session) DownloadReport(ctx context.Context) ([]byte, string, error) {
	if s.result == nil {
		return nil, "", ErrNoResult
	}
	return s.client.DownloadReport(ctx, *s.result, s.state.Values())
}

// Predictors lists the available predictors.
func (s *Session) Predictors(ctx context.Context) ([]schema.PredictorRef, error) {
	return s.client.ListPredictors(ctx)
}
