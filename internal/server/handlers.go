package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/number-classifier/internal/common"
	"github.com/Veraticus/number-classifier/internal/engine"
	"github.com/Veraticus/number-classifier/internal/model"
	"github.com/Veraticus/number-classifier/internal/service"
)

// Response messages.
const (
	WelcomeMessage      = "Welcome to the Number Classifier API!"
	UsageMessage        = "/api/classify-number?number=<num>"
	InvalidInputMessage = "Invalid input"
	TimeoutMessage      = "Classification timed out"
)

// WelcomeResponse is returned by the root route.
type WelcomeResponse struct {
	Message string `json:"message"`
	Usage   string `json:"usage"`
}

// ClassifyResponse is the public shape of a classification.
type ClassifyResponse struct {
	Number     *big.Int `json:"number"`
	IsPrime    bool     `json:"is_prime"`
	IsPerfect  bool     `json:"is_perfect"`
	Properties []string `json:"properties"`
	DigitSum   int      `json:"digit_sum"`
	FunFact    string   `json:"fun_fact"`
}

// ErrorResponse reports a request that could not be classified.
// Number echoes the raw query parameter.
type ErrorResponse struct {
	Number  string `json:"number"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// NewClassifyResponse combines a record and a fun fact into the response body.
func NewClassifyResponse(record model.ClassificationRecord, funFact string) ClassifyResponse {
	return ClassifyResponse{
		Number:     record.Number,
		IsPrime:    record.IsPrime,
		IsPerfect:  record.IsPerfect,
		Properties: record.PropertyStrings(),
		DigitSum:   record.DigitSum,
		FunFact:    funFact,
	}
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, WelcomeResponse{
		Message: WelcomeMessage,
		Usage:   UsageMessage,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("number")

	n, err := engine.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Number:  raw,
			Error:   true,
			Message: InvalidInputMessage,
		})
		return
	}

	record, fact, err := s.classify(r.Context(), n)
	if err != nil && !errors.Is(err, common.ErrClassificationTimeout) {
		// The client went away; there is nobody to answer.
		s.logger.Debug("Classification abandoned",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err)
		return
	}
	if err != nil {
		s.logger.Warn("Classification did not complete",
			"number_digits", len(raw),
			"timeout", s.cfg.ClassifyTimeout,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Number:  raw,
			Error:   true,
			Message: TimeoutMessage,
		})
		return
	}

	writeJSON(w, http.StatusOK, NewClassifyResponse(record, fact))
}

// classify runs the engine and the fact fetch concurrently. Only a
// classification failure is returned; a fetch failure yields the placeholder.
func (s *Server) classify(ctx context.Context, n *big.Int) (model.ClassificationRecord, string, error) {
	var record model.ClassificationRecord
	fact := service.FactPlaceholder

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, s.cfg.ClassifyTimeout)
		defer cancel()

		rec, err := s.classifier.ClassifyContext(cctx, n)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", common.ErrClassificationTimeout, err)
		}
		if err != nil {
			return err
		}
		record = rec
		return nil
	})

	if s.facts != nil {
		g.Go(func() error {
			text, err := s.facts.Fact(gctx, n)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					s.logger.Warn("Fun fact unavailable",
						"request_id", RequestIDFromContext(ctx),
						"error", err)
				}
				return nil
			}
			fact = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.ClassificationRecord{}, "", err
	}
	return record, fact, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
