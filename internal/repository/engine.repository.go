package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carteira/internal/domain"
	"carteira/internal/logger"
)

// engineTimeout mirrors the client-side budget the dashboard always had: one
// attempt, aborted after 60s, never retried.
const engineTimeout = 60 * time.Second

type AnalysisEngine interface {
	Analyze(ctx context.Context, submission domain.Submission) (*domain.AnalysisResult, error)
}

func NewAnalysisEngineClient(baseUrl, apiKey string) AnalysisEngine {
	return &analysisEngineHandler{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: engineTimeout,
		},
	}
}

type analysisEngineHandler struct {
	baseUrl string
	apiKey  string
	client  *http.Client
}

type engineErrorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (h *analysisEngineHandler) Analyze(ctx context.Context, submission domain.Submission) (*domain.AnalysisResult, error) {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, engineTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseUrl+"/api/v1/portfolio/analysis", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build engine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	log.Infow("analysis engine responded",
		"status", resp.StatusCode,
		"durationMs", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		cause := fmt.Errorf("engine returned %d", resp.StatusCode)
		var engineErr engineErrorBody
		if json.Unmarshal(raw, &engineErr) == nil && engineErr.Message != "" {
			cause = fmt.Errorf("engine returned %d: %s", resp.StatusCode, engineErr.Message)
		}
		return nil, domain.NewServerError(resp.StatusCode, cause)
	}

	result := &domain.AnalysisResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, domain.NewUnknownError(fmt.Errorf("failed to decode analysis result: %w", err))
	}
	return result, nil
}

// classifyTransportError separates "it took too long" from "it never
// connected"; the dashboard shows different guidance for each.
func classifyTransportError(err error) *domain.CategorizedError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewTimeoutError(err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.NewConnectivityError(err)
	}
	return domain.NewUnknownError(err)
}
