package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/econsult/commentnet-go/internal/errors"
	"github.com/econsult/commentnet-go/internal/httpclient"
	"github.com/econsult/commentnet-go/internal/observability"
)

// inference response size guard, classification outputs are tiny
const maxResponseBytes = 1 << 20

// InferenceConfig configures the hosted model endpoint.
type InferenceConfig struct {
	Endpoint string        // URL of the text-classification endpoint
	APIKey   string        // optional bearer token
	Timeout  time.Duration // per-request timeout
}

// InferenceClient invokes a hosted text-classification endpoint speaking the
// common inference-server protocol: request {"inputs": "<text>"}, response
// [[{"label": "4 stars", "score": 0.87}, ...]] with one candidate list per
// input. The highest scoring candidate is the prediction.
type InferenceClient struct {
	cfg     InferenceConfig
	http    *httpclient.Client
	metrics *observability.Metrics
}

// NewInferenceClient creates a client for the configured endpoint. metrics
// may be nil.
func NewInferenceClient(cfg InferenceConfig, metrics *observability.Metrics) *InferenceClient {
	return &InferenceClient{
		cfg: cfg,
		http: httpclient.New(&httpclient.Config{
			DefaultTimeout: cfg.Timeout,
		}),
		metrics: metrics,
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Predict implements Model by calling the hosted endpoint once, no retries.
func (ic *InferenceClient) Predict(ctx context.Context, text string) (Prediction, error) {
	start := time.Now()
	prediction, err := ic.predict(ctx, text)
	ic.observe(start, err)
	return prediction, err
}

func (ic *InferenceClient) predict(ctx context.Context, text string) (Prediction, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ic.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ic.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+ic.cfg.APIKey)
	}

	resp, err := ic.http.Do(ctx, req)
	if err != nil {
		return Prediction{}, errors.New(fmt.Errorf("model endpoint unreachable: %w", err)).
			Component("sentiment").
			Category(errors.CategoryNetwork).
			ModelContext(ic.cfg.Endpoint, ic.cfg.Timeout).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, errors.Newf("model endpoint returned status %d", resp.StatusCode).
			Component("sentiment").
			Category(errors.CategoryModelInference).
			ModelContext(ic.cfg.Endpoint, ic.cfg.Timeout).
			Build()
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read inference response: %w", err)
	}

	return parsePrediction(payload)
}

// parsePrediction extracts the top ranked candidate from the response. Both
// the nested form [[{...}]] and the flat form [{...}] are accepted.
func parsePrediction(payload []byte) (Prediction, error) {
	var nested [][]Prediction
	if err := json.Unmarshal(payload, &nested); err == nil && len(nested) > 0 {
		return topCandidate(nested[0])
	}

	var flat []Prediction
	if err := json.Unmarshal(payload, &flat); err == nil {
		return topCandidate(flat)
	}

	return Prediction{}, errors.Newf("unrecognized inference response: %s", truncateForError(payload)).
		Component("sentiment").
		Category(errors.CategoryModelInference).
		Build()
}

func topCandidate(candidates []Prediction) (Prediction, error) {
	if len(candidates) == 0 {
		return Prediction{}, errors.Newf("inference response contained no candidates").
			Component("sentiment").
			Category(errors.CategoryModelInference).
			Build()
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return best, nil
}

func truncateForError(payload []byte) string {
	const limit = 200
	if len(payload) > limit {
		return string(payload[:limit]) + "..."
	}
	return string(payload)
}

func (ic *InferenceClient) observe(start time.Time, err error) {
	if ic.metrics == nil {
		return
	}
	ic.metrics.ModelRequestDuration.Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	ic.metrics.ModelRequests.WithLabelValues(status).Inc()
}

// SetTransport replaces the underlying HTTP transport, for tests that mock
// the inference endpoint.
func (ic *InferenceClient) SetTransport(rt http.RoundTripper) {
	ic.http.SetTransport(rt)
}

// Close releases idle connections held by the underlying HTTP client.
func (ic *InferenceClient) Close() {
	ic.http.Close()
}
