// Package gateway is the portal API call helper. Every feature service talks
// to the backend through one Client: authenticated JSON requests, a uniform
// response envelope, and local mapping of failures into displayable errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/pkg/circuitbreaker"
	"github.com/MRaysa/medai-client/pkg/logger"
)

// FallbackErrorMessage is shown when a failed response carries no message of
// its own.
const FallbackErrorMessage = "Something went wrong. Please try again."

// Caller is the call surface feature services depend on.
type Caller interface {
	Call(ctx context.Context, method, path string, body interface{}) (*Envelope, error)
}

// APIError is an application-level failure: the backend answered, but with
// success=false. The message is safe to show to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cb := circuitbreaker.NewCircuitBreaker("portal", circuitbreaker.Config{
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	logger.Info("Portal gateway initialized", zap.String("base_url", baseURL))

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
		cb:         cb,
	}
}

// Call issues one request and returns the parsed envelope. A success=false
// envelope comes back with a non-nil *APIError; transport failures are wrapped
// as plain errors. There are no retries here: a failed call is surfaced and
// re-triggering is the caller's decision.
func (c *Client) Call(ctx context.Context, method, path string, body interface{}) (*Envelope, error) {
	start := time.Now()

	var env *Envelope
	err := c.cb.Execute(ctx, func() error {
		var callErr error
		env, callErr = c.do(ctx, method, path, body)
		return callErr
	})

	metrics.RequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RequestTotal.WithLabelValues(path, "transport_error").Inc()
		return nil, err
	}

	if !env.Success {
		metrics.RequestTotal.WithLabelValues(path, "failure").Inc()
		msg := env.ErrorMessage()
		if msg == "" {
			msg = FallbackErrorMessage
		}
		return env, &APIError{Message: msg}
	}

	metrics.RequestTotal.WithLabelValues(path, "success").Inc()
	return env, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Portal request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response from portal (status %d): %w", resp.StatusCode, err)
	}

	logger.Debug("Portal response received",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", env.Success),
	)

	return &env, nil
}
