package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"
)

// Generator is the model surface the pipeline depends on. Implementations
// return a typed error on failure; callers never have to distinguish a failed
// call from a model that legitimately produced empty text.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is a single non-streaming completion request.
type GenerateRequest struct {
	Model  string
	Prompt string
	// Format constrains the response encoding (e.g. "json").
	Format string
	// Schema, when set, is forwarded as a response schema hint.
	Schema map[string]any
}

// GenerateResponse carries the generated text and a correlation id.
type GenerateResponse struct {
	Text      string
	RequestID string
}

// Client is a minimal HTTP client for a local Ollama runtime, speaking the
// /api/generate endpoint with streaming disabled.
type Client struct {
	httpClient       *http.Client
	host             string
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	debug            bool
}

// NewClient creates a client targeting the given host (e.g. http://127.0.0.1:11434).
// retryMax of 1 means a single attempt with no retry.
func NewClient(host string, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration) *Client {
	if host == "" {
		host = "http://127.0.0.1:11434"
	}
	if httpTimeout <= 0 {
		httpTimeout = 5 * time.Minute
	}
	if retryMax <= 0 {
		retryMax = 1
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 4 * time.Second
	}
	return &Client{
		httpClient:       &http.Client{Timeout: httpTimeout},
		host:             host,
		retryMaxAttempts: retryMax,
		retryBaseDelay:   baseDelay,
		retryMaxDelay:    maxDelay,
	}
}

// SetDebugLogging enables verbose request/response payload logging.
func (c *Client) SetDebugLogging(enabled bool) { c.debug = enabled }

// Structures aligned with Ollama /api/generate (non-streaming)
type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends a completion request to Ollama. A timeout behaves like any
// other transport failure: a typed error, no partial result.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.Model == "" {
		return nil, errors.New("model cannot be empty")
	}
	if req.Prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	oreq := ollamaGenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
		Format: req.Format,
	}
	if req.Schema != nil {
		oreq.Options = map[string]any{"response_schema": req.Schema}
	}
	payload, err := json.Marshal(oreq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	c.logPayload(payload)

	endpoint := c.host + "/api/generate"
	maxAttempts := c.retryMaxAttempts
	backoff := c.retryBaseDelay

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if isRetryableNetErr(err) && attempt < maxAttempts {
				time.Sleep(c.capDelay(withJitter(backoff)))
				backoff *= 2
				continue
			}
			return nil, &UnreachableError{Host: c.host, Err: err}
		}
		var out GenerateResponse
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
				log.Printf("ai: ollama status %d, body: %s", resp.StatusCode, truncate(string(body), 2048))
				var raw map[string]any
				_ = json.Unmarshal(body, &raw)
				apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw}
				if msg, ok := raw["error"].(string); ok {
					apiErr.Message = msg
				}
				switch {
				case resp.StatusCode == http.StatusNotFound:
					// Likely missing model
					lastErr = &ModelNotFoundError{APIError: apiErr}
				case resp.StatusCode >= 500:
					lastErr = &ServerError{APIError: apiErr}
				case resp.StatusCode == http.StatusBadRequest:
					lastErr = &BadRequestError{APIError: apiErr}
				default:
					lastErr = apiErr
				}
				return
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				lastErr = fmt.Errorf("read response: %w", err)
				return
			}
			c.logResponse(body)
			var oresp ollamaGenerateResponse
			if err := json.Unmarshal(body, &oresp); err != nil {
				log.Printf("ai: undecodable ollama response body: %s", truncate(string(body), 2048))
				lastErr = fmt.Errorf("decode response: %w", err)
				return
			}
			out.Text = oresp.Response
			out.RequestID = fmt.Sprintf("ollama_%d", time.Now().UnixNano())
			lastErr = nil
		}()
		if lastErr == nil {
			return &out, nil
		}
		var srvErr *ServerError
		if attempt < maxAttempts && errors.As(lastErr, &srvErr) {
			time.Sleep(c.capDelay(withJitter(backoff)))
			backoff *= 2
			continue
		}
		break
	}
	return nil, lastErr
}

func (c *Client) capDelay(d time.Duration) time.Duration {
	if c.retryMaxDelay > 0 && d > c.retryMaxDelay {
		return c.retryMaxDelay
	}
	return d
}

func isRetryableNetErr(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	if errors.Is(err, io.EOF) {
		return true
	}
	return false
}

// withJitter returns a backoff duration with +/- 20% jitter applied.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 500 * time.Millisecond
	}
	f := 0.8 + rand.Float64()*0.4
	out := time.Duration(float64(d) * f)
	if out <= 0 {
		return d
	}
	return out
}

func (c *Client) logPayload(payload []byte) {
	if !c.debug {
		return
	}
	log.Printf("ai: request payload: %s", truncate(string(payload), 2048))
}

func (c *Client) logResponse(body []byte) {
	if !c.debug {
		return
	}
	log.Printf("ai: response payload: %s", truncate(string(body), 2048))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
