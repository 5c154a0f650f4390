// Package genai implements a Gemini generateContent client. The same client
// serves the vision identification call (text + inline image) and the
// text-only review summarization call.
package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/httpclient"
	"github.com/minhquyminhquy/LocalLens/pkg/metrics"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

// Config holds Gemini client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the Gemini REST API
type Client struct {
	http   *httpclient.Client
	logger ectologger.Logger
	cfg    Config
}

// NewClient creates a new Gemini client
func NewClient(cfg Config, logger ectologger.Logger) *Client {
	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}

	return &Client{
		http:   httpclient.NewClient(httpCfg, logger),
		logger: logger,
		cfg:    cfg,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// generateContentRequest is the request body for the generateContent endpoint
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

// generateContentResponse is the response body from the generateContent endpoint
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// GenerateWithImage sends a prompt plus an inline image to the given model and
// returns the concatenated response text.
func (c *Client) GenerateWithImage(ctx context.Context, model, prompt string, image []byte, mimeType string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "genai.Client.GenerateWithImage")
	defer span.End()

	req := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	return c.generate(ctx, model, "generate_with_image", req)
}

// GenerateText sends a text-only prompt to the given model and returns the
// response text.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "genai.Client.GenerateText")
	defer span.End()

	req := generateContentRequest{
		Contents: []content{{
			Parts: []part{{Text: prompt}},
		}},
	}

	return c.generate(ctx, model, "generate_text", req)
}

func (c *Client) generate(ctx context.Context, model, operation string, req generateContentRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, url, body)
	metrics.ProviderRequestDuration.WithLabelValues("gemini", operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("gemini", operation, "error").Inc()
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var apiResp generateContentResponse
	if err := json.Unmarshal(resp.Body, &apiResp); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("gemini", operation, "error").Inc()
		return "", fmt.Errorf("gemini returned invalid response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("gemini", operation, "error").Inc()
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if apiResp.Error != nil {
			msg = apiResp.Error.Message
		}
		c.logger.WithContext(ctx).WithFields(map[string]any{
			"model":       model,
			"status_code": resp.StatusCode,
		}).Error("Gemini call rejected")
		return "", fmt.Errorf("gemini error: %s", msg)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		metrics.ProviderRequestsTotal.WithLabelValues("gemini", operation, "error").Inc()
		return "", fmt.Errorf("gemini returned no candidates")
	}

	metrics.ProviderRequestsTotal.WithLabelValues("gemini", operation, "ok").Inc()

	text := ""
	for _, p := range apiResp.Candidates[0].Content.Parts {
		text += p.Text
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"model":           model,
		"response_length": len(text),
	}).Debug("Gemini call complete")

	return text, nil
}
