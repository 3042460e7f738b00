package inference

// Package inference wraps the hosted image-captioning model behind a small
// Gateway interface. One synchronous request per call; no retries and no
// caching of repeated requests for the same image.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"capsterapi/internal/config"
)

// ErrMissingToken signals a missing provider credential. It is returned
// before any upstream request is attempted and must not be retried.
var ErrMissingToken = errors.New("inference: provider token is not configured")

// UpstreamError is a non-2xx response from the captioning model.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference: upstream returned %d: %s", e.StatusCode, e.Message)
}

// fallbackCaption is substituted when the upstream body is empty or
// malformed; callers get a non-empty but generic caption list instead of a
// hard failure.
const fallbackCaption = "Potongan keren dan bergaya maksimal!"

// CaptionResult is the gateway's answer for one image.
type CaptionResult struct {
	Captions      []string `json:"captions"`
	EnhancedImage string   `json:"enhancedImage"`
}

// Gateway requests captions for a publicly dereferenceable image URL.
// The provider fetches the image server-side, so the URL must resolve from
// the provider's network, not just ours.
type Gateway interface {
	RequestCaption(ctx context.Context, imageURL string) (*CaptionResult, error)
}

type hfGateway struct {
	client  *http.Client
	baseURL string
	token   string
	model   string
}

// NewHuggingFace builds a Gateway talking to a Hugging Face style inference
// endpoint: POST {base}/models/{model} with a bearer credential and a JSON
// body {"inputs": <image url>}.
func NewHuggingFace(cfg config.InferenceConfig) Gateway {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if cfg.TimeoutSec <= 0 {
		timeout = 30 * time.Second
	}
	return &hfGateway{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		model:   cfg.Model,
	}
}

// captionResponse mirrors the provider's result sequence.
type captionResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (g *hfGateway) RequestCaption(ctx context.Context, imageURL string) (*CaptionResult, error) {
	if g.token == "" {
		return nil, ErrMissingToken
	}

	payload, err := json.Marshal(map[string]string{"inputs": imageURL})
	if err != nil {
		return nil, fmt.Errorf("marshal inference payload: %w", err)
	}

	endpoint := g.baseURL + "/models/" + g.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call inference api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body, resp.Status),
		}
	}

	// Empty or malformed bodies degrade to the fallback caption rather than
	// failing the whole request.
	caption := fallbackCaption
	var parsed captionResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed) > 0 && parsed[0].GeneratedText != "" {
		caption = parsed[0].GeneratedText
	}

	return &CaptionResult{
		Captions:      captionVariants(caption),
		EnhancedImage: EnhanceImageURL(imageURL),
	}, nil
}

// upstreamMessage extracts the provider's {"error": ...} body when parseable,
// falling back to the HTTP status line.
func upstreamMessage(body []byte, status string) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return status
}

// captionVariants synthesizes the fixed set of three candidate captions from
// the single upstream caption: a capitalization variant and two templated
// phrasings. No second model call is made.
func captionVariants(caption string) []string {
	return []string{
		capitalize(caption),
		fmt.Sprintf("Varian 1: %s. Potongan ini luar biasa!", caption),
		fmt.Sprintf("Varian 2: Gaya baru dengan %s, kepercayaan diri maksimal!", caption),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// EnhanceImageURL derives the "enhanced" image URL by string substitution
// only: the scheme is upgraded to https and an enhance=ai query marker is
// appended. No pixel-level transformation occurs; the result is a cosmetic
// placeholder and must not be treated as authoritative image data.
func EnhanceImageURL(imageURL string) string {
	enhanced := imageURL
	if strings.HasPrefix(enhanced, "http:") {
		enhanced = "https:" + strings.TrimPrefix(enhanced, "http:")
	}
	if u, err := url.Parse(enhanced); err == nil {
		q := u.Query()
		q.Set("enhance", "ai")
		u.RawQuery = q.Encode()
		return u.String()
	}
	return enhanced
}
