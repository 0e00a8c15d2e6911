package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// SlideClient calls the external slide content generation API.
type SlideClient struct {
	baseURL    string
	model      string
	apiKey     string
	maxSlides  int
	httpClient ports.HTTPClient
}

// SlideClientConfig configures the slide content client.
type SlideClientConfig struct {
	BaseURL   string
	Model     string
	APIKey    string
	Timeout   time.Duration
	MaxSlides int
}

// NewSlideClient creates a slide content client. A nil httpClient gets a
// default one built from the configured timeout.
func NewSlideClient(config SlideClientConfig, httpClient ports.HTTPClient) *SlideClient {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxSlides == 0 {
		config.MaxSlides = 10
	}
	if httpClient == nil {
		httpClient = ports.NewRealHTTPClient(ports.HTTPClientConfig{Timeout: config.Timeout})
	}

	return &SlideClient{
		baseURL:    config.BaseURL,
		model:      config.Model,
		apiKey:     config.APIKey,
		maxSlides:  config.MaxSlides,
		httpClient: httpClient,
	}
}

var _ ports.SlideContentGenerator = (*SlideClient)(nil)

type slideRequest struct {
	Model      string `json:"model,omitempty"`
	Text       string `json:"text"`
	SlideCount int    `json:"slideCount"`
}

type slideResponse struct {
	Slides []ports.SlidePair `json:"slides"`
}

// GenerateSlides posts the source text and returns the generated
// title/bullet pairs, clamped to the configured maximum.
func (c *SlideClient) GenerateSlides(ctx context.Context, text string, count int) ([]ports.SlidePair, error) {
	if count < 1 {
		count = 1
	}
	if count > c.maxSlides {
		count = c.maxSlides
	}

	body, err := json.Marshal(slideRequest{Model: c.model, Text: text, SlideCount: count})
	if err != nil {
		return nil, fmt.Errorf("encoding slide request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/slides", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building slide request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling slide generator: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("slide generator returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading slide response: %w", err)
	}

	var decoded slideResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &entities.GenerationFailure{Stage: "decode", Err: err}
	}
	if len(decoded.Slides) == 0 {
		return nil, &entities.GenerationFailure{Stage: "decode", Err: fmt.Errorf("response contained no slides")}
	}

	pairs := decoded.Slides
	if len(pairs) > count {
		pairs = pairs[:count]
	}
	return pairs, nil
}
