package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deckgen/deckgen/internal/domain/ports"
)

// ImageClient calls the external image generation API. The API returns
// either a hosted URL or base64 image bytes; base64 responses are
// wrapped as data URIs so callers always get a usable image reference.
type ImageClient struct {
	baseURL    string
	apiKey     string
	httpClient ports.HTTPClient
}

// ImageClientConfig configures the image generation client.
type ImageClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewImageClient creates an image generation client.
func NewImageClient(config ImageClientConfig, httpClient ports.HTTPClient) *ImageClient {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if httpClient == nil {
		httpClient = ports.NewRealHTTPClient(ports.HTTPClientConfig{Timeout: config.Timeout})
	}

	return &ImageClient{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}
}

var _ ports.ImageGenerator = (*ImageClient)(nil)

type imageRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type imageResponse struct {
	URL         string `json:"url"`
	Base64      string `json:"b64"`
	ContentType string `json:"contentType"`
}

// GenerateImage returns an image reference for the prompt.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(imageRequest{Prompt: prompt, Width: 1280, Height: 720})
	if err != nil {
		return "", fmt.Errorf("encoding image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/images", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling image generator: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image generator returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", fmt.Errorf("reading image response: %w", err)
	}

	var decoded imageResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decoding image response: %w", err)
	}

	switch {
	case decoded.URL != "":
		return decoded.URL, nil
	case decoded.Base64 != "":
		contentType := decoded.ContentType
		if contentType == "" {
			contentType = "image/png"
		}
		return fmt.Sprintf("data:%s;base64,%s", contentType, decoded.Base64), nil
	default:
		return "", fmt.Errorf("image response contained no image")
	}
}
