package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/deckgen/deckgen/internal/domain/ports"
)

const defaultResultLimit = 12

// OpenverseProvider searches an Openverse-compatible image API. It is
// the primary provider in the search chain; any failure or empty result
// hands over to the next provider.
type OpenverseProvider struct {
	baseURL    string
	apiKey     string
	limit      int
	httpClient ports.HTTPClient
}

// OpenverseConfig configures the provider.
type OpenverseConfig struct {
	BaseURL string
	APIKey  string
	Limit   int
	Timeout time.Duration
}

// NewOpenverseProvider creates the provider. A nil httpClient gets a
// default one built from the configured timeout.
func NewOpenverseProvider(config OpenverseConfig, httpClient ports.HTTPClient) *OpenverseProvider {
	if config.Limit <= 0 {
		config.Limit = defaultResultLimit
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if httpClient == nil {
		httpClient = ports.NewRealHTTPClient(ports.HTTPClientConfig{Timeout: config.Timeout})
	}

	return &OpenverseProvider{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		limit:      config.Limit,
		httpClient: httpClient,
	}
}

var _ ports.ImageSearchProvider = (*OpenverseProvider)(nil)

// Name identifies the provider in logs.
func (p *OpenverseProvider) Name() string { return "openverse" }

type openverseResponse struct {
	Results []struct {
		URL string `json:"url"`
	} `json:"results"`
}

// Search returns image URLs for the query in API order.
func (p *OpenverseProvider) Search(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page_size", fmt.Sprintf("%d", p.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/images/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling image search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	var decoded openverseResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	urls := make([]string, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls, nil
}
