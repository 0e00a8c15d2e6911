package imagesearch

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"

	"github.com/deckgen/deckgen/internal/domain/ports"
)

const placeholderResultCount = 12

// PlaceholderProvider is the terminal provider in the search chain. It
// derives a deterministic page of placeholder image URLs from the query,
// so the same query always yields the same gallery. One probe request
// verifies the placeholder host is reachable; as the chain's last
// provider, its error is the one callers see.
type PlaceholderProvider struct {
	baseURL    string
	httpClient ports.HTTPClient
}

// NewPlaceholderProvider creates the provider. baseURL defaults to the
// public picsum host.
func NewPlaceholderProvider(baseURL string, httpClient ports.HTTPClient) *PlaceholderProvider {
	if baseURL == "" {
		baseURL = "https://picsum.photos"
	}
	if httpClient == nil {
		httpClient = ports.NewRealHTTPClient(ports.HTTPClientConfig{})
	}
	return &PlaceholderProvider{baseURL: baseURL, httpClient: httpClient}
}

var _ ports.ImageSearchProvider = (*PlaceholderProvider)(nil)

// Name identifies the provider in logs.
func (p *PlaceholderProvider) Name() string { return "placeholder" }

// Search returns a deterministic page of seeded placeholder URLs.
func (p *PlaceholderProvider) Search(ctx context.Context, query string) ([]string, error) {
	urls := p.urlsFor(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, urls[0], nil)
	if err != nil {
		return nil, fmt.Errorf("building placeholder probe: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("placeholder host unreachable: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("placeholder host returned status %d", resp.StatusCode)
	}

	return urls, nil
}

func (p *PlaceholderProvider) urlsFor(query string) []string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(query))
	base := h.Sum32()

	urls := make([]string, placeholderResultCount)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/seed/%d/1280/720", p.baseURL, base+uint32(i))
	}
	return urls
}
