package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

// HTTPSource fetches the JSON feed from a remote endpoint.
type HTTPSource struct {
	client   *http.Client
	endpoint string
}

// NewHTTPSource builds a source over client and endpoint. A nil client
// falls back to http.DefaultClient; callers normally pass one with a
// timeout from config.
func NewHTTPSource(client *http.Client, endpoint string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, endpoint: endpoint}
}

// Rows downloads and decodes the feed.
func (s *HTTPSource) Rows(ctx context.Context) ([]application.SourceRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed endpoint returned status %d", resp.StatusCode)
	}
	rows, err := decodeRows(json.NewDecoder(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}
	return rows, nil
}
