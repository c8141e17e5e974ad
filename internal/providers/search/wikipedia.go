package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

// Wikipedia looks the query up as a page title via the REST summary endpoint.
type Wikipedia struct {
	client   *http.Client
	endpoint string
}

func NewWikipedia(endpoint string) *Wikipedia {
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &Wikipedia{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
	}
}

func (w *Wikipedia) Name() string { return "wikipedia" }

func (w *Wikipedia) Search(ctx context.Context, query string) ([]core.Snippet, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	if title == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+url.PathEscape(title), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Extract     string `json:"extract"`
		ExtractHTML string `json:"extract_html"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("wikipedia decode: %w", err)
	}

	text := payload.Extract
	if text == "" && payload.ExtractHTML != "" {
		text = cleanText(payload.ExtractHTML)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return []core.Snippet{{Text: text, URL: payload.ContentURLs.Desktop.Page}}, nil
}
