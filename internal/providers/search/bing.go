package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/inbucket/html2text"
)

const maxResponseSize = 1 << 20

// Bing queries the Bing Web Search API. Without an API key it yields nothing.
type Bing struct {
	client   *http.Client
	endpoint string
	apiKey   string
	market   string
	count    int
}

func NewBing(endpoint, apiKey, market string, count int) *Bing {
	return &Bing{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
		market:   market,
		count:    count,
	}
}

func (b *Bing) Name() string { return "bing" }

func (b *Bing) Search(ctx context.Context, query string) ([]core.Snippet, error) {
	if b.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(b.count))
	params.Set("mkt", b.market)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bing: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		WebPages struct {
			Value []struct {
				Snippet string `json:"snippet"`
				URL     string `json:"url"`
			} `json:"value"`
		} `json:"webPages"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("bing decode: %w", err)
	}

	snippets := make([]core.Snippet, 0, len(payload.WebPages.Value))
	for _, v := range payload.WebPages.Value {
		snippets = append(snippets, core.Snippet{Text: cleanText(v.Snippet), URL: v.URL})
	}
	return snippets, nil
}

// cleanText strips markup and decodes entities that search APIs leave in snippets.
func cleanText(s string) string {
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return s
	}
	return text
}
