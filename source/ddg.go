package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Snippet is one web search hit.
type Snippet struct {
	Title   string
	Content string
	URL     string
}

// SnippetSearcher finds text snippets for a query on the open web.
type SnippetSearcher interface {
	Snippets(ctx context.Context, query string, max int) ([]Snippet, error)
}

const defaultDuckDuckGoURL = "https://api.duckduckgo.com"

// DuckDuckGo queries the DuckDuckGo instant-answer API. The API reports
// no calibrated relevance score, so hits carry no score of their own.
type DuckDuckGo struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// DuckDuckGoOption configures a DuckDuckGo client.
type DuckDuckGoOption func(*DuckDuckGo)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if baseURL != "" {
			d.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// NewDuckDuckGo creates an instant-answer client.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		baseURL:    defaultDuckDuckGoURL,
		httpClient: &http.Client{Timeout: 6 * time.Second},
		logger:     slog.Default().With("component", "duckduckgo"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// instantAnswer mirrors the fields of the API response we consume.
type instantAnswer struct {
	Heading       string `json:"Heading"`
	Abstract      string `json:"Abstract"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Snippets implements SnippetSearcher.
func (d *DuckDuckGo) Snippets(ctx context.Context, query string, max int) ([]Snippet, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1", d.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("duckduckgo response: %w", err)
	}

	var snippets []Snippet
	abstract := answer.AbstractText
	if abstract == "" {
		abstract = answer.Abstract
	}
	if abstract != "" {
		snippets = append(snippets, Snippet{
			Title:   answer.Heading,
			Content: abstract,
			URL:     answer.AbstractURL,
		})
	}
	if answer.Answer != "" {
		snippets = append(snippets, Snippet{Title: answer.Heading, Content: answer.Answer})
	}
	for _, topic := range answer.RelatedTopics {
		if len(snippets) >= max {
			break
		}
		if topic.Text != "" {
			snippets = append(snippets, Snippet{Content: topic.Text, URL: topic.FirstURL})
		}
	}

	if len(snippets) > max {
		snippets = snippets[:max]
	}

	d.logger.Debug("instant answer fetched", "query", query, "snippets", len(snippets))
	return snippets, nil
}
