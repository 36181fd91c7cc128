package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const braveSearchEndpoint = "https://api.search.brave.com/res/v1/web/search"

// SearchResult is a single hit from the web search tool.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// WebSearchOptions configures the web search tool.
type WebSearchOptions struct {
	// APIKey is the Brave Search subscription token. An empty key is not a
	// construction error; calls report the missing key as a result the model
	// can observe.
	APIKey string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	// Endpoint overrides the Brave Search API endpoint, mainly for tests.
	Endpoint string

	// MaxResults caps the number of results per query.
	MaxResults int
}

// WebSearchTool queries the Brave Search API and returns title, url and
// description triples. It is stateless and safe for concurrent use.
type WebSearchTool struct {
	opts WebSearchOptions
}

// NewWebSearchTool creates a web search tool backed by Brave Search.
func NewWebSearchTool(optFns ...func(o *WebSearchOptions)) *WebSearchTool {
	opts := WebSearchOptions{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Endpoint:   braveSearchEndpoint,
		MaxResults: 5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Endpoint == "" {
		opts.Endpoint = braveSearchEndpoint
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	return &WebSearchTool{opts: opts}
}

// Name returns the unique identifier for this tool.
func (t *WebSearchTool) Name() string { return "web_search" }

// Description returns a human-readable description of what this tool does.
func (t *WebSearchTool) Description() string {
	return "Search the web and return a list of results with title, url and description. " +
		"Use for looking up current documentation, tooling comparisons and recent incidents."
}

// Parameters returns the JSON schema describing the expected input format.
func (t *WebSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query.",
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Maximum number of results to return.",
			},
		},
		"required": []string{"query"},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Call performs the search. A missing API key or a non-200 response is
// reported as a ToolError so the loop can surface it as an observation.
func (t *WebSearchTool) Call(ctx context.Context, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return nil, NewToolError(t.Name(), "query must be a non-empty string", "VALIDATION_ERROR")
	}
	if t.opts.APIKey == "" {
		return nil, NewToolError(t.Name(), "search API key not configured", "CONFIGURATION_ERROR")
	}

	limit := t.opts.MaxResults
	if raw, ok := args["limit"].(float64); ok && int(raw) > 0 && int(raw) < limit {
		limit = int(raw)
	}

	reqURL := t.opts.Endpoint + "?" + url.Values{
		"q":     {query},
		"count": {strconv.Itoa(limit)},
	}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, NewToolError(t.Name(), err.Error(), "EXECUTION_ERROR")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Subscription-Token", t.opts.APIKey)

	resp, err := t.opts.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, NewToolError(t.Name(), fmt.Sprintf("search request failed: %v", err), "EXECUTION_ERROR")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewToolError(t.Name(), fmt.Sprintf("search failed: status %d", resp.StatusCode), "EXECUTION_ERROR")
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewToolError(t.Name(), fmt.Sprintf("decoding search response: %v", err), "EXECUTION_ERROR")
	}

	results := make([]SearchResult, 0, len(body.Web.Results))
	for _, r := range body.Web.Results {
		results = append(results, SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return results, nil
}
