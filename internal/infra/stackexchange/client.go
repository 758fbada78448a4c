package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/lastactive/internal/domain/questions"
)

const defaultBaseURL = "https://api.stackexchange.com/2.3"

// Client fetches the most recently active questions of a StackExchange site.
type Client struct {
	baseURL    string
	site       string
	key        string
	pageSize   int
	httpClient *http.Client
}

// Options configures the client.
type Options struct {
	BaseURL  string
	Site     string
	Key      string
	PageSize int
	Timeout  time.Duration
}

// NewClient builds an API client.
func NewClient(opts Options) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	site := strings.TrimSpace(opts.Site)
	if site == "" {
		site = "stackoverflow"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return &Client{
		baseURL:  strings.TrimRight(base, "/"),
		site:     site,
		key:      opts.Key,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchLastActive implements questions.Endpoint.
func (c *Client) FetchLastActive(ctx context.Context) ([]questions.RawQuestionRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("build questions request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("questions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("questions request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode questions response: %w", err)
	}
	if raw.ErrorID != 0 {
		return nil, fmt.Errorf("questions api error %d (%s): %s", raw.ErrorID, raw.ErrorName, raw.ErrorMessage)
	}
	return normalizeItems(raw.Items), nil
}

func (c *Client) endpoint() string {
	query := url.Values{}
	query.Set("order", "desc")
	query.Set("sort", "activity")
	query.Set("site", c.site)
	query.Set("pagesize", strconv.Itoa(c.pageSize))
	query.Set("filter", "withbody")
	if c.key != "" {
		query.Set("key", c.key)
	}
	return c.baseURL + "/questions?" + query.Encode()
}

type apiResponse struct {
	Items        []item `json:"items"`
	HasMore      bool   `json:"has_more"`
	ErrorID      int    `json:"error_id"`
	ErrorName    string `json:"error_name"`
	ErrorMessage string `json:"error_message"`
}

type item struct {
	QuestionID int64  `json:"question_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

func normalizeItems(items []item) []questions.RawQuestionRecord {
	out := make([]questions.RawQuestionRecord, 0, len(items))
	for _, it := range items {
		out = append(out, questions.RawQuestionRecord{
			ID:    strconv.FormatInt(it.QuestionID, 10),
			Title: html.UnescapeString(it.Title),
			Body:  it.Body,
		})
	}
	return out
}

var _ questions.Endpoint = (*Client)(nil)
