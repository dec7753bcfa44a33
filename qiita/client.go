package qiita

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://qiita.com"

// Tag names a Qiita tag on an item. Versions is always submitted, even
// empty, because the items API requires the field.
type Tag struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// Item is the request payload for creating or updating an article.
type Item struct {
	Body  string `json:"body"`
	Tags  []Tag  `json:"tags"`
	Title string `json:"title"`
}

// ItemResponse is the subset of the items API response this tool uses.
type ItemResponse struct {
	Body string `json:"body"`
	URL  string `json:"url"`
}

// RequestError is a non-2xx response from the API.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: server said: %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client provides access to the Qiita v2 items API.
type Client struct {
	BaseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client authenticating with the given API token.
func NewClient(token string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// CreateItem posts a new article.
// https://qiita.com/api/v2/docs#post-apiv2items
func (c *Client) CreateItem(ctx context.Context, item *Item) (*ItemResponse, error) {
	return c.do(ctx, http.MethodPost, c.BaseURL+"/api/v2/items", item)
}

// GetItem fetches the current remote state of an article.
// https://qiita.com/api/v2/docs#get-apiv2itemsitem_id
func (c *Client) GetItem(ctx context.Context, id string) (*ItemResponse, error) {
	return c.do(ctx, http.MethodGet, c.BaseURL+"/api/v2/items/"+id, nil)
}

// UpdateItem patches an existing article.
// https://qiita.com/api/v2/docs#patch-apiv2itemsitem_id
func (c *Client) UpdateItem(ctx context.Context, id string, item *Item) (*ItemResponse, error) {
	return c.do(ctx, http.MethodPatch, c.BaseURL+"/api/v2/items/"+id, item)
}

func (c *Client) do(ctx context.Context, method, url string, item *Item) (*ItemResponse, error) {
	var body io.Reader
	if item != nil {
		buf, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("error encoding request payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if item != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", url).Msg("request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		buf, _ := io.ReadAll(resp.Body)
		return nil, &RequestError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(buf)}
	}

	var r ItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("error decoding items response: %w", err)
	}
	return &r, nil
}
