package searchapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-resty/resty/v2"

	searchapp "github.com/osvaldoandrade/shellcommander/internal/app/search"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	defaultTimeout = 15 * time.Second
)

// Client calls the Custom Search JSON API.
type Client struct {
	http *resty.Client
	url  string
}

func New() *Client {
	return NewWithURL(DefaultBaseURL)
}

func NewWithURL(endpoint string) *Client {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetJSONUnmarshaler(func(data []byte, v any) error {
			return json.Unmarshal(data, v)
		})
	return &Client{http: client, url: endpoint}
}

type response struct {
	Items []searchapp.Result `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Search(ctx context.Context, apiKey, engineID, query string) ([]searchapp.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out response
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": apiKey,
			"cx":  engineID,
			"q":   query,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteRequest, err)
	}
	if resp.IsError() {
		message := strings.TrimSpace(apiErr.Error.Message)
		if message == "" {
			message = resp.Status()
		}
		return nil, fmt.Errorf("%w: search api: %s", domain.ErrRemoteRequest, message)
	}
	return out.Items, nil
}
