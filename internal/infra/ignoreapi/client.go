package ignoreapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	ignoreapp "github.com/osvaldoandrade/shellcommander/internal/app/ignore"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client reads templates from a gitignore.io style API, where "list" names
// the templates and "<t1>,<t2>" returns the combined ignore file.
type Client struct {
	http *resty.Client
}

func New(baseURL string) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("ignore api url required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid ignore api url %q: %w", baseURL, err)
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "text/plain")
	return &Client{http: client}, nil
}

func (c *Client) List(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "list", map[string]string{"format": "lines"})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(body, "\n") {
		for _, name := range strings.Split(line, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func (c *Client) Fetch(ctx context.Context, templates []string) (string, error) {
	escaped := make([]string, 0, len(templates))
	for _, template := range templates {
		escaped = append(escaped, url.PathEscape(template))
	}
	return c.get(ctx, strings.Join(escaped, ","), nil)
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteRequest, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ignoreapp.ErrUnknownTemplate, path)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s %s", domain.ErrRemoteRequest, resp.Status(), strings.TrimSpace(resp.String()))
	}
	return resp.String(), nil
}
