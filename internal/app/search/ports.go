package search

import (
	"context"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Filter narrows search history. Zero fields match everything; From and To
// are inclusive.
type Filter struct {
	From      *time.Time
	To        *time.Time
	Query     string
	Site      string
	AllInText string
}

type Store interface {
	AddSearch(ctx context.Context, entry domain.SearchEntry) error
	Searches(ctx context.Context, filter Filter) ([]domain.SearchEntry, error)
	DeleteSearches(ctx context.Context, filter Filter) (int64, error)
}

type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// ResultsClient fetches results through the Custom Search JSON API.
type ResultsClient interface {
	Search(ctx context.Context, apiKey, engineID, query string) ([]Result, error)
}

type Browser interface {
	Open(ctx context.Context, url string) error
}

type IDGenerator interface {
	NewID() (string, error)
}

type Clock interface {
	Now() time.Time
}
