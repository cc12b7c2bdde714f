package search

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const searchURL = "https://www.google.com/search"

const dateLayout = "2006-01-02"

type Config struct {
	APIKey   string
	EngineID string
}

type Request struct {
	Query     string
	Site      string
	AllInText string
	// Fetch returns API results instead of opening the browser.
	Fetch bool
}

type Outcome struct {
	Entry   domain.SearchEntry `json:"entry"`
	URL     string             `json:"url"`
	Results []Result           `json:"results,omitempty"`
}

type Service struct {
	store   Store
	results ResultsClient
	browser Browser
	ids     IDGenerator
	clock   Clock
	cfg     Config
}

func NewService(store Store, results ResultsClient, browser Browser, ids IDGenerator, clock Clock, cfg Config) *Service {
	return &Service{
		store:   store,
		results: results,
		browser: browser,
		ids:     ids,
		clock:   clock,
		cfg:     cfg,
	}
}

// URL returns the Google search url for a full query string.
func (s *Service) URL(queryString string) string {
	params := url.Values{}
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("lr", "lang_en")
	params.Set("cr", "countryUS")
	params.Set("q", queryString)
	if s.cfg.APIKey != "" && s.cfg.EngineID != "" {
		params.Set("key", s.cfg.APIKey)
		params.Set("cx", s.cfg.EngineID)
	}
	return searchURL + "?" + params.Encode()
}

// Search runs the query and records it in the history.
func (s *Service) Search(ctx context.Context, req Request) (Outcome, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Outcome{}, ErrQueryRequired
	}

	id, err := s.ids.NewID()
	if err != nil {
		return Outcome{}, err
	}
	entry := domain.SearchEntry{
		ID:        id,
		Query:     query,
		Website:   strings.TrimSpace(req.Site),
		AllInText: strings.TrimSpace(req.AllInText),
		Timestamp: s.clock.Now(),
	}
	out := Outcome{Entry: entry, URL: s.URL(entry.QueryString())}

	if req.Fetch {
		if s.cfg.APIKey == "" || s.cfg.EngineID == "" {
			return Outcome{}, ErrResultsUnavailable
		}
		out.Results, err = s.results.Search(ctx, s.cfg.APIKey, s.cfg.EngineID, entry.QueryString())
		if err != nil {
			return Outcome{}, err
		}
	} else if err := s.browser.Open(ctx, out.URL); err != nil {
		return Outcome{}, err
	}

	if err := s.store.AddSearch(ctx, entry); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (s *Service) History(ctx context.Context, filter Filter) ([]domain.SearchEntry, error) {
	if err := checkRange(filter); err != nil {
		return nil, err
	}
	return s.store.Searches(ctx, filter)
}

func (s *Service) Clear(ctx context.Context, filter Filter) (int64, error) {
	if err := checkRange(filter); err != nil {
		return 0, err
	}
	return s.store.DeleteSearches(ctx, filter)
}

// ParseBound parses a history range bound in local time. A bare date used as
// an upper bound covers the whole day.
func ParseBound(value string, upper bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(domain.CommitTimeLayout, value, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

func checkRange(filter Filter) error {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return ErrInvalidRange
	}
	return nil
}
