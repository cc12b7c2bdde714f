package quote

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

const WrapWidth = 80

type Service struct {
	store Store
	clock Clock
	pick  func(n int) int
}

func NewService(store Store, clock Clock) *Service {
	return &Service{store: store, clock: clock, pick: rand.IntN}
}

func (s *Service) Add(ctx context.Context, text, author string) (domain.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Quote{}, ErrQuoteRequired
	}
	author = strings.TrimSpace(author)
	if author == "" {
		return domain.Quote{}, ErrAuthorRequired
	}
	return s.store.AddQuote(ctx, text, author)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Quote, error) {
	return s.store.Quote(ctx, id)
}

func (s *Service) All(ctx context.Context) ([]domain.Quote, error) {
	return s.store.Quotes(ctx)
}

func (s *Service) Random(ctx context.Context) (domain.Quote, error) {
	quotes, err := s.store.Quotes(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(quotes) == 0 {
		return domain.Quote{}, ErrNoQuotes
	}
	return quotes[s.pick(len(quotes))], nil
}

// Daily returns today's quote, picking and recording a random one when the
// latest daily quote is from an earlier day.
func (s *Service) Daily(ctx context.Context) (domain.Quote, error) {
	now := s.clock.Now()
	latest, ok, err := s.store.LatestDaily(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	if ok && sameDay(latest.Timestamp, now) {
		return s.store.Quote(ctx, latest.QuoteID)
	}

	picked, err := s.Random(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	if _, err := s.store.AddDaily(ctx, picked.ID, now); err != nil {
		return domain.Quote{}, err
	}
	return picked, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Format word-wraps the quote and puts the author on its own indented line.
func Format(q domain.Quote) string {
	return wordwrap.String(strings.Join(strings.Fields(q.Quote), " "), WrapWidth) + "\n\t- " + q.Author
}
