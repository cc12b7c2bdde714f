package quote

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time {
	return f.now
}

type fakeStore struct {
	quotes []domain.Quote
	daily  []domain.DailyQuote
}

func (f *fakeStore) AddQuote(ctx context.Context, text, author string) (domain.Quote, error) {
	q := domain.Quote{ID: int64(len(f.quotes) + 1), Quote: text, Author: author}
	f.quotes = append(f.quotes, q)
	return q, nil
}

func (f *fakeStore) Quote(ctx context.Context, id int64) (domain.Quote, error) {
	for _, q := range f.quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Quote{}, ErrQuoteNotFound
}

func (f *fakeStore) Quotes(ctx context.Context) ([]domain.Quote, error) {
	return f.quotes, nil
}

func (f *fakeStore) LatestDaily(ctx context.Context) (domain.DailyQuote, bool, error) {
	if len(f.daily) == 0 {
		return domain.DailyQuote{}, false, nil
	}
	return f.daily[len(f.daily)-1], true, nil
}

func (f *fakeStore) AddDaily(ctx context.Context, quoteID int64, at time.Time) (domain.DailyQuote, error) {
	d := domain.DailyQuote{ID: int64(len(f.daily) + 1), QuoteID: quoteID, Timestamp: at}
	f.daily = append(f.daily, d)
	return d, nil
}

var today = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore, pick int) *Service {
	svc := NewService(store, fakeClock{now: today})
	svc.pick = func(n int) int { return pick % n }
	return svc
}

func seededStore() *fakeStore {
	return &fakeStore{quotes: []domain.Quote{
		{ID: 1, Quote: "Simplicity is prerequisite for reliability.", Author: "Edsger Dijkstra"},
		{ID: 2, Quote: "Make it work, make it right, make it fast.", Author: "Kent Beck"},
	}}
}

func TestAddValidates(t *testing.T) {
	svc := newTestService(&fakeStore{}, 0)

	if _, err := svc.Add(context.Background(), " ", "Ada"); !errors.Is(err, ErrQuoteRequired) {
		t.Fatalf("expected ErrQuoteRequired, got %v", err)
	}
	if _, err := svc.Add(context.Background(), "Hello", ""); !errors.Is(err, ErrAuthorRequired) {
		t.Fatalf("expected ErrAuthorRequired, got %v", err)
	}
	q, err := svc.Add(context.Background(), " Hello ", " Ada ")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if q.Quote != "Hello" || q.Author != "Ada" {
		t.Fatalf("expected trimmed quote, got %+v", q)
	}
}

func TestRandomRequiresQuotes(t *testing.T) {
	svc := newTestService(&fakeStore{}, 0)
	if _, err := svc.Random(context.Background()); !errors.Is(err, ErrNoQuotes) {
		t.Fatalf("expected ErrNoQuotes, got %v", err)
	}
}

func TestDailyPicksAndRecords(t *testing.T) {
	store := seededStore()
	svc := newTestService(store, 1)

	q, err := svc.Daily(context.Background())
	if err != nil {
		t.Fatalf("Daily returned error: %v", err)
	}
	if q.ID != 2 {
		t.Fatalf("expected picked quote 2, got %d", q.ID)
	}
	if len(store.daily) != 1 || store.daily[0].QuoteID != 2 {
		t.Fatalf("expected daily quote recorded, got %+v", store.daily)
	}
}

func TestDailyReusesTodaysQuote(t *testing.T) {
	store := seededStore()
	store.daily = []domain.DailyQuote{{ID: 1, QuoteID: 1, Timestamp: today.Add(-2 * time.Hour)}}
	svc := newTestService(store, 1)

	q, err := svc.Daily(context.Background())
	if err != nil {
		t.Fatalf("Daily returned error: %v", err)
	}
	if q.ID != 1 {
		t.Fatalf("expected today's quote 1, got %d", q.ID)
	}
	if len(store.daily) != 1 {
		t.Fatalf("expected no new daily quote, got %+v", store.daily)
	}
}

func TestDailyRefreshesStaleQuote(t *testing.T) {
	store := seededStore()
	store.daily = []domain.DailyQuote{{ID: 1, QuoteID: 1, Timestamp: today.AddDate(0, 0, -1)}}
	svc := newTestService(store, 1)

	if _, err := svc.Daily(context.Background()); err != nil {
		t.Fatalf("Daily returned error: %v", err)
	}
	if len(store.daily) != 2 {
		t.Fatalf("expected a new daily quote, got %+v", store.daily)
	}
}

func TestFormatWrapsAtWidth(t *testing.T) {
	q := domain.Quote{Quote: strings.Repeat("word ", 40), Author: "Anon"}

	out := Format(q)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected wrapped output, got %q", out)
	}
	for _, line := range lines[:len(lines)-1] {
		if len(line) > WrapWidth {
			t.Fatalf("line exceeds %d chars: %q", WrapWidth, line)
		}
	}
	if lines[len(lines)-1] != "\t- Anon" {
		t.Fatalf("unexpected author line %q", lines[len(lines)-1])
	}
}
