package quote

import (
	"context"
	"time"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// Store persists quotes. Quote returns ErrQuoteNotFound for unknown ids.
type Store interface {
	AddQuote(ctx context.Context, text, author string) (domain.Quote, error)
	Quote(ctx context.Context, id int64) (domain.Quote, error)
	Quotes(ctx context.Context) ([]domain.Quote, error)
	LatestDaily(ctx context.Context) (domain.DailyQuote, bool, error)
	AddDaily(ctx context.Context, quoteID int64, at time.Time) (domain.DailyQuote, error)
}

type Clock interface {
	Now() time.Time
}
