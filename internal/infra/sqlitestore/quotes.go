package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	quoteapp "github.com/osvaldoandrade/shellcommander/internal/app/quote"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

func (s *Store) AddQuote(ctx context.Context, text, author string) (domain.Quote, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO quotes (quote, author) VALUES (?, ?)", text, author)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Quote{}, fmt.Errorf("read quote id: %w", err)
	}
	return domain.Quote{ID: id, Quote: text, Author: author}, nil
}

func (s *Store) Quote(ctx context.Context, id int64) (domain.Quote, error) {
	var q domain.Quote
	err := s.db.QueryRowContext(ctx, "SELECT id, quote, author FROM quotes WHERE id = ?", id).Scan(&q.ID, &q.Quote, &q.Author)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Quote{}, fmt.Errorf("%w: %d", quoteapp.ErrQuoteNotFound, id)
		}
		return domain.Quote{}, fmt.Errorf("read quote: %w", err)
	}
	return q, nil
}

func (s *Store) Quotes(ctx context.Context) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, quote, author FROM quotes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var out []domain.Quote
	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.ID, &q.Quote, &q.Author); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return out, nil
}

func (s *Store) LatestDaily(ctx context.Context) (domain.DailyQuote, bool, error) {
	var d domain.DailyQuote
	var ts int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quote_id, time_stamp FROM daily_quotes ORDER BY time_stamp DESC, id DESC LIMIT 1
	`).Scan(&d.ID, &d.QuoteID, &ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DailyQuote{}, false, nil
		}
		return domain.DailyQuote{}, false, fmt.Errorf("read daily quote: %w", err)
	}
	d.Timestamp = fromUnix(ts)
	return d, true, nil
}

func (s *Store) AddDaily(ctx context.Context, quoteID int64, at time.Time) (domain.DailyQuote, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO daily_quotes (quote_id, time_stamp) VALUES (?, ?)", quoteID, toUnix(at))
	if err != nil {
		return domain.DailyQuote{}, fmt.Errorf("insert daily quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.DailyQuote{}, fmt.Errorf("read daily quote id: %w", err)
	}
	return domain.DailyQuote{ID: id, QuoteID: quoteID, Timestamp: fromUnix(toUnix(at))}, nil
}
