package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	searchapp "github.com/osvaldoandrade/shellcommander/internal/app/search"
	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

func (s *Store) AddSearch(ctx context.Context, entry domain.SearchEntry) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, query, website, allintext, time_stamp) VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.Query, nullString(entry.Website), nullString(entry.AllInText), toUnix(entry.Timestamp)); err != nil {
		return fmt.Errorf("insert search: %w", err)
	}
	return nil
}

// Searches returns the history matching filter, oldest first. Text fields
// match by prefix.
func (s *Store) Searches(ctx context.Context, filter searchapp.Filter) ([]domain.SearchEntry, error) {
	where, args := filterClause(filter)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, website, allintext, time_stamp FROM searches`+where+`
		ORDER BY time_stamp, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	var out []domain.SearchEntry
	for rows.Next() {
		var entry domain.SearchEntry
		var website, allInText sql.NullString
		var ts int64
		if err := rows.Scan(&entry.ID, &entry.Query, &website, &allInText, &ts); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		entry.Website = website.String
		entry.AllInText = allInText.String
		entry.Timestamp = fromUnix(ts)
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteSearches(ctx context.Context, filter searchapp.Filter) (int64, error) {
	where, args := filterClause(filter)
	res, err := s.db.ExecContext(ctx, "DELETE FROM searches"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete searches: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted rows: %w", err)
	}
	return n, nil
}

func filterClause(filter searchapp.Filter) (string, []any) {
	var conds []string
	var args []any
	if filter.From != nil {
		conds = append(conds, "time_stamp >= ?")
		args = append(args, toUnix(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "time_stamp <= ?")
		args = append(args, toUnix(*filter.To))
	}
	prefix := func(column, value string) {
		if value == "" {
			return
		}
		conds = append(conds, column+` LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(value)+"%")
	}
	prefix("query", filter.Query)
	prefix("website", filter.Site)
	prefix("allintext", filter.AllInText)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
