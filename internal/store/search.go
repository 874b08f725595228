package store

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/study-tracker/internal/model"
)

// SearchTelegram finds questions whose text matches query. It uses the FTS5
// index and falls back to a substring match when query is not valid FTS syntax.
func (s *SQLiteStore) SearchTelegram(ctx context.Context, p SearchParams) ([]model.TelegramQuestion, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	query := strings.TrimSpace(p.Query)
	if query == "" {
		return []model.TelegramQuestion{}, nil
	}

	results, err := s.queryTelegram(ctx,
		`SELECT t.id, t.date, t.question_text, t.source, t.completed, t.is_placeholder, t.created_at
		 FROM telegram_fts f
		 JOIN telegram_questions t ON t.rowid = f.rowid
		 WHERE telegram_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`, query, limit)
	if err == nil {
		return results, nil
	}
	log.Debug().Err(err).Str("query", query).Msg("fts query failed, falling back to LIKE")

	return s.queryTelegram(ctx,
		`SELECT `+telegramColumns+`
		 FROM telegram_questions
		 WHERE question_text LIKE ?
		 ORDER BY date, created_at
		 LIMIT ?`, "%"+query+"%", limit)
}

func (s *SQLiteStore) queryTelegram(ctx context.Context, query string, args ...interface{}) ([]model.TelegramQuestion, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []model.TelegramQuestion{}
	for rows.Next() {
		q, err := scanTelegram(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, q)
	}
	return results, rows.Err()
}
