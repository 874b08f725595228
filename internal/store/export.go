package store

import (
	"context"

	"github.com/rcliao/study-tracker/internal/model"
)

// ExportSBA returns every SBA entry in date order. The JSON form of the result
// is accepted by the SBA bulk importer.
func (s *SQLiteStore) ExportSBA(ctx context.Context) ([]model.SBAEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sbaColumns+` FROM sba_entries ORDER BY date, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.SBAEntry{}
	for rows.Next() {
		e, err := scanSBA(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportTelegram returns every Telegram question in date order. The JSON form
// of the result is accepted by the Telegram bulk importer.
func (s *SQLiteStore) ExportTelegram(ctx context.Context) ([]model.TelegramQuestion, error) {
	return s.queryTelegram(ctx, `SELECT `+telegramColumns+` FROM telegram_questions ORDER BY date, created_at, id`)
}
