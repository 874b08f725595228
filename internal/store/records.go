package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/study-tracker/internal/model"
)

const (
	sbaColumns      = `id, date, sba_name, completed, is_placeholder, created_at`
	telegramColumns = `id, date, question_text, source, completed, is_placeholder, created_at`
)

// InsertSBA stores entries in a single transaction. Either every entry is
// stored or none is.
func (s *SQLiteStore) InsertSBA(ctx context.Context, entries []model.SBAEntry) ([]model.SBAEntry, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stored := make([]model.SBAEntry, 0, len(entries))
	for _, e := range entries {
		e.ID = s.newID()
		e.CreatedAt = now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sba_entries (`+sbaColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Date, e.Name, e.Completed, e.IsPlaceholder, now.Format(time.RFC3339Nano))
		if err != nil {
			return nil, fmt.Errorf("insert sba entry %q: %w", e.Name, err)
		}
		stored = append(stored, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(stored)).Msg("sba entries inserted")
	return stored, nil
}

// InsertTelegram stores questions in a single transaction. Either every
// question is stored or none is.
func (s *SQLiteStore) InsertTelegram(ctx context.Context, questions []model.TelegramQuestion) ([]model.TelegramQuestion, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stored := make([]model.TelegramQuestion, 0, len(questions))
	for _, q := range questions {
		q.ID = s.newID()
		q.CreatedAt = now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO telegram_questions (`+telegramColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			q.ID, q.Date, q.QuestionText, q.Source, q.Completed, q.IsPlaceholder, now.Format(time.RFC3339Nano))
		if err != nil {
			return nil, fmt.Errorf("insert telegram question: %w", err)
		}
		stored = append(stored, q)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(stored)).Msg("telegram questions inserted")
	return stored, nil
}

// ListSBA lists SBA entries ordered by date.
func (s *SQLiteStore) ListSBA(ctx context.Context, p ListParams) ([]model.SBAEntry, error) {
	where, args := p.where()
	query := fmt.Sprintf(`SELECT %s FROM sba_entries WHERE %s ORDER BY date, created_at, id LIMIT ?`,
		sbaColumns, where)
	args = append(args, p.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// ListTelegram lists Telegram questions ordered by date.
func (s *SQLiteStore) ListTelegram(ctx context.Context, p ListParams) ([]model.TelegramQuestion, error) {
	where, args := p.where()
	query := fmt.Sprintf(`SELECT %s FROM telegram_questions WHERE %s ORDER BY date, created_at, id LIMIT ?`,
		telegramColumns, where)
	args = append(args, p.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.TelegramQuestion{}
	for rows.Next() {
		q, err := scanTelegram(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// SetSBACompleted marks an SBA entry done or not done.
func (s *SQLiteStore) SetSBACompleted(ctx context.Context, id string, done bool) error {
	return s.setCompleted(ctx, "sba_entries", "sba entry", id, done)
}

// SetTelegramCompleted marks a Telegram question done or not done.
func (s *SQLiteStore) SetTelegramCompleted(ctx context.Context, id string, done bool) error {
	return s.setCompleted(ctx, "telegram_questions", "telegram question", id, done)
}

func (s *SQLiteStore) setCompleted(ctx context.Context, table, what, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE `+table+` SET completed = ? WHERE id = ?`, done, id)
	if err != nil {
		return err
	}
	if err := checkAffected(res, what, id); err != nil {
		return err
	}
	log.Debug().Str("table", table).Str("id", id).Bool("completed", done).Msg("completion updated")
	return nil
}

func (p ListParams) where() (string, []interface{}) {
	where := []string{"1 = 1"}
	var args []interface{}

	if p.From != "" {
		where = append(where, "date >= ?")
		args = append(args, p.From)
	}
	if p.To != "" {
		where = append(where, "date <= ?")
		args = append(args, p.To)
	}
	if p.Completed != nil {
		where = append(where, "completed = ?")
		args = append(args, *p.Completed)
	}
	if p.Placeholder != nil {
		where = append(where, "is_placeholder = ?")
		args = append(args, *p.Placeholder)
	}
	return strings.Join(where, " AND "), args
}

func (p ListParams) limit() int {
	if p.Limit <= 0 {
		return 100
	}
	return p.Limit
}
