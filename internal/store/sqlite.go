package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/rcliao/study-tracker/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("store opened")
	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS catchup_items (
		id             TEXT PRIMARY KEY,
		seq            INTEGER NOT NULL,
		original_date  TEXT NOT NULL,
		original_topic TEXT NOT NULL,
		new_date       TEXT NOT NULL,
		time           TEXT,
		items          TEXT,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_catchup_seq ON catchup_items(seq);

	CREATE TABLE IF NOT EXISTS sba_entries (
		id             TEXT PRIMARY KEY,
		date           TEXT NOT NULL,
		sba_name       TEXT NOT NULL,
		completed      INTEGER NOT NULL DEFAULT 0,
		is_placeholder INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sba_date ON sba_entries(date);

	CREATE TABLE IF NOT EXISTS telegram_questions (
		id             TEXT PRIMARY KEY,
		date           TEXT NOT NULL,
		question_text  TEXT NOT NULL,
		source         TEXT,
		completed      INTEGER NOT NULL DEFAULT 0,
		is_placeholder INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_telegram_date ON telegram_questions(date);

	CREATE VIRTUAL TABLE IF NOT EXISTS telegram_fts USING fts5(
		question_text,
		content=telegram_questions,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers keep telegram_fts in sync with telegram_questions
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS telegram_ai AFTER INSERT ON telegram_questions BEGIN
			INSERT INTO telegram_fts(rowid, question_text) VALUES (new.rowid, new.question_text);
		END`,
		`CREATE TRIGGER IF NOT EXISTS telegram_ad AFTER DELETE ON telegram_questions BEGIN
			INSERT INTO telegram_fts(telegram_fts, rowid, question_text) VALUES('delete', old.rowid, old.question_text);
		END`,
		`CREATE TRIGGER IF NOT EXISTS telegram_au AFTER UPDATE OF question_text ON telegram_questions BEGIN
			INSERT INTO telegram_fts(telegram_fts, rowid, question_text) VALUES('delete', old.rowid, old.question_text);
			INSERT INTO telegram_fts(rowid, question_text) VALUES (new.rowid, new.question_text);
		END`,
	}
	for _, t := range triggers {
		if _, err := s.db.Exec(t); err != nil {
			return fmt.Errorf("create trigger: %w", err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCatchUp(row scanner) (model.CatchUpItem, error) {
	var it model.CatchUpItem
	var timeLabel, items sql.NullString
	var createdAt string

	err := row.Scan(&it.ID, &it.OriginalDate, &it.OriginalTopic, &it.NewDate, &timeLabel, &items, &createdAt)
	if err != nil {
		return it, err
	}

	it.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if timeLabel.Valid {
		it.Time = timeLabel.String
	}
	if items.Valid {
		json.Unmarshal([]byte(items.String), &it.Items)
	}
	return it, nil
}

func scanSBA(row scanner) (model.SBAEntry, error) {
	var e model.SBAEntry
	var createdAt string

	err := row.Scan(&e.ID, &e.Date, &e.Name, &e.Completed, &e.IsPlaceholder, &createdAt)
	if err != nil {
		return e, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return e, nil
}

func scanTelegram(row scanner) (model.TelegramQuestion, error) {
	var q model.TelegramQuestion
	var source sql.NullString
	var createdAt string

	err := row.Scan(&q.ID, &q.Date, &q.QuestionText, &source, &q.Completed, &q.IsPlaceholder, &createdAt)
	if err != nil {
		return q, err
	}
	q.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if source.Valid {
		src := source.String
		q.Source = &src
	}
	return q, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func checkAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
