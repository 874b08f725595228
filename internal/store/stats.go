package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath            string `json:"db_path"`
	DBSizeBytes       int64  `json:"db_size_bytes"`
	CatchUpItems      int    `json:"catchup_items"`
	SBAEntries        int    `json:"sba_entries"`
	SBACompleted      int    `json:"sba_completed"`
	SBAPlaceholders   int    `json:"sba_placeholders"`
	TelegramQuestions int    `json:"telegram_questions"`
	TelegramCompleted int    `json:"telegram_completed"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM catchup_items`, &st.CatchUpItems},
		{`SELECT COUNT(*) FROM sba_entries`, &st.SBAEntries},
		{`SELECT COUNT(*) FROM sba_entries WHERE completed = 1`, &st.SBACompleted},
		{`SELECT COUNT(*) FROM sba_entries WHERE is_placeholder = 1`, &st.SBAPlaceholders},
		{`SELECT COUNT(*) FROM telegram_questions`, &st.TelegramQuestions},
		{`SELECT COUNT(*) FROM telegram_questions WHERE completed = 1`, &st.TelegramCompleted},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return st, err
		}
	}

	return st, nil
}
