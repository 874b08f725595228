package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rcliao/study-tracker/internal/model"
)

// ListCatchUp returns the persisted catch-up queue in insertion order.
func (s *SQLiteStore) ListCatchUp(ctx context.Context) ([]model.CatchUpItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_date, original_topic, new_date, time, items, created_at
		 FROM catchup_items ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.CatchUpItem{}
	for rows.Next() {
		it, err := scanCatchUp(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveCatchUp appends item to the end of the persisted queue.
func (s *SQLiteStore) SaveCatchUp(ctx context.Context, item model.CatchUpItem) error {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	itemsJSON, err := encodeItems(item.Items)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO catchup_items (id, seq, original_date, original_topic, new_date, time, items, created_at)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM catchup_items), ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OriginalDate, item.OriginalTopic, item.NewDate,
		nullable(item.Time), itemsJSON, createdAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert catch-up item: %w", err)
	}

	log.Debug().Str("id", item.ID).Str("new_date", item.NewDate).Msg("catch-up item saved")
	return nil
}

// UpdateCatchUp overwrites the mutable fields of an existing item. Queue
// position is unchanged.
func (s *SQLiteStore) UpdateCatchUp(ctx context.Context, item model.CatchUpItem) error {
	itemsJSON, err := encodeItems(item.Items)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE catchup_items SET original_topic = ?, new_date = ?, time = ?, items = ? WHERE id = ?`,
		item.OriginalTopic, item.NewDate, nullable(item.Time), itemsJSON, item.ID)
	if err != nil {
		return fmt.Errorf("update catch-up item: %w", err)
	}
	if err := checkAffected(res, "catch-up item", item.ID); err != nil {
		return err
	}

	log.Debug().Str("id", item.ID).Str("new_date", item.NewDate).Msg("catch-up item updated")
	return nil
}

// DeleteCatchUp removes the item with the given id.
func (s *SQLiteStore) DeleteCatchUp(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catchup_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete catch-up item: %w", err)
	}
	if err := checkAffected(res, "catch-up item", id); err != nil {
		return err
	}

	log.Debug().Str("id", id).Msg("catch-up item deleted")
	return nil
}

func encodeItems(items []string) (*string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	s := string(b)
	return &s, nil
}
