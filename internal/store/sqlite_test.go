package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/study-tracker/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func boolPtr(b bool) *bool { return &b }

func TestCatchUpRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item := model.CatchUpItem{
		ID:            "01A",
		OriginalDate:  "2025-11-03",
		OriginalTopic: "Cardiology SBA",
		NewDate:       "2025-11-08",
		Time:          "2h",
		Items:         []string{"Q1-20", "Q21-40"},
		CreatedAt:     time.Date(2025, 11, 3, 20, 0, 0, 0, time.UTC),
	}
	if err := s.SaveCatchUp(ctx, item); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.ListCatchUp(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].NewDate != "2025-11-08" || got[0].Time != "2h" {
		t.Errorf("unexpected item: %+v", got[0])
	}
	if len(got[0].Items) != 2 || got[0].Items[1] != "Q21-40" {
		t.Errorf("expected items to round-trip, got %v", got[0].Items)
	}
	if !got[0].CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", item.CreatedAt, got[0].CreatedAt)
	}
}

func TestCatchUpKeepsQueueOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"c", "a", "b"} {
		s.SaveCatchUp(ctx, model.CatchUpItem{ID: id, OriginalDate: "2025-11-03", NewDate: "2025-11-08"})
	}
	s.DeleteCatchUp(ctx, "a")
	s.SaveCatchUp(ctx, model.CatchUpItem{ID: "d", OriginalDate: "2025-11-03", NewDate: "2025-11-08"})

	got, _ := s.ListCatchUp(ctx)
	var ids []string
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	want := []string{"c", "b", "d"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestUpdateCatchUp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item := model.CatchUpItem{ID: "x", OriginalDate: "2025-11-03", OriginalTopic: "Renal", NewDate: "2025-11-08"}
	s.SaveCatchUp(ctx, item)

	item.NewDate = "2025-11-09"
	item.Items = []string{"extra"}
	if err := s.UpdateCatchUp(ctx, item); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.ListCatchUp(ctx)
	if got[0].NewDate != "2025-11-09" {
		t.Errorf("expected new date 2025-11-09, got %s", got[0].NewDate)
	}
	if len(got[0].Items) != 1 {
		t.Errorf("expected 1 sub-item, got %v", got[0].Items)
	}
}

func TestCatchUpMissingIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.UpdateCatchUp(ctx, model.CatchUpItem{ID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
	err = s.DeleteCatchUp(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestInsertAndListSBA(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	stored, err := s.InsertSBA(ctx, []model.SBAEntry{
		{Date: "2025-11-02", Name: "Cardiology 1"},
		{Date: "2025-11-01", Name: "Anatomy 1", Completed: true},
		{Date: "2025-11-05", Name: "TBC", IsPlaceholder: true},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(stored) != 3 || stored[0].ID == "" {
		t.Fatalf("expected 3 stored entries with ids, got %+v", stored)
	}

	all, _ := s.ListSBA(ctx, ListParams{})
	if len(all) != 3 {
		t.Fatalf("expected 3, got %d", len(all))
	}
	if all[0].Name != "Anatomy 1" || !all[0].Completed {
		t.Errorf("expected date order with completion flag, got %+v", all[0])
	}

	ranged, _ := s.ListSBA(ctx, ListParams{From: "2025-11-02", To: "2025-11-04"})
	if len(ranged) != 1 || ranged[0].Name != "Cardiology 1" {
		t.Errorf("expected only Cardiology 1 in range, got %+v", ranged)
	}

	pending, _ := s.ListSBA(ctx, ListParams{Completed: boolPtr(false), Placeholder: boolPtr(false)})
	if len(pending) != 1 {
		t.Errorf("expected 1 pending real entry, got %d", len(pending))
	}

	limited, _ := s.ListSBA(ctx, ListParams{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("expected limit 2, got %d", len(limited))
	}
}

func TestInsertTelegramSource(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	src := "channel-a"
	_, err := s.InsertTelegram(ctx, []model.TelegramQuestion{
		{Date: "2025-11-01", QuestionText: "First-line for anaphylaxis?", Source: &src},
		{Date: "2025-11-01", QuestionText: "Commonest cause of SAH?"},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, _ := s.ListTelegram(ctx, ListParams{})
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	var withSource, withoutSource int
	for _, q := range got {
		if q.Source != nil && *q.Source == "channel-a" {
			withSource++
		}
		if q.Source == nil {
			withoutSource++
		}
	}
	if withSource != 1 || withoutSource != 1 {
		t.Errorf("expected one sourced and one null-source question, got %+v", got)
	}
}

func TestSetCompleted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	stored, _ := s.InsertSBA(ctx, []model.SBAEntry{{Date: "2025-11-01", Name: "A"}})
	if err := s.SetSBACompleted(ctx, stored[0].ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	done, _ := s.ListSBA(ctx, ListParams{Completed: boolPtr(true)})
	if len(done) != 1 {
		t.Errorf("expected 1 completed entry, got %d", len(done))
	}

	if err := s.SetTelegramCompleted(ctx, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "stats.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.InsertSBA(ctx, []model.SBAEntry{{Date: "2025-11-01", Name: "A", Completed: true}, {Date: "2025-11-02", Name: "B"}})
	s.InsertTelegram(ctx, []model.TelegramQuestion{{Date: "2025-11-01", QuestionText: "Q"}})
	s.SaveCatchUp(ctx, model.CatchUpItem{ID: "1", OriginalDate: "2025-11-01", NewDate: "2025-11-02"})

	st, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.SBAEntries != 2 || st.SBACompleted != 1 || st.TelegramQuestions != 1 || st.CatchUpItems != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.DBPath != dbPath {
		t.Errorf("expected db path %s, got %s", dbPath, st.DBPath)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
