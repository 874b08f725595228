// Package store provides the study-tracker storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/study-tracker/internal/model"
)

// ErrNotFound is returned when a mutation targets a row that does not exist.
var ErrNotFound = errors.New("record not found")

// ListParams holds filters for listing SBA entries or Telegram questions.
type ListParams struct {
	From        string // inclusive ISO date, empty means unbounded
	To          string // inclusive ISO date, empty means unbounded
	Completed   *bool
	Placeholder *bool
	Limit       int
}

// SearchParams holds parameters for searching Telegram questions.
type SearchParams struct {
	Query string
	Limit int
}

// CatchUpStore persists the catch-up queue.
type CatchUpStore interface {
	// ListCatchUp returns queued items in queue order.
	ListCatchUp(ctx context.Context) ([]model.CatchUpItem, error)

	// SaveCatchUp appends an item to the end of the persisted queue.
	SaveCatchUp(ctx context.Context, item model.CatchUpItem) error

	// UpdateCatchUp overwrites the mutable fields of an existing item.
	UpdateCatchUp(ctx context.Context, item model.CatchUpItem) error

	// DeleteCatchUp removes an item by id.
	DeleteCatchUp(ctx context.Context, id string) error
}

// RecordStore persists bulk-imported study records.
type RecordStore interface {
	// InsertSBA stores entries in one transaction and returns them with ids assigned.
	InsertSBA(ctx context.Context, entries []model.SBAEntry) ([]model.SBAEntry, error)

	// InsertTelegram stores questions in one transaction and returns them with ids assigned.
	InsertTelegram(ctx context.Context, questions []model.TelegramQuestion) ([]model.TelegramQuestion, error)

	ListSBA(ctx context.Context, p ListParams) ([]model.SBAEntry, error)
	ListTelegram(ctx context.Context, p ListParams) ([]model.TelegramQuestion, error)
}

// Store is the full storage interface.
type Store interface {
	CatchUpStore
	RecordStore

	// Close closes the store.
	Close() error
}
