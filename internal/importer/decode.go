package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rcliao/study-tracker/internal/model"
)

// Decode reads a JSON document into the loosely-typed form the validators expect.
func Decode(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

// SBAEntries returns the valid rows of an SBA report as typed entries with
// defaults applied.
func (r Report) SBAEntries() []model.SBAEntry {
	var out []model.SBAEntry
	for _, row := range r.validRows(KindSBA) {
		out = append(out, model.SBAEntry{
			Date:          row["date"].(string),
			Name:          row["sba_name"].(string),
			Completed:     boolField(row, "completed"),
			IsPlaceholder: boolField(row, "is_placeholder"),
		})
	}
	return out
}

// TelegramQuestions returns the valid rows of a Telegram report as typed
// questions with defaults applied.
func (r Report) TelegramQuestions() []model.TelegramQuestion {
	var out []model.TelegramQuestion
	for _, row := range r.validRows(KindTelegram) {
		q := model.TelegramQuestion{
			Date:          row["date"].(string),
			QuestionText:  row["question_text"].(string),
			Completed:     boolField(row, "completed"),
			IsPlaceholder: boolField(row, "is_placeholder"),
		}
		if src, ok := row["source"].(string); ok {
			q.Source = &src
		}
		out = append(out, q)
	}
	return out
}

func (r Report) validRows(kind Kind) []map[string]any {
	if r.Kind != kind {
		return nil
	}
	var rows []map[string]any
	for _, p := range r.Preview {
		if !p.Valid {
			continue
		}
		if obj, ok := p.Data.(map[string]any); ok {
			rows = append(rows, obj)
		}
	}
	return rows
}

func boolField(row map[string]any, name string) bool {
	b, _ := row[name].(bool)
	return b
}
