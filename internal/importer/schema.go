// Package importer validates bulk uploads of SBA entries and Telegram
// questions before they are written to the store.
package importer

import (
	"fmt"
	"strings"
)

// Kind selects the record schema for a bulk upload.
type Kind string

const (
	KindSBA      Kind = "sba"
	KindTelegram Kind = "telegram"
)

// ParseKind maps a user-supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSBA:
		return KindSBA, nil
	case KindTelegram:
		return KindTelegram, nil
	}
	return "", fmt.Errorf("unknown record kind %q (valid: sba, telegram)", s)
}

type fieldType int

const (
	fieldBool fieldType = iota
	fieldStringOrNull
)

type optionalField struct {
	name string
	typ  fieldType
}

// Schema describes one record kind: its required text field, the optional
// typed fields, and how rows are keyed for duplicate detection.
type Schema struct {
	Kind      Kind
	TextField string
	optional  []optionalField
	keyFields []string
	dupLabel  string
}

var sbaSchema = &Schema{
	Kind:      KindSBA,
	TextField: "sba_name",
	optional: []optionalField{
		{name: "completed", typ: fieldBool},
		{name: "is_placeholder", typ: fieldBool},
	},
	keyFields: []string{"date", "sba_name"},
	dupLabel:  "date+name",
}

var telegramSchema = &Schema{
	Kind:      KindTelegram,
	TextField: "question_text",
	optional: []optionalField{
		{name: "source", typ: fieldStringOrNull},
		{name: "completed", typ: fieldBool},
		{name: "is_placeholder", typ: fieldBool},
	},
	keyFields: []string{"date", "source", "question_text"},
	dupLabel:  "date+source+question",
}

// SchemaFor returns the schema for kind.
func SchemaFor(kind Kind) (*Schema, error) {
	switch kind {
	case KindSBA:
		return sbaSchema, nil
	case KindTelegram:
		return telegramSchema, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// dedupKey joins the key fields of row. The date and text fields must both be
// truthy for a row to take part in duplicate detection; other key fields
// contribute an empty string when absent.
func (s *Schema) dedupKey(row map[string]any) (string, bool) {
	if !truthy(row["date"]) || !truthy(row[s.TextField]) {
		return "", false
	}
	parts := make([]string, len(s.keyFields))
	for i, f := range s.keyFields {
		if truthy(row[f]) {
			parts[i] = jsString(row[f])
		}
	}
	return strings.Join(parts, "|"), true
}

func (s *Schema) duplicateMessage(firstRow int) string {
	return fmt.Sprintf("duplicate: same %s found at row %d", s.dupLabel, firstRow)
}
