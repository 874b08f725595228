// Package model defines the core study-tracker data types.
package model

import "time"

// DateLayout is the ISO calendar date format used for every stored date.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats t as an ISO YYYY-MM-DD date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CatchUpItem is one study task deferred from its original date.
type CatchUpItem struct {
	ID            string    `json:"id"`
	OriginalDate  string    `json:"original_date"`
	OriginalTopic string    `json:"original_topic"`
	NewDate       string    `json:"new_date"`
	Time          string    `json:"time,omitempty"`
	Items         []string  `json:"items,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SBAEntry is a Single Best Answer test tracked on a date.
type SBAEntry struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Name          string    `json:"sba_name"`
	Completed     bool      `json:"completed"`
	IsPlaceholder bool      `json:"is_placeholder"`
	CreatedAt     time.Time `json:"created_at"`
}

// TelegramQuestion is a practice question collected from a Telegram channel.
type TelegramQuestion struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	QuestionText  string    `json:"question_text"`
	Source        *string   `json:"source"`
	Completed     bool      `json:"completed"`
	IsPlaceholder bool      `json:"is_placeholder"`
	CreatedAt     time.Time `json:"created_at"`
}
