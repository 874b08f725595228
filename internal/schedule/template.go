// Package schedule provides the read-only study schedule template.
package schedule

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/study-tracker/internal/model"
)

//go:embed default_template.yaml
var defaultTemplateYAML []byte

// DefaultDayType applies to any date the template does not list.
const DefaultDayType = model.DayOff

// Template maps ISO dates to their schedule entries. It is never mutated after load.
type Template struct {
	days map[string]model.DayScheduleEntry
}

type templateFile struct {
	Days map[string]model.DayScheduleEntry `yaml:"days"`
}

// NewTemplate builds a template from entries keyed by their Date field.
func NewTemplate(entries ...model.DayScheduleEntry) *Template {
	t := &Template{days: make(map[string]model.DayScheduleEntry, len(entries))}
	for _, e := range entries {
		t.days[e.Date] = e
	}
	return t
}

// DefaultTemplate returns the bundled template.
func DefaultTemplate() (*Template, error) {
	return ParseTemplate(defaultTemplateYAML)
}

// LoadTemplate reads a YAML template from path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	t, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return t, nil
}

// ParseTemplate decodes and validates a YAML template document.
func ParseTemplate(data []byte) (*Template, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	keys := make([]string, 0, len(f.Days))
	for k := range f.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs criterio.FieldErrorsBuilder
	t := &Template{days: make(map[string]model.DayScheduleEntry, len(f.Days))}
	for _, k := range keys {
		field := fmt.Sprintf("days[%s]", k)
		d, err := model.ParseDate(k)
		if err != nil {
			errs = errs.Append(field, fmt.Errorf("date must be in YYYY-MM-DD format"))
			continue
		}
		e := f.Days[k]
		if !e.DayType.Valid() {
			errs = errs.Append(field+".type", fmt.Errorf("invalid day type %q", e.DayType))
			continue
		}
		e.Date = model.FormatDate(d)
		t.days[e.Date] = e
	}
	if err := errs.ToError(); err != nil {
		return nil, err
	}

	return t, nil
}

// Lookup returns the template entry for date, if one exists.
func (t *Template) Lookup(date time.Time) (model.DayScheduleEntry, bool) {
	e, ok := t.days[model.FormatDate(date)]
	return e, ok
}

// Entry returns the entry for date, or an empty off day when the template has none.
func (t *Template) Entry(date time.Time) model.DayScheduleEntry {
	if e, ok := t.Lookup(date); ok {
		return e
	}
	return model.DayScheduleEntry{
		Date:    model.FormatDate(date),
		Topics:  []string{},
		DayType: DefaultDayType,
	}
}

// DayType returns the day type for date.
func (t *Template) DayType(date time.Time) model.DayType {
	return t.Entry(date).DayType
}

// Range returns one entry per day from from to to inclusive.
func (t *Template) Range(from, to time.Time) []model.DayScheduleEntry {
	var out []model.DayScheduleEntry
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, t.Entry(d))
	}
	return out
}

// Len returns the number of dated entries in the template.
func (t *Template) Len() int {
	return len(t.days)
}
