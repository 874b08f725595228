package importer

import "fmt"

// ValidateSBA validates a decoded batch of SBA entries.
func ValidateSBA(data any) Report {
	return validate(sbaSchema, data)
}

// ValidateTelegram validates a decoded batch of Telegram questions.
func ValidateTelegram(data any) Report {
	return validate(telegramSchema, data)
}

// Validate validates a decoded batch against the schema for kind.
func Validate(kind Kind, data any) (Report, error) {
	s, err := SchemaFor(kind)
	if err != nil {
		return Report{}, err
	}
	return validate(s, data), nil
}

// validate never mutates data and never fails: every problem is reported in
// the returned Report.
func validate(s *Schema, data any) Report {
	r := Report{
		Kind:    s.Kind,
		Errors:  []string{},
		Preview: []RowReport{},
	}

	rows, ok := data.([]any)
	if !ok {
		r.Errors = append(r.Errors, ErrNotArray)
		return r
	}

	objs := make([]map[string]any, len(rows))
	for i, row := range rows {
		obj, _ := row.(map[string]any)
		objs[i] = obj
	}

	// First pass: group rows by key so every row's duplicate state is known
	// before its report is built.
	firstSeen := make(map[string]int)
	repeatOf := make([]int, len(rows))
	flagged := make([]bool, len(rows))
	for i, obj := range objs {
		key, ok := s.dedupKey(obj)
		if !ok {
			continue
		}
		first, seen := firstSeen[key]
		if !seen {
			firstSeen[key] = i
			continue
		}
		repeatOf[i] = first + 1
		flagged[first] = true
		flagged[i] = true
	}

	// Second pass: assemble each row's report once.
	for i, obj := range objs {
		errs := s.rowErrors(obj)
		if repeatOf[i] > 0 {
			errs = append(errs, s.duplicateMessage(repeatOf[i]))
			r.Summary.Duplicates++
		}

		rr := RowReport{
			RowNum:      i + 1,
			Data:        rows[i],
			Errors:      errs,
			Valid:       len(errs) == 0,
			IsDuplicate: flagged[i],
		}
		if rr.Valid {
			r.Summary.Valid++
		} else {
			r.Summary.Errors++
		}
		r.Preview = append(r.Preview, rr)
	}

	r.Summary.Total = len(rows)
	r.Valid = r.Summary.Errors == 0

	return r
}

// rowErrors runs the field checks for one row. A nil row (not an object)
// fails every required check.
func (s *Schema) rowErrors(row map[string]any) []string {
	errs := []string{}

	date := row["date"]
	if !truthy(date) {
		errs = append(errs, "date is required")
	} else if !validDate(date) {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}

	text := row[s.TextField]
	if !truthy(text) {
		errs = append(errs, fmt.Sprintf("%s is required", s.TextField))
	} else if _, ok := text.(string); !ok {
		errs = append(errs, fmt.Sprintf("%s must be a string", s.TextField))
	}

	for _, f := range s.optional {
		v, present := row[f.name]
		if !present {
			continue
		}
		switch f.typ {
		case fieldBool:
			if _, ok := v.(bool); !ok {
				errs = append(errs, fmt.Sprintf("%s must be true or false", f.name))
			}
		case fieldStringOrNull:
			if _, ok := v.(string); !ok && v != nil {
				errs = append(errs, fmt.Sprintf("%s must be a string or null", f.name))
			}
		}
	}

	return errs
}
