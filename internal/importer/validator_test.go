package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return v
}

func TestValidate_NotAnArray(t *testing.T) {
	inputs := []any{
		"not an array",
		map[string]any{"date": "2025-11-01"},
		float64(3),
		nil,
	}

	for _, in := range inputs {
		for _, validate := range []func(any) Report{ValidateSBA, ValidateTelegram} {
			r := validate(in)
			assert.False(t, r.Valid)
			assert.Equal(t, []string{ErrNotArray}, r.Errors)
			assert.Empty(t, r.Preview)
			assert.Equal(t, Summary{}, r.Summary)
		}
	}
}

func TestValidate_EmptyBatch(t *testing.T) {
	r := ValidateSBA(decode(t, `[]`))

	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Preview)
	assert.Equal(t, Summary{}, r.Summary)
}

func TestValidateSBA_Duplicates(t *testing.T) {
	r := ValidateSBA(decode(t, `[
		{"date": "2025-11-01", "sba_name": "Anatomy Day 1"},
		{"date": "2025-11-01", "sba_name": "Anatomy Day 1"}
	]`))

	require.Len(t, r.Preview, 2)
	assert.Equal(t, 1, r.Summary.Duplicates)
	assert.True(t, r.Preview[0].IsDuplicate)
	assert.True(t, r.Preview[1].IsDuplicate)
	assert.Empty(t, r.Preview[0].Errors)
	assert.True(t, r.Preview[0].Valid)
	assert.Equal(t, []string{"duplicate: same date+name found at row 1"}, r.Preview[1].Errors)
	assert.False(t, r.Preview[1].Valid)
	assert.False(t, r.Valid)
	assert.Equal(t, Summary{Total: 2, Valid: 1, Errors: 1, Duplicates: 1}, r.Summary)
}

func TestValidateSBA_RepeatsReferenceFirstRow(t *testing.T) {
	r := ValidateSBA(decode(t, `[
		{"date": "2025-11-01", "sba_name": "A"},
		{"date": "2025-11-02", "sba_name": "A"},
		{"date": "2025-11-01", "sba_name": "A"},
		{"date": "2025-11-01", "sba_name": "A"}
	]`))

	assert.Equal(t, 2, r.Summary.Duplicates)
	assert.False(t, r.Preview[1].IsDuplicate)
	assert.Equal(t, []string{"duplicate: same date+name found at row 1"}, r.Preview[2].Errors)
	assert.Equal(t, []string{"duplicate: same date+name found at row 1"}, r.Preview[3].Errors)
	for _, i := range []int{0, 2, 3} {
		assert.True(t, r.Preview[i].IsDuplicate, "row %d", i+1)
	}
}

func TestValidateSBA_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want []string
	}{
		{
			name: "valid with optional flags",
			row:  `{"date": "2025-11-01", "sba_name": "X", "completed": true, "is_placeholder": false}`,
			want: []string{},
		},
		{
			name: "invalid month",
			row:  `{"date": "2025-13-01", "sba_name": "X"}`,
			want: []string{"date must be in YYYY-MM-DD format"},
		},
		{
			name: "impossible day",
			row:  `{"date": "2025-02-30", "sba_name": "X"}`,
			want: []string{"date must be in YYYY-MM-DD format"},
		},
		{
			name: "wrong layout",
			row:  `{"date": "01/11/2025", "sba_name": "X"}`,
			want: []string{"date must be in YYYY-MM-DD format"},
		},
		{
			name: "non-string date",
			row:  `{"date": 20251101, "sba_name": "X"}`,
			want: []string{"date must be in YYYY-MM-DD format"},
		},
		{
			name: "missing date reports only required",
			row:  `{"sba_name": "X"}`,
			want: []string{"date is required"},
		},
		{
			name: "empty date counts as missing",
			row:  `{"date": "", "sba_name": "X"}`,
			want: []string{"date is required"},
		},
		{
			name: "missing name",
			row:  `{"date": "2025-11-01"}`,
			want: []string{"sba_name is required"},
		},
		{
			name: "zero name counts as missing",
			row:  `{"date": "2025-11-01", "sba_name": 0}`,
			want: []string{"sba_name is required"},
		},
		{
			name: "non-string name",
			row:  `{"date": "2025-11-01", "sba_name": 42}`,
			want: []string{"sba_name must be a string"},
		},
		{
			name: "non-boolean flags",
			row:  `{"date": "2025-11-01", "sba_name": "X", "completed": "yes", "is_placeholder": null}`,
			want: []string{"completed must be true or false", "is_placeholder must be true or false"},
		},
		{
			name: "row that is not an object",
			row:  `"just a string"`,
			want: []string{"date is required", "sba_name is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateSBA(decode(t, "["+tt.row+"]"))
			require.Len(t, r.Preview, 1)

			row := r.Preview[0]
			assert.Equal(t, 1, row.RowNum)
			assert.Equal(t, tt.want, row.Errors)
			assert.Equal(t, len(tt.want) == 0, row.Valid)
			assert.Equal(t, len(tt.want) == 0, r.Valid)
			if len(tt.want) > 0 {
				assert.Equal(t, 1, r.Summary.Errors)
			}
		})
	}
}

func TestValidateTelegram_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want []string
	}{
		{
			name: "valid without source",
			row:  `{"date": "2025-11-01", "question_text": "Most common cause of SAH?"}`,
			want: []string{},
		},
		{
			name: "null source",
			row:  `{"date": "2025-11-01", "question_text": "Q", "source": null}`,
			want: []string{},
		},
		{
			name: "numeric source",
			row:  `{"date": "2025-11-01", "question_text": "Q", "source": 7}`,
			want: []string{"source must be a string or null"},
		},
		{
			name: "missing question",
			row:  `{"date": "2025-11-01"}`,
			want: []string{"question_text is required"},
		},
		{
			name: "non-string question",
			row:  `{"date": "2025-11-01", "question_text": ["Q"]}`,
			want: []string{"question_text must be a string"},
		},
		{
			name: "everything wrong",
			row:  `{"date": "2025-1-1", "question_text": true, "source": false, "completed": 1}`,
			want: []string{
				"date must be in YYYY-MM-DD format",
				"question_text must be a string",
				"source must be a string or null",
				"completed must be true or false",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateTelegram(decode(t, "["+tt.row+"]"))
			require.Len(t, r.Preview, 1)
			assert.Equal(t, tt.want, r.Preview[0].Errors)
			assert.Equal(t, len(tt.want) == 0, r.Valid)
		})
	}
}

func TestValidateTelegram_SourceIsPartOfKey(t *testing.T) {
	r := ValidateTelegram(decode(t, `[
		{"date": "2025-11-01", "question_text": "Q1", "source": "channel-a"},
		{"date": "2025-11-01", "question_text": "Q1", "source": "channel-b"}
	]`))

	assert.True(t, r.Valid)
	assert.Zero(t, r.Summary.Duplicates)
	assert.False(t, r.Preview[0].IsDuplicate)
	assert.False(t, r.Preview[1].IsDuplicate)
}

func TestValidateTelegram_MissingAndNullSourceCollide(t *testing.T) {
	r := ValidateTelegram(decode(t, `[
		{"date": "2025-11-01", "question_text": "Q1"},
		{"date": "2025-11-01", "question_text": "Q1", "source": null}
	]`))

	assert.False(t, r.Valid)
	assert.Equal(t, 1, r.Summary.Duplicates)
	assert.Equal(t, []string{"duplicate: same date+source+question found at row 1"}, r.Preview[1].Errors)
}

func TestValidate_RowsWithoutKeyFieldsAreNotDuplicates(t *testing.T) {
	r := ValidateSBA(decode(t, `[{"sba_name": "X"}, {"sba_name": "X"}]`))

	assert.Zero(t, r.Summary.Duplicates)
	assert.Equal(t, []string{"date is required"}, r.Preview[1].Errors)
	assert.Equal(t, Summary{Total: 2, Errors: 2}, r.Summary)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	in := decode(t, `[
		{"date": "2025-11-01", "sba_name": "A"},
		{"date": "2025-11-01", "sba_name": "A", "completed": "no"}
	]`)
	before := decode(t, `[
		{"date": "2025-11-01", "sba_name": "A"},
		{"date": "2025-11-01", "sba_name": "A", "completed": "no"}
	]`)

	ValidateSBA(in)

	assert.Equal(t, before, in)
}

func TestValidate_Kind(t *testing.T) {
	r, err := Validate(KindTelegram, decode(t, `[{"date": "2025-11-01", "question_text": "Q"}]`))
	require.NoError(t, err)
	assert.Equal(t, KindTelegram, r.Kind)
	assert.True(t, r.Valid)

	_, err = Validate(Kind("mcq"), nil)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" SBA ")
	require.NoError(t, err)
	assert.Equal(t, KindSBA, k)

	_, err = ParseKind("flashcards")
	assert.Error(t, err)
}
