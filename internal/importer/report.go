package importer

// ErrNotArray is the batch-level error for input that is not a JSON array.
const ErrNotArray = "JSON must be an array of objects"

// RowReport is the validation outcome for one input row.
type RowReport struct {
	RowNum      int      `json:"row_num"`
	Data        any      `json:"data"`
	Errors      []string `json:"errors"`
	Valid       bool     `json:"valid"`
	IsDuplicate bool     `json:"is_duplicate"`
}

// Summary holds aggregate counts for a batch.
type Summary struct {
	Total      int `json:"total"`
	Valid      int `json:"valid"`
	Errors     int `json:"errors"`
	Duplicates int `json:"duplicates"`
}

// Report is the full result of validating one batch.
type Report struct {
	Kind    Kind        `json:"kind"`
	Valid   bool        `json:"valid"`
	Errors  []string    `json:"errors"`
	Preview []RowReport `json:"preview"`
	Summary Summary     `json:"summary"`
}
