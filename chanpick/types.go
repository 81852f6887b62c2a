package chanpick

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is one candidate loaded from the results table.
type Row struct {
	Key   string  `json:"key"`
	ID    float64 `json:"id"`
	Score float64 `json:"score"`
}

// Table holds the rows that survived numeric coercion.
type Table struct {
	Rows    []Row
	Dropped int
}

// Len returns the number of usable rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Key is the configuration key: the ordered channel identifiers of the group under evaluation.
type Key []float64

// String returns the hyphen-joined form used in the table's group-key column.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = FormatID(v)
	}
	return strings.Join(parts, "-")
}

// Contains reports whether id is part of the key.
func (k Key) Contains(id float64) bool {
	for _, v := range k {
		if v == id {
			return true
		}
	}
	return false
}

// MarshalJSON stores the key as a plain array.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64(k))
}

// UnmarshalJSON accepts either an array of numbers or the hyphen-joined string form.
func (k *Key) UnmarshalJSON(data []byte) error {
	var list []float64
	if err := json.Unmarshal(data, &list); err == nil {
		*k = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("key must be an array of numbers or a string: %w", err)
	}
	parsed, err := ParseKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Selection is the chosen candidate.
type Selection struct {
	ID    float64 `json:"id"`
	Score float64 `json:"score"`
}

// Report describes one selection pass: row counts at each filtering stage and the result.
type Report struct {
	Key       Key        `json:"key"`
	Total     int        `json:"total"`
	Matching  int        `json:"matching"`
	Eligible  int        `json:"eligible"`
	Selection *Selection `json:"selection,omitempty"`
}

// Found reports whether a candidate was selected.
func (r Report) Found() bool {
	return r.Selection != nil
}

// Snapshot is the per-iteration state used by the cumulative chart.
type Snapshot struct {
	Y          float64   `json:"y"`
	Exclusions []float64 `json:"exclusions"`
	Selected   *float64  `json:"selected,omitempty"`
}

// Iteration is the outcome of one session step.
type Iteration struct {
	Number     int       `json:"number"`
	Report     Report    `json:"report"`
	Exclusions []float64 `json:"exclusions"`
	Snapshot   Snapshot  `json:"snapshot"`
}

// FormatID renders an identifier in its shortest decimal form (1530, not 1530.0).
func FormatID(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatIDs renders a list of identifiers as "[a, b, c]".
func FormatIDs(ids []float64) string {
	parts := make([]string, len(ids))
	for i, v := range ids {
		parts[i] = FormatID(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func cloneIDs(ids []float64) []float64 {
	if ids == nil {
		return []float64{}
	}
	out := make([]float64, len(ids))
	copy(out, ids)
	return out
}
