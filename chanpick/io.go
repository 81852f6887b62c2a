package chanpick

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TableOptions allows callers to choose which columns map to row fields.
// A value may be a header name or a 1-based "#n" column index.
type TableOptions struct {
	KeyColumn   string
	IDColumn    string
	ScoreColumn string
	// Candidates drive header detection; empty fields use the built-in names.
	Candidates ColumnCandidates
}

// LoadTable reads a results table using header auto-detection.
func LoadTable(path string) (Table, error) {
	return LoadTableWithOptions(path, TableOptions{})
}

// LoadTableWithOptions reads a CSV (or .tsv) results table. Rows whose identifier or
// score cannot be coerced to a number are dropped without error.
func LoadTableWithOptions(path string, opts TableOptions) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return Table{}, errors.New("empty table")
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	cols, err := resolveTableColumns(header, opts)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	table := Table{Rows: make([]Row, 0, len(rows)-1)}
	for _, record := range rows[1:] {
		id, okID := parseNumber(cellAt(record, cols.id))
		score, okScore := parseNumber(cellAt(record, cols.score))
		// identifiers end up in the JSON exclusion list, which cannot hold ±Inf
		if !okID || !okScore || math.IsInf(id, 0) {
			table.Dropped++
			continue
		}
		table.Rows = append(table.Rows, Row{
			Key:   NormalizeKey(cleanCell(cellAt(record, cols.key))),
			ID:    id,
			Score: score,
		})
	}
	return table, nil
}

// parseNumber coerces a cell the way a lenient numeric conversion would:
// anything unparsable or NaN is rejected.
func parseNumber(cell string) (float64, bool) {
	cell = cleanCell(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func cellAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

type tableColumns struct {
	key   int
	id    int
	score int
}

func resolveTableColumns(header []string, opts TableOptions) (tableColumns, error) {
	candidates := opts.Candidates.withDefaults()
	var (
		cols tableColumns
		err  error
	)
	if cols.key, err = pickColumn(header, opts.KeyColumn, candidates.Key, "group key"); err != nil {
		return cols, err
	}
	if cols.id, err = pickColumn(header, opts.IDColumn, candidates.ID, "identifier"); err != nil {
		return cols, err
	}
	if cols.score, err = pickColumn(header, opts.ScoreColumn, candidates.Score, "score"); err != nil {
		return cols, err
	}
	return cols, nil
}

func pickColumn(header []string, explicit string, candidates []string, role string) (int, error) {
	if strings.TrimSpace(explicit) != "" {
		return matchExplicitColumn(header, explicit)
	}
	if idx := findColumn(header, candidates); idx >= 0 {
		return idx, nil
	}
	return -1, fmt.Errorf("no %s column found (tried %s)", role, strings.Join(candidates, ", "))
}

func findColumn(header []string, candidates []string) int {
	// Exact matches first, then case-insensitive.
	for _, cand := range candidates {
		for i, col := range header {
			if col == cand {
				return i
			}
		}
	}
	for _, cand := range candidates {
		for i, col := range header {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

func matchExplicitColumn(header []string, explicit string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	for i, col := range header {
		if col == trimmed {
			return i, nil
		}
	}
	for i, col := range header {
		if strings.EqualFold(col, trimmed) {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("column index %s is out of range", trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("column %q not found", explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	if trimmed == "" {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}
