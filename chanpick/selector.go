package chanpick

import (
	"fmt"
	"strconv"
	"strings"
)

// Select filters the table to rows of the given key, drops rows whose identifier is in
// the key or in exclusions, and returns the remaining row with the smallest score.
// Among equal scores the first row in table order wins.
func Select(table Table, key Key, exclusions []float64) Report {
	report := Report{Key: key, Total: table.Len()}
	keyStr := key.String()
	excluded := make(map[float64]struct{}, len(key)+len(exclusions))
	for _, id := range key {
		excluded[id] = struct{}{}
	}
	for _, id := range exclusions {
		excluded[id] = struct{}{}
	}
	var best *Row
	for i := range table.Rows {
		row := &table.Rows[i]
		if row.Key != keyStr {
			continue
		}
		report.Matching++
		if _, skip := excluded[row.ID]; skip {
			continue
		}
		report.Eligible++
		if best == nil || row.Score < best.Score {
			best = row
		}
	}
	if best != nil {
		report.Selection = &Selection{ID: best.ID, Score: best.Score}
	}
	return report
}

// ParseKey parses a configuration key written as "1530-1537-1538", "1530,1537,1538"
// or whitespace separated values.
func ParseKey(s string) (Key, error) {
	fields := strings.FieldsFunc(NormalizeKeyInput(s), func(r rune) bool {
		return r == '-' || r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty key %q", s)
	}
	key := make(Key, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid key value %q in %q", f, s)
		}
		key = append(key, v)
	}
	return key, nil
}

// NormalizeKeyInput applies the group-key normalization but keeps separators
// other than hyphens intact.
func NormalizeKeyInput(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = NormalizeKey(p)
	}
	return strings.Join(parts, " ")
}
