package chanpick

// ColumnCandidates defines possible header names for auto-detecting table columns.
type ColumnCandidates struct {
	Key   []string `json:"key" yaml:"key"`
	ID    []string `json:"id" yaml:"id"`
	Score []string `json:"score" yaml:"score"`
}

func defaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Key:   []string{"Q", "key", "group", "config"},
		ID:    []string{"gi", "channel", "wavelength", "id"},
		Score: []string{"S", "score", "metric", "interference"},
	}
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return defaultColumnCandidates()
}

// withDefaults fills empty fields from the built-in candidates.
func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := defaultColumnCandidates()
	return ColumnCandidates{
		Key:   pickStrings(c.Key, defaults.Key),
		ID:    pickStrings(c.ID, defaults.ID),
		Score: pickStrings(c.Score, defaults.Score),
	}
}

func pickStrings(custom, fallback []string) []string {
	if len(custom) == 0 {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
