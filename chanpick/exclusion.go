package chanpick

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ExclusionStore persists the ordered exclusion list as a JSON array.
type ExclusionStore struct {
	Path string
}

// NewExclusionStore returns a store backed by path (exclusion_list.json when empty).
func NewExclusionStore(path string) *ExclusionStore {
	if path == "" {
		path = DefaultExclusionPath
	}
	return &ExclusionStore{Path: path}
}

// Load returns the persisted list. A missing, empty or unparsable file yields an
// empty list and no error.
func (s *ExclusionStore) Load() []float64 {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return []float64{}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []float64{}
	}
	var ids []float64
	if err := json.Unmarshal(data, &ids); err != nil || ids == nil {
		return []float64{}
	}
	return ids
}

// Save overwrites the file with ids.
func (s *ExclusionStore) Save(ids []float64) error {
	data, err := json.Marshal(cloneIDs(ids))
	if err != nil {
		return fmt.Errorf("encode exclusion list: %w", err)
	}
	if err := replaceFile(s.Path, data); err != nil {
		return fmt.Errorf("save exclusion list: %w", err)
	}
	return nil
}

// Reset empties the persisted list.
func (s *ExclusionStore) Reset() error {
	return s.Save(nil)
}
