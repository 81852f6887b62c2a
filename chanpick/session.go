package chanpick

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"yashubustudio/chanpick/logger"
)

// Session runs the select-and-exclude loop against one table and exclusion file.
// Each step reloads both files, so edits made between steps are picked up.
type Session struct {
	cfg   Config
	store *ExclusionStore
	log   *slog.Logger

	mu         sync.Mutex
	table      Table
	exclusions []float64
	snapshots  []Snapshot
	steps      int
}

// NewSession constructs a session for the given configuration.
func NewSession(cfg Config, log *slog.Logger) *Session {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Setup()
	}
	return &Session{
		cfg:   cfg,
		store: NewExclusionStore(cfg.ExclusionPath),
		log:   log,
	}
}

// Config returns a copy of the session configuration.
func (s *Session) Config() Config {
	return s.cfg.Clone()
}

// Store exposes the exclusion store.
func (s *Session) Store() *ExclusionStore {
	return s.store
}

// Refresh reloads the table and the exclusion list without selecting anything.
func (s *Session) Refresh(ctx context.Context) (Table, []float64, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, nil, err
	}
	table, err := s.loadTable()
	if err != nil {
		return Table{}, nil, err
	}
	exclusions := s.loadExclusions()
	s.mu.Lock()
	s.table = table
	s.exclusions = cloneIDs(exclusions)
	s.mu.Unlock()
	return table, exclusions, nil
}

// Step performs one iteration: select the best candidate for the configured key,
// append it to the exclusion list and persist the list.
func (s *Session) Step(ctx context.Context) (Iteration, error) {
	if err := ctx.Err(); err != nil {
		return Iteration{}, err
	}
	exclusions := s.loadExclusions()
	table, err := s.loadTable()
	if err != nil {
		return Iteration{}, err
	}

	report := Select(table, s.cfg.Key, exclusions)
	var selected *float64
	if sel := report.Selection; sel != nil {
		exclusions = append(exclusions, sel.ID)
		if err := s.store.Save(exclusions); err != nil {
			return Iteration{}, err
		}
		id := sel.ID
		selected = &id
		s.log.Info("candidate selected", "key", s.cfg.Key.String(), "id", sel.ID, "score", sel.Score, "excluded", len(exclusions))
	} else {
		s.log.Info("no candidate", "key", s.cfg.Key.String(), "excluded", len(exclusions))
	}

	y := float64(len(s.cfg.Key) + len(exclusions))
	if selected != nil {
		y++
	}
	snap := Snapshot{Y: y, Exclusions: cloneIDs(exclusions), Selected: selected}

	s.mu.Lock()
	s.steps++
	it := Iteration{
		Number:     s.steps,
		Report:     report,
		Exclusions: cloneIDs(exclusions),
		Snapshot:   snap,
	}
	s.table = table
	s.exclusions = cloneIDs(exclusions)
	s.snapshots = append(s.snapshots, snap)
	s.mu.Unlock()
	return it, nil
}

// Run performs n steps, calling fn after each one. It stops early when ctx is
// cancelled or fn returns an error.
func (s *Session) Run(ctx context.Context, n int, fn func(Iteration) error) error {
	for i := 0; i < n; i++ {
		it, err := s.Step(ctx)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", i+1, err)
		}
		if fn != nil {
			if err := fn(it); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset empties the persisted exclusion list and forgets recorded snapshots.
func (s *Session) Reset() error {
	if err := s.store.Reset(); err != nil {
		return err
	}
	s.mu.Lock()
	s.exclusions = []float64{}
	s.snapshots = nil
	s.steps = 0
	s.mu.Unlock()
	s.log.Info("exclusion list reset", "path", s.store.Path)
	return nil
}

// Table returns the table loaded by the last step or refresh.
func (s *Session) Table() Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// Exclusions returns the exclusion list as of the last step or refresh.
func (s *Session) Exclusions() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIDs(s.exclusions)
}

// Snapshots returns the snapshots recorded so far, oldest first.
func (s *Session) Snapshots() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

func (s *Session) loadTable() (Table, error) {
	table, err := LoadTableWithOptions(s.cfg.TablePath, s.cfg.TableOptions())
	if err != nil {
		return Table{}, fmt.Errorf("load table: %w", err)
	}
	if table.Dropped > 0 {
		s.log.Debug("dropped malformed rows", "path", s.cfg.TablePath, "dropped", table.Dropped)
	}
	return table, nil
}

func (s *Session) loadExclusions() []float64 {
	exclusions := s.store.Load()
	if len(exclusions) == 0 && len(s.cfg.DefaultExclusions) > 0 {
		s.log.Debug("exclusion list empty, using defaults", "path", s.store.Path, "count", len(s.cfg.DefaultExclusions))
		return cloneIDs(s.cfg.DefaultExclusions)
	}
	return exclusions
}
