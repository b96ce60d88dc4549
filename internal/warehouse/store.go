// Package warehouse holds the mutable stock inventory behind a commit
// boundary: planning runs read snapshots, and a confirmed run replaces the
// whole snapshot at once. Nothing here writes partially.
package warehouse

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Store is an in-memory stock inventory safe for one active order context at
// a time. Snapshots are deep copies, so a planning run can never see a
// half-applied commit.
type Store struct {
	mu    sync.Mutex
	stock []model.StockEntry
	log   zerolog.Logger
}

func NewStore(initial []model.StockEntry, log zerolog.Logger) *Store {
	return &Store{
		stock: model.CloneStock(initial),
		log:   log,
	}
}

// Snapshot returns a copy of the current stock.
func (s *Store) Snapshot() []model.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneStock(s.stock)
}

// Commit replaces the entire stock with the updated snapshot from a
// confirmed planning run. The swap is all-or-nothing: a rejected snapshot
// leaves the previous stock untouched. Zero-quantity rows are dropped.
func (s *Store) Commit(runID string, updated []model.StockEntry) error {
	next := make([]model.StockEntry, 0, len(updated))
	for _, row := range updated {
		if row.Quantity < 0 {
			return fmt.Errorf("commit %s rejected: negative quantity %d for material %s", runID, row.Quantity, row.MaterialID)
		}
		if row.Length < 0 {
			return fmt.Errorf("commit %s rejected: negative length %.2f for material %s", runID, row.Length, row.MaterialID)
		}
		if row.Quantity == 0 {
			continue
		}
		next = append(next, row)
	}

	s.mu.Lock()
	s.stock = next
	s.mu.Unlock()

	s.log.Info().Str("run_id", runID).Int("rows", len(next)).Msg("stock snapshot replaced")
	return nil
}

// Add replenishes stock, merging into an existing row with the same
// material and length when one exists.
func (s *Store) Add(entry model.StockEntry) {
	if entry.Quantity <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stock {
		if s.stock[i].MaterialID == entry.MaterialID && s.stock[i].Length == entry.Length {
			s.stock[i].Quantity += entry.Quantity
			return
		}
	}
	s.stock = append(s.stock, entry)
}

// Remove takes up to entry.Quantity units off the matching row, deleting the
// row when it empties. It reports how many units were actually removed.
func (s *Store) Remove(entry model.StockEntry) int {
	if entry.Quantity <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stock {
		if s.stock[i].MaterialID != entry.MaterialID || s.stock[i].Length != entry.Length {
			continue
		}
		removed := entry.Quantity
		if removed > s.stock[i].Quantity {
			removed = s.stock[i].Quantity
		}
		s.stock[i].Quantity -= removed
		if s.stock[i].Quantity == 0 {
			s.stock = append(s.stock[:i], s.stock[i+1:]...)
		}
		return removed
	}
	return 0
}
