// Package dataset holds the in-memory snapshot of the accounting exports and
// the loader that builds it from disk. The reporting pipeline only ever reads
// a consistent snapshot; reloads swap the whole snapshot atomically.
package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

// ErrNotLoaded is returned before the first successful load.
var ErrNotLoaded = errors.New("dataset not loaded yet")

// Snapshot is one immutable view of the loaded data. All slices keep the
// order of the export files.
type Snapshot struct {
	Orders          []domain.SalesRecord
	OrderItems      []domain.LineItem
	Invoices        []domain.SalesRecord
	InvoiceItems    []domain.LineItem
	Sponsoring      []domain.SalesRecord
	SponsoringItems []domain.LineItem
	Stock           []domain.StockItem
	Plan            map[string]domain.PlanTarget
	LoadedAt        time.Time
}

// Provider hands out the current snapshot to the reporting layer.
type Provider interface {
	Current() (*Snapshot, error)
}

// Loader builds a fresh snapshot from the configured sources.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Store keeps the active snapshot and swaps it atomically on reload.
type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the active snapshot, ErrNotLoaded before the first swap.
func (s *Store) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, ErrNotLoaded
	}
	return s.snapshot, nil
}

// Swap publishes a new snapshot. In-flight readers keep the one they already
// hold.
func (s *Store) Swap(snapshot *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}
