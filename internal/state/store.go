// Package state owns the live AppState. Every mutation goes through Dispatch
// (or the composite installation transaction), is serialized behind one lock
// and is followed by a full snapshot write. There is no ambient global: the
// container is built in main and handed to whoever needs it.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"torresapp/internal/core"
	"torresapp/internal/infra/metrics"
	"torresapp/internal/infra/storage"
)

type Store struct {
	mu      sync.Mutex
	state   core.AppState
	storage storage.Store
	log     *slog.Logger
}

func New(st storage.Store, log *slog.Logger) *Store {
	return &Store{state: core.NewAppState(), storage: st, log: log}
}

// Hydrate loads the persisted snapshot into the container. A missing or
// malformed blob falls back to the empty state; startup never fails here.
func (s *Store) Hydrate(ctx context.Context) {
	loaded, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn("snapshot load failed, starting empty", "err", err)
		loaded = core.NewAppState()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, _ = core.Reduce(s.state, core.SetState{State: loaded})
}

// SeedDefaults adds the catalog materials that are not present yet and
// persists once. Running it against a fully seeded state is a no-op.
func (s *Store) SeedDefaults(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions := core.MissingDefaults(s.state)
	for _, a := range actions {
		next, err := core.Reduce(s.state, a)
		if err != nil {
			return 0, err
		}
		s.state = next
		metrics.ActionsTotal.WithLabelValues(core.Kind(a), "applied").Inc()
	}
	if len(actions) == 0 {
		return 0, nil
	}
	return len(actions), s.persistLocked(ctx)
}

// Dispatch applies one action and persists the result. A validation rejection
// leaves the state untouched and is returned to the caller.
func (s *Store) Dispatch(ctx context.Context, a core.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := core.Reduce(s.state, a)
	if err != nil {
		metrics.ActionsTotal.WithLabelValues(core.Kind(a), "rejected").Inc()
		return err
	}
	s.state = next
	metrics.ActionsTotal.WithLabelValues(core.Kind(a), "applied").Inc()
	return s.persistLocked(ctx)
}

// CreateClientWithInstallation runs the composite client-creation transaction:
// all stock checks first, then client, activation and stock adjustments under
// one lock with a single snapshot write. On any validation error nothing is
// applied.
func (s *Store) CreateClientWithInstallation(ctx context.Context, client core.Client, items []core.InstallationItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := core.PlanInstallation(s.state, client, items)
	if err != nil {
		metrics.ActionsTotal.WithLabelValues("add_client", "rejected").Inc()
		return err
	}
	for _, a := range plan {
		next, err := core.Reduce(s.state, a)
		if err != nil {
			return fmt.Errorf("apply %s: %w", core.Kind(a), err)
		}
		s.state = next
		metrics.ActionsTotal.WithLabelValues(core.Kind(a), "applied").Inc()
	}
	return s.persistLocked(ctx)
}

// State returns a deep copy of the current state for read-only use.
func (s *Store) State() core.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) persistLocked(ctx context.Context) error {
	start := time.Now()
	err := s.storage.Save(ctx, s.state)
	metrics.SnapshotSaveSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Error("snapshot save failed", "err", err)
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}
