// Package storage persists the whole application state as one serialized blob
// under a fixed key. Backends only implement dumb key-value get/set; the
// snapshot envelope and its schema versioning live here.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"torresapp/internal/core"
)

// StateKey is the fixed key the snapshot is stored under.
const StateKey = "torresapp-state"

// SnapshotVersion is the current schema version of the persisted envelope.
// Blobs without a version field (the legacy layout) are treated as version 0
// and migrated forward on load.
const SnapshotVersion = 1

// Store is the persistence boundary of the state container. Load returns an
// empty state when no blob exists yet.
type Store interface {
	Load(ctx context.Context) (core.AppState, error)
	Save(ctx context.Context, state core.AppState) error
	Close() error
}

type snapshot struct {
	Version     int               `json:"version"`
	Clients     []core.Client     `json:"clients"`
	Payments    []core.Payment    `json:"payments"`
	Materials   []core.Material   `json:"materials"`
	Activations []core.Activation `json:"activations"`
}

// Encode serializes the state into the current snapshot envelope.
func Encode(state core.AppState) ([]byte, error) {
	return json.Marshal(snapshot{
		Version:     SnapshotVersion,
		Clients:     state.Clients,
		Payments:    state.Payments,
		Materials:   state.Materials,
		Activations: state.Activations,
	})
}

// Decode parses a snapshot blob, migrating older versions forward. Blobs newer
// than this binary understands are refused.
func Decode(data []byte) (core.AppState, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return core.NewAppState(), fmt.Errorf("decode snapshot: %w", err)
	}
	if err := migrate(&s); err != nil {
		return core.NewAppState(), err
	}
	return core.AppState{
		Clients:     s.Clients,
		Payments:    s.Payments,
		Materials:   s.Materials,
		Activations: s.Activations,
	}, nil
}

func migrate(s *snapshot) error {
	switch {
	case s.Version > SnapshotVersion:
		return fmt.Errorf("snapshot version %d is newer than supported %d", s.Version, SnapshotVersion)
	case s.Version == SnapshotVersion:
		return nil
	}
	// Version 0 is the unversioned legacy blob; the collection layout is the
	// same, so migrating is just stamping the version.
	s.Version = SnapshotVersion
	return nil
}
