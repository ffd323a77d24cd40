package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"torresapp/internal/core"
	"torresapp/internal/infra/storage/sqlite"
)

func TestLoadEmptyDatabase(t *testing.T) {
	s, err := sqlite.New(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Clients)+len(got.Materials) != 0 {
		t.Errorf("fresh database returned non-empty state: %+v", got)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	state := core.AppState{Materials: []core.Material{
		{ID: "default-onu", Name: "ONU", Unit: core.UnitPieces, CostPerUnit: decimal.NewFromInt(150), Stock: 7, IsDefault: true},
	}}
	if err := s.Save(context.Background(), state); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Overwrite under the same key, then reopen to prove durability.
	state.Materials[0].Stock = 6
	if err := s.Save(context.Background(), state); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := sqlite.New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m := got.MaterialByID("default-onu")
	if m == nil || m.Stock != 6 || !m.CostPerUnit.Equal(decimal.NewFromInt(150)) {
		t.Errorf("reloaded material = %+v", m)
	}
}
