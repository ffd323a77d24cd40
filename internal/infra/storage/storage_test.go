package storage_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"torresapp/internal/core"
	"torresapp/internal/infra/storage"
)

func sampleState() core.AppState {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	return core.AppState{
		Clients: []core.Client{
			{ID: "c1", Name: "João Torres", Address: "Rua A, 10", InstallationDate: date, MonthlyFee: decimal.RequireFromString("79.90")},
		},
		Payments: []core.Payment{
			{ID: "p1", ClientID: "c1", Amount: decimal.RequireFromString("79.90"), Date: date, Month: 3, Year: 2024},
		},
		Materials: []core.Material{
			{ID: "default-onu", Name: "ONU", Unit: core.UnitPieces, CostPerUnit: decimal.NewFromInt(150), Stock: 9, IsDefault: true},
		},
		Activations: []core.Activation{
			{ID: "act-c1", ClientID: "c1", Date: date, MaterialsUsed: []core.ActivationMaterial{{MaterialID: "default-onu", QuantityUsed: 1}}, TotalCost: decimal.NewFromInt(150)},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	blob, err := storage.Encode(sampleState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := storage.Decode(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Clients) != 1 || got.Clients[0].ID != "c1" {
		t.Errorf("clients = %+v", got.Clients)
	}
	if !got.Clients[0].MonthlyFee.Equal(decimal.RequireFromString("79.90")) {
		t.Errorf("monthlyFee = %s, want 79.90", got.Clients[0].MonthlyFee)
	}
	if len(got.Activations) != 1 || got.Activations[0].MaterialsUsed[0].QuantityUsed != 1 {
		t.Errorf("activations = %+v", got.Activations)
	}
	if m := got.MaterialByID("default-onu"); m == nil || !m.IsDefault || m.Stock != 9 {
		t.Errorf("material = %+v", m)
	}
}

func TestDecodeLegacyUnversionedBlob(t *testing.T) {
	// Old databases hold the bare collections with no version field.
	legacy := []byte(`{
		"clients": [{"id": "c1", "name": "João", "address": "Rua A", "phone": "",
			"installationDate": "2024-03-10T00:00:00Z", "monthlyFee": "80"}],
		"payments": [],
		"materials": [{"id": "default-ont", "name": "ONT", "unit": "unidades",
			"costPerUnit": "220", "stock": 10, "isDefault": true}],
		"activations": []
	}`)
	got, err := storage.Decode(legacy)
	if err != nil {
		t.Fatalf("decode legacy: %v", err)
	}
	if len(got.Clients) != 1 || got.MaterialByID("default-ont") == nil {
		t.Errorf("legacy blob not migrated: %+v", got)
	}
}

func TestDecodeRefusesNewerVersion(t *testing.T) {
	if _, err := storage.Decode([]byte(`{"version": 99}`)); err == nil {
		t.Errorf("expected error for snapshot from a newer schema")
	}
}

func TestDecodeMalformedBlob(t *testing.T) {
	got, err := storage.Decode([]byte(`{"clients": "not-a-list"`))
	if err == nil {
		t.Fatalf("expected error for malformed blob")
	}
	if len(got.Clients) != 0 {
		t.Errorf("malformed decode returned non-empty state")
	}
}
