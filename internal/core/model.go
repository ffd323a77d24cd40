// Package core holds the canonical application state of the ISP manager and
// the pure logic that transforms it: the action reducer, the default-material
// seeding and the derived reports. Nothing in this package performs I/O.
package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitMeters Unit = "metros"
	UnitPieces Unit = "unidades"
)

// Material is an inventory item consumed by installations. Stock is kept as a
// plain integer and is allowed to go negative when adjusted outside the
// pre-validated installation flow.
type Material struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        Unit            `json:"unit"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	Stock       int             `json:"stock"`
	IsDefault   bool            `json:"isDefault,omitempty"`
}

type Client struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	InstallationDate time.Time       `json:"installationDate"`
	MonthlyFee       decimal.Decimal `json:"monthlyFee"`
}

// Payment records one payment toward a client's monthly fee for a given
// (month, year) period. Several payments may exist for the same period; all of
// them count toward paid-this-month detection.
type Payment struct {
	ID       string          `json:"id"`
	ClientID string          `json:"clientId"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
}

// ActivationMaterial is one consumed line of an installation.
type ActivationMaterial struct {
	MaterialID   string `json:"materialId"`
	QuantityUsed int    `json:"quantityUsed"`
}

// Activation is the one-time installation event for a new client. TotalCost is
// frozen at creation time and never recomputed when material costs change.
type Activation struct {
	ID            string               `json:"id"`
	ClientID      string               `json:"clientId"`
	Date          time.Time            `json:"date"`
	MaterialsUsed []ActivationMaterial `json:"materialsUsed"`
	TotalCost     decimal.Decimal      `json:"totalCost"`
}

// AppState is the aggregate root: the single unit of persistence and the sole
// argument/result of the reducer.
type AppState struct {
	Clients     []Client     `json:"clients"`
	Payments    []Payment    `json:"payments"`
	Materials   []Material   `json:"materials"`
	Activations []Activation `json:"activations"`
}

func NewAppState() AppState {
	return AppState{}
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the live collections.
func (s AppState) Clone() AppState {
	out := AppState{
		Clients:     make([]Client, len(s.Clients)),
		Payments:    make([]Payment, len(s.Payments)),
		Materials:   make([]Material, len(s.Materials)),
		Activations: make([]Activation, len(s.Activations)),
	}
	copy(out.Clients, s.Clients)
	copy(out.Payments, s.Payments)
	copy(out.Materials, s.Materials)
	for i, a := range s.Activations {
		used := make([]ActivationMaterial, len(a.MaterialsUsed))
		copy(used, a.MaterialsUsed)
		a.MaterialsUsed = used
		out.Activations[i] = a
	}
	return out
}

// MaterialByID returns the material with the given id, or nil if absent.
func (s AppState) MaterialByID(id string) *Material {
	for i := range s.Materials {
		if s.Materials[i].ID == id {
			return &s.Materials[i]
		}
	}
	return nil
}

// ClientByID returns the client with the given id, or nil if absent.
func (s AppState) ClientByID(id string) *Client {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i]
		}
	}
	return nil
}
