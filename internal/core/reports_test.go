package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"torresapp/internal/core"
)

func TestMonthlyRevenue(t *testing.T) {
	state := core.AppState{Payments: []core.Payment{
		{ID: "p1", ClientID: "c1", Amount: decimal.NewFromInt(100), Month: 5, Year: 2024},
		{ID: "p2", ClientID: "c2", Amount: decimal.NewFromInt(50), Month: 5, Year: 2024},
		{ID: "p3", ClientID: "c1", Amount: decimal.NewFromInt(30), Month: 6, Year: 2024},
	}}
	tests := []struct {
		period core.Period
		want   int64
	}{
		{core.Period{Month: 5, Year: 2024}, 150},
		{core.Period{Month: 6, Year: 2024}, 30},
		{core.Period{Month: 5, Year: 2023}, 0},
	}
	for _, tt := range tests {
		if got := core.MonthlyRevenue(state, tt.period); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("revenue %v = %s, want %d", tt.period, got, tt.want)
		}
	}
}

func TestOverdueClients(t *testing.T) {
	state := core.AppState{
		Clients: []core.Client{
			{ID: "c1", Name: "João"},
			{ID: "c2", Name: "Maria"},
		},
		Payments: []core.Payment{
			{ID: "p1", ClientID: "c1", Amount: decimal.NewFromInt(80), Month: 3, Year: 2024},
		},
	}

	march := core.OverdueClients(state, core.Period{Month: 3, Year: 2024})
	if len(march) != 1 || march[0].ID != "c2" {
		t.Errorf("march overdue = %v, want only c2", ids(march))
	}

	// Past-period coverage does not carry over: c1 is overdue again in april.
	april := core.OverdueClients(state, core.Period{Month: 4, Year: 2024})
	if len(april) != 2 {
		t.Errorf("april overdue = %v, want both clients", ids(april))
	}
}

func ids(cs []core.Client) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestOverdueCountsEveryPaymentOfThePeriod(t *testing.T) {
	// Two payments in the same period are fine; either one clears the client.
	state := core.AppState{
		Clients: []core.Client{{ID: "c1"}},
		Payments: []core.Payment{
			{ID: "p1", ClientID: "c1", Amount: decimal.NewFromInt(40), Month: 7, Year: 2024},
			{ID: "p2", ClientID: "c1", Amount: decimal.NewFromInt(40), Month: 7, Year: 2024},
		},
	}
	if got := core.OverdueClients(state, core.Period{Month: 7, Year: 2024}); len(got) != 0 {
		t.Errorf("client with duplicate period payments reported overdue")
	}
}

func TestLowStock(t *testing.T) {
	state := core.AppState{Materials: []core.Material{
		{ID: "a", Name: "A", Stock: 9},
		{ID: "b", Name: "B", Stock: 10},
		{ID: "c", Name: "C", Stock: -3},
	}}
	low := core.LowStock(state)
	if len(low) != 2 {
		t.Fatalf("low stock count = %d, want 2 (strictly below %d)", len(low), core.LowStockThreshold)
	}
	for _, m := range low {
		if m.ID == "b" {
			t.Errorf("stock exactly at the threshold reported as low")
		}
	}
}

func TestSummarize(t *testing.T) {
	state := core.AppState{
		Clients: []core.Client{{ID: "c1"}, {ID: "c2"}},
		Payments: []core.Payment{
			{ID: "p1", ClientID: "c1", Amount: decimal.NewFromInt(75), Month: 2, Year: 2025},
		},
		Materials: []core.Material{{ID: "m1", Stock: 2}},
	}
	sum := core.Summarize(state, core.Period{Month: 2, Year: 2025})
	if sum.TotalClients != 2 || sum.OverdueCount != 1 || sum.LowStockCount != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if !sum.Revenue.Equal(decimal.NewFromInt(75)) {
		t.Errorf("revenue = %s, want 75", sum.Revenue)
	}
}

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2024, 11, 30, 23, 59, 0, 0, time.UTC)
	p := core.CurrentPeriod(now)
	if p.Month != 11 || p.Year != 2024 {
		t.Errorf("period = %+v, want 11/2024", p)
	}
}
