package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"torresapp/internal/core"
)

func seededState(t *testing.T) core.AppState {
	t.Helper()
	return applyAll(t, core.NewAppState(), core.MissingDefaults(core.NewAppState()))
}

func newClient() core.Client {
	return core.Client{
		ID:               "c-novo",
		Name:             "Ana Costa",
		Address:          "Rua C, 7",
		InstallationDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		MonthlyFee:       decimal.NewFromInt(90),
	}
}

func TestPlanInstallationInsufficientStockAborts(t *testing.T) {
	state := seededState(t)
	// Cabo Drop down to 5 in stock, 10 requested.
	cabo := state.MaterialByID("default-cabo-drop")
	cabo.Stock = 5

	plan, err := core.PlanInstallation(state, newClient(), []core.InstallationItem{
		{MaterialID: "default-cabo-drop", Quantity: 10, Selected: true},
	})
	if plan != nil {
		t.Fatalf("got a plan despite the shortfall")
	}
	var shortfall *core.InsufficientStockError
	if !errors.As(err, &shortfall) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if shortfall.MaterialName != "Cabo Drop" || shortfall.Available != 5 || shortfall.Required != 10 {
		t.Errorf("shortfall = %+v, want {Cabo Drop 5 10}", shortfall)
	}
	// Nothing was applied.
	if got := state.MaterialByID("default-cabo-drop").Stock; got != 5 {
		t.Errorf("stock changed to %d on aborted transaction", got)
	}
	if len(state.Clients) != 0 || len(state.Activations) != 0 {
		t.Errorf("client or activation created on aborted transaction")
	}
}

func TestPlanInstallationSuccess(t *testing.T) {
	state := seededState(t)
	client := newClient()

	plan, err := core.PlanInstallation(state, client, []core.InstallationItem{
		{MaterialID: "default-onu", Quantity: 1, Selected: true},
		{MaterialID: "default-conector", Quantity: 2, Selected: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// AddClient, AddActivation, two AdjustStock, in that order.
	if len(plan) != 4 {
		t.Fatalf("plan has %d actions, want 4", len(plan))
	}
	if _, ok := plan[0].(core.AddClient); !ok {
		t.Errorf("plan[0] = %T, want AddClient", plan[0])
	}
	act, ok := plan[1].(core.AddActivation)
	if !ok {
		t.Fatalf("plan[1] = %T, want AddActivation", plan[1])
	}
	if !act.Activation.TotalCost.Equal(decimal.NewFromInt(154)) {
		t.Errorf("totalCost = %s, want 154 (1*150 + 2*2)", act.Activation.TotalCost)
	}
	if act.Activation.ClientID != client.ID || act.Activation.ID != "act-"+client.ID {
		t.Errorf("activation not linked to the new client: %+v", act.Activation)
	}

	next := applyAll(t, state, plan)
	if got := next.MaterialByID("default-onu").Stock; got != 9 {
		t.Errorf("ONU stock = %d, want 9", got)
	}
	if got := next.MaterialByID("default-conector").Stock; got != 8 {
		t.Errorf("Conector stock = %d, want 8", got)
	}
	var linked int
	for _, a := range next.Activations {
		if a.ClientID == client.ID {
			linked++
		}
	}
	if linked != 1 {
		t.Errorf("%d activations linked to the new client, want 1", linked)
	}
}

func TestPlanInstallationWithoutMaterials(t *testing.T) {
	state := seededState(t)
	plan, err := core.PlanInstallation(state, newClient(), []core.InstallationItem{
		{MaterialID: "default-onu", Quantity: 1, Selected: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("plan has %d actions, want just AddClient", len(plan))
	}
}

func TestPlanInstallationSkipsUnknownMaterial(t *testing.T) {
	state := seededState(t)
	plan, err := core.PlanInstallation(state, newClient(), []core.InstallationItem{
		{MaterialID: "ghost", Quantity: 3, Selected: true},
		{MaterialID: "default-conector", Quantity: 1, Selected: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	act := plan[1].(core.AddActivation).Activation
	if len(act.MaterialsUsed) != 1 || act.MaterialsUsed[0].MaterialID != "default-conector" {
		t.Errorf("unknown material was not skipped: %+v", act.MaterialsUsed)
	}
}

func TestPlanInstallationExclusiveONT(t *testing.T) {
	state := seededState(t)
	tests := []struct {
		name    string
		items   []core.InstallationItem
		wantErr bool
	}{
		{"ONT with ONU", []core.InstallationItem{
			{MaterialID: "default-ont", Quantity: 1, Selected: true},
			{MaterialID: "default-onu", Quantity: 1, Selected: true},
		}, true},
		{"ONT with Roteador", []core.InstallationItem{
			{MaterialID: "default-ont", Quantity: 1, Selected: true},
			{MaterialID: "default-roteador", Quantity: 1, Selected: true},
		}, true},
		{"ONT alone", []core.InstallationItem{
			{MaterialID: "default-ont", Quantity: 1, Selected: true},
		}, false},
		{"ONU with Roteador", []core.InstallationItem{
			{MaterialID: "default-onu", Quantity: 1, Selected: true},
			{MaterialID: "default-roteador", Quantity: 1, Selected: true},
		}, false},
		{"ONT selected but zero quantity", []core.InstallationItem{
			{MaterialID: "default-ont", Quantity: 0, Selected: true},
			{MaterialID: "default-onu", Quantity: 1, Selected: true},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.PlanInstallation(state, newClient(), tt.items)
			if tt.wantErr && !errors.Is(err, core.ErrExclusiveSelection) {
				t.Errorf("want ErrExclusiveSelection, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestInstallationCostPreview(t *testing.T) {
	state := seededState(t)
	items := []core.InstallationItem{
		{MaterialID: "default-cabo-drop", Quantity: 50, Selected: true}, // 50 * 1.00
		{MaterialID: "default-ont", Quantity: 1, Selected: true},        // 220.00
		{MaterialID: "default-onu", Quantity: 1, Selected: false},       // ignored
	}
	got := core.InstallationCost(state, items)
	if !got.Equal(decimal.NewFromInt(270)) {
		t.Errorf("preview = %s, want 270", got)
	}
	// Preview matches the frozen activation total for the same selection.
	items[2].Selected = false
	plan, err := core.PlanInstallation(state, newClient(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	act := plan[1].(core.AddActivation).Activation
	if !act.TotalCost.Equal(got) {
		t.Errorf("preview %s != frozen total %s", got, act.TotalCost)
	}
}
