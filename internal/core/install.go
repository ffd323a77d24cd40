package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// InstallationItem is one row of the material-selection form: a material, the
// quantity to consume and whether the row is checked.
type InstallationItem struct {
	MaterialID string
	Quantity   int
	Selected   bool
}

// ErrExclusiveSelection rejects an installation that combines an ONT with an
// ONU or a Roteador. The two setups are mutually exclusive.
var ErrExclusiveSelection = errors.New("ONT não pode ser combinado com ONU ou Roteador")

// InsufficientStockError reports the first material whose stock cannot cover
// the requested quantity. Nothing is applied when it is returned.
type InsufficientStockError struct {
	MaterialName string
	Available    int
	Required     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para %s: disponível %d, necessário %d", e.MaterialName, e.Available, e.Required)
}

// PlanInstallation validates the client-creation transaction and returns the
// ordered action plan: AddClient, then (when materials were selected) one
// AddActivation with the frozen total cost, then one AdjustStock per consumed
// material. All stock checks happen before any action is produced; there is no
// rollback, so pre-validation is the only consistency mechanism. Selected rows
// pointing at unknown materials are skipped silently.
func PlanInstallation(state AppState, client Client, items []InstallationItem) ([]Action, error) {
	if err := checkExclusive(state, items); err != nil {
		return nil, err
	}

	var (
		used      []ActivationMaterial
		totalCost = decimal.Zero
	)
	for _, it := range items {
		if !it.Selected || it.Quantity <= 0 {
			continue
		}
		m := state.MaterialByID(it.MaterialID)
		if m == nil {
			continue
		}
		if m.Stock < it.Quantity {
			return nil, &InsufficientStockError{MaterialName: m.Name, Available: m.Stock, Required: it.Quantity}
		}
		used = append(used, ActivationMaterial{MaterialID: it.MaterialID, QuantityUsed: it.Quantity})
		totalCost = totalCost.Add(m.CostPerUnit.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	plan := []Action{AddClient{Client: client}}
	if len(used) > 0 {
		plan = append(plan, AddActivation{Activation: Activation{
			ID:            "act-" + client.ID,
			ClientID:      client.ID,
			Date:          client.InstallationDate,
			MaterialsUsed: used,
			TotalCost:     totalCost,
		}})
		for _, u := range used {
			plan = append(plan, AdjustStock{MaterialID: u.MaterialID, Quantity: u.QuantityUsed})
		}
	}
	return plan, nil
}

// InstallationCost previews the total cost of a selection without touching
// state. It is the same computation PlanInstallation freezes into the
// activation, minus the stock validation.
func InstallationCost(state AppState, items []InstallationItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if !it.Selected || it.Quantity <= 0 {
			continue
		}
		m := state.MaterialByID(it.MaterialID)
		if m == nil {
			continue
		}
		total = total.Add(m.CostPerUnit.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func checkExclusive(state AppState, items []InstallationItem) error {
	var ont, combo bool
	for _, it := range items {
		if !it.Selected || it.Quantity <= 0 {
			continue
		}
		m := state.MaterialByID(it.MaterialID)
		if m == nil {
			continue
		}
		switch m.Name {
		case MaterialONT:
			ont = true
		case MaterialONU, MaterialRoteador:
			combo = true
		}
	}
	if ont && combo {
		return ErrExclusiveSelection
	}
	return nil
}
