package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog material names, in the order they appear in the installation form.
const (
	MaterialCaboDrop = "Cabo Drop"
	MaterialConector = "Conector"
	MaterialONU      = "ONU"
	MaterialRoteador = "Roteador"
	MaterialONT      = "ONT"
)

const defaultInitialStock = 10

// DefaultMaterials returns the five-entry catalog seeded on first start.
func DefaultMaterials() []Material {
	return []Material{
		{ID: DefaultMaterialID(MaterialCaboDrop), Name: MaterialCaboDrop, Unit: UnitMeters, CostPerUnit: decimal.NewFromInt(1), Stock: defaultInitialStock, IsDefault: true},
		{ID: DefaultMaterialID(MaterialConector), Name: MaterialConector, Unit: UnitPieces, CostPerUnit: decimal.NewFromInt(2), Stock: defaultInitialStock, IsDefault: true},
		{ID: DefaultMaterialID(MaterialONU), Name: MaterialONU, Unit: UnitPieces, CostPerUnit: decimal.NewFromInt(150), Stock: defaultInitialStock, IsDefault: true},
		{ID: DefaultMaterialID(MaterialRoteador), Name: MaterialRoteador, Unit: UnitPieces, CostPerUnit: decimal.NewFromInt(100), Stock: defaultInitialStock, IsDefault: true},
		{ID: DefaultMaterialID(MaterialONT), Name: MaterialONT, Unit: UnitPieces, CostPerUnit: decimal.NewFromInt(220), Stock: defaultInitialStock, IsDefault: true},
	}
}

// DefaultMaterialID derives the deterministic ID of a catalog entry:
// "default-" plus the lowercase, hyphen-joined name.
func DefaultMaterialID(name string) string {
	return "default-" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// MissingDefaults returns one AddMaterial per catalog entry whose name is not
// yet present in the state. Matching is by name only, so a user-recreated
// material with a catalog name suppresses the seed for that name. Running the
// result through the reducer and calling MissingDefaults again yields nothing,
// which makes seeding idempotent.
func MissingDefaults(state AppState) []Action {
	present := make(map[string]bool, len(state.Materials))
	for _, m := range state.Materials {
		present[m.Name] = true
	}
	var actions []Action
	for _, dm := range DefaultMaterials() {
		if !present[dm.Name] {
			actions = append(actions, AddMaterial{Material: dm})
		}
	}
	return actions
}
