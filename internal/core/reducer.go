package core

import (
	"errors"
	"fmt"
)

// ErrDefaultMaterial marks the rejection of a delete targeting one of the
// seeded catalog materials. State is left untouched.
var ErrDefaultMaterial = errors.New("material padrão não pode ser excluído")

// Reduce applies one action to the state and returns the resulting state.
// It is pure: the input state is never mutated, and the only failure mode is
// a validation rejection, in which case the returned state equals the input.
// Updates and deletes that reference a nonexistent ID are silent no-ops.
func Reduce(state AppState, action Action) (AppState, error) {
	switch a := action.(type) {
	case SetState:
		return a.State, nil

	case AddClient:
		next := state.Clone()
		next.Clients = append(next.Clients, a.Client)
		return next, nil

	case UpdateClient:
		next := state.Clone()
		for i := range next.Clients {
			if next.Clients[i].ID == a.Client.ID {
				next.Clients[i] = a.Client
				break
			}
		}
		return next, nil

	case DeleteClient:
		next := state.Clone()
		next.Clients = deleteByID(next.Clients, a.ID, func(c Client) string { return c.ID })
		next.Payments = deleteByID(next.Payments, a.ID, func(p Payment) string { return p.ClientID })
		next.Activations = deleteByID(next.Activations, a.ID, func(ac Activation) string { return ac.ClientID })
		return next, nil

	case AddPayment:
		next := state.Clone()
		next.Payments = append(next.Payments, a.Payment)
		return next, nil

	case AddMaterial:
		next := state.Clone()
		next.Materials = append(next.Materials, a.Material)
		return next, nil

	case UpdateMaterial:
		next := state.Clone()
		for i := range next.Materials {
			if next.Materials[i].ID == a.Material.ID {
				next.Materials[i] = a.Material
				break
			}
		}
		return next, nil

	case DeleteMaterial:
		if m := state.MaterialByID(a.ID); m != nil && m.IsDefault {
			return state, fmt.Errorf("%w: %s", ErrDefaultMaterial, m.Name)
		}
		next := state.Clone()
		next.Materials = deleteByID(next.Materials, a.ID, func(m Material) string { return m.ID })
		return next, nil

	case AddActivation:
		next := state.Clone()
		next.Activations = append(next.Activations, a.Activation)
		return next, nil

	case AdjustStock:
		next := state.Clone()
		for i := range next.Materials {
			if next.Materials[i].ID == a.MaterialID {
				next.Materials[i].Stock -= a.Quantity
				break
			}
		}
		return next, nil

	default:
		return state, nil
	}
}

func deleteByID[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}
