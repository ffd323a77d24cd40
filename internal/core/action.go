package core

// Action is the sealed set of state transitions understood by Reduce. The
// presentation layer mutates state exclusively by building one of these values
// and dispatching it; there is no other write path.
type Action interface {
	isAction()
}

// SetState replaces the whole state. Used to hydrate from storage at startup;
// the payload is trusted as-is.
type SetState struct{ State AppState }

// AddClient appends a client. The caller guarantees a fresh unique ID.
type AddClient struct{ Client Client }

// UpdateClient replaces the client with the matching ID; no-op on miss.
type UpdateClient struct{ Client Client }

// DeleteClient removes the client and cascades to its payments and
// activations. Consumed stock is not restored.
type DeleteClient struct{ ID string }

// AddPayment appends unconditionally; the client reference is not validated.
type AddPayment struct{ Payment Payment }

// AddMaterial appends a material.
type AddMaterial struct{ Material Material }

// UpdateMaterial replaces the material with the matching ID; no-op on miss.
type UpdateMaterial struct{ Material Material }

// DeleteMaterial removes a material. Rejected for catalog defaults.
type DeleteMaterial struct{ ID string }

// AddActivation appends unconditionally.
type AddActivation struct{ Activation Activation }

// AdjustStock decrements the material's stock by Quantity. No floor check is
// performed here; sufficiency is validated by the installation transaction.
type AdjustStock struct {
	MaterialID string
	Quantity   int
}

func (SetState) isAction()       {}
func (AddClient) isAction()      {}
func (UpdateClient) isAction()   {}
func (DeleteClient) isAction()   {}
func (AddPayment) isAction()     {}
func (AddMaterial) isAction()    {}
func (UpdateMaterial) isAction() {}
func (DeleteMaterial) isAction() {}
func (AddActivation) isAction()  {}
func (AdjustStock) isAction()    {}

// Kind returns a short label for logging and metrics.
func Kind(a Action) string {
	switch a.(type) {
	case SetState:
		return "set_state"
	case AddClient:
		return "add_client"
	case UpdateClient:
		return "update_client"
	case DeleteClient:
		return "delete_client"
	case AddPayment:
		return "add_payment"
	case AddMaterial:
		return "add_material"
	case UpdateMaterial:
		return "update_material"
	case DeleteMaterial:
		return "delete_material"
	case AddActivation:
		return "add_activation"
	case AdjustStock:
		return "adjust_stock"
	default:
		return "unknown"
	}
}
