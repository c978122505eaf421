package parking

// VehicleAdder is the side of a manager an entry gate admits vehicles into.
type VehicleAdder interface {
	AddVehicle(v *Vehicle) bool
}

// VehicleRemover is the side of a manager an exit gate releases vehicles from.
type VehicleRemover interface {
	RemoveVehicle(v *Vehicle) *Spot
}

type EntryGate struct {
	manager VehicleAdder
}

func NewEntryGate(manager VehicleAdder) *EntryGate {
	return &EntryGate{manager: manager}
}

func (g *EntryGate) AllowEntry(v *Vehicle) bool {
	return g.manager.AddVehicle(v)
}

type ExitGate struct {
	manager VehicleRemover
}

func NewExitGate(manager VehicleRemover) *ExitGate {
	return &ExitGate{manager: manager}
}

func (g *ExitGate) AllowExit(v *Vehicle) {
	g.manager.RemoveVehicle(v)
}
