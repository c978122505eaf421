package parking

import (
	"fmt"
	"io"
)

// RunDemo admits and releases a single two-wheeler through the gates of a
// two-spot lot.
func RunDemo(w io.Writer) {
	strategy := NearestToGate{}
	twoManager := NewManager(TwoWheeler, strategy)

	twoManager.AddSpot(NewSpot(1, TwoWheeler))
	twoManager.AddSpot(NewSpot(2, TwoWheeler))

	entry := NewEntryGate(twoManager)
	exit := NewExitGate(twoManager)

	v1 := NewVehicle(101, TwoWheeler)

	fmt.Fprintf(w, "Vehicle entering: %t\n", entry.AllowEntry(v1))
	exit.AllowExit(v1)
	fmt.Fprintln(w, "Vehicle exited!")
}
