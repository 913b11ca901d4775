package orbital

// NextCorrectPlacement returns the placement the canonical fill sequence
// makes next, or false once the atom is complete.
//
// The canonical sequence fills subshells in Madelung order. Inside a
// subshell it first gives every empty orbital a spin-up electron by
// ascending ml, then pairs each half-filled orbital by ascending ml.
func NextCorrectPlacement(f *FillState) (Placement, bool) {
	if f.Complete() {
		return Placement{}, false
	}
	next, ok := f.FirstIncomplete()
	if !ok {
		return Placement{}, false
	}
	slots := f.subshellSlots(next)

	for _, i := range slots {
		if o := f.orbitals[i]; o.Empty() {
			return Placement{Orbital: o.ID, Spin: Up}, true
		}
	}
	for _, i := range slots {
		if o := f.orbitals[i]; o.Count() == 1 {
			return Placement{Orbital: o.ID, Spin: o.Electrons[0].Spin.Opposite()}, true
		}
	}
	return Placement{}, false
}

// CanonicalSequence returns every placement of the canonical fill for z,
// in order.
func CanonicalSequence(z int) []Placement {
	f := NewFillState(z)
	var out []Placement
	for {
		p, ok := NextCorrectPlacement(f)
		if !ok {
			return out
		}
		if err := f.Apply(p); err != nil {
			return out
		}
		out = append(out, p)
	}
}
