package orbital

import "fmt"

// Validate decides whether placing an electron of the given spin into target
// is legal. It never mutates the state; callers apply accepted placements.
//
// Checks run in order: Pauli (always blocking), Aufbau (always blocking),
// then Hund, whose severity depends on mode. A target that is not part of
// the state, or any target once the state is complete, is rejected with no
// violation.
func Validate(f *FillState, target ID, spin Spin, mode Mode) Verdict {
	i, ok := f.index[target]
	if !ok || f.Complete() {
		return Verdict{}
	}
	o := f.orbitals[i]

	if v := checkPauli(o, spin); v != nil {
		return Verdict{Violation: v}
	}
	if v := checkAufbau(f, target); v != nil {
		return Verdict{Violation: v}
	}
	if v := checkHund(f, o, mode); v != nil {
		_, penalize := mode.hundPolicy()
		return Verdict{Accepted: true, Violation: v, Penalize: penalize}
	}
	return Verdict{Accepted: true}
}

func checkPauli(o Orbital, spin Spin) *Violation {
	switch {
	case o.Full():
		return &Violation{
			Kind:     Pauli,
			Severity: SeverityHard,
			Message:  fmt.Sprintf("%s already holds two electrons", o.ID),
		}
	case o.HasSpin(spin):
		return &Violation{
			Kind:     Pauli,
			Severity: SeverityHard,
			Message: fmt.Sprintf("%s already has a spin-%s electron; a second electron must pair with opposite spin",
				o.ID, spin),
		}
	}
	return nil
}

func checkAufbau(f *FillState, target ID) *Violation {
	next, ok := f.FirstIncomplete()
	if !ok || next == target.Subshell() {
		return nil
	}
	return &Violation{
		Kind:     Aufbau,
		Severity: SeverityHard,
		Message: fmt.Sprintf("%s must be filled before %s", next.Label(),
			target.Subshell().Label()),
	}
}

func checkHund(f *FillState, o Orbital, mode Mode) *Violation {
	if o.Count() != 1 {
		return nil
	}
	for _, i := range f.subshellSlots(o.ID.Subshell()) {
		sib := f.orbitals[i]
		if sib.ID != o.ID && sib.Empty() {
			severity, _ := mode.hundPolicy()
			return &Violation{
				Kind:     Hund,
				Severity: severity,
				Message: fmt.Sprintf("%s is still empty; give every %s orbital one electron before pairing",
					sib.ID, o.ID.Subshell().Label()),
			}
		}
	}
	return nil
}
