package orbital

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownOrbital is returned when an id is not part of the fill state.
	ErrUnknownOrbital = errors.New("orbital not part of this atom")
	// ErrComplete is returned when every electron has been placed.
	ErrComplete = errors.New("atom is complete")
	// ErrOrbitalFull is returned when applying to an orbital that already
	// holds an electron of that spin or two electrons.
	ErrOrbitalFull = errors.New("orbital cannot take that electron")
)

// FillState is the occupancy of every orbital slot of the atom being built.
type FillState struct {
	z        int
	orbitals []Orbital
	index    map[ID]int
	seq      int
	now      func() time.Time
}

// NewFillState builds an empty fill state for atomic number z.
func NewFillState(z int) *FillState {
	orbitals := BuildOrbitals(z)
	index := make(map[ID]int, len(orbitals))
	for i, o := range orbitals {
		index[o.ID] = i
	}
	return &FillState{
		z:        z,
		orbitals: orbitals,
		index:    index,
		now:      time.Now,
	}
}

// AtomicNumber returns the number of electrons the atom needs.
func (f *FillState) AtomicNumber() int { return f.z }

// Total returns the number of electrons to place.
func (f *FillState) Total() int { return f.z }

// Placed returns the number of electrons placed so far.
func (f *FillState) Placed() int {
	n := 0
	for _, o := range f.orbitals {
		n += o.Count()
	}
	return n
}

// Complete reports whether every electron has been placed.
func (f *FillState) Complete() bool {
	return f.Placed() >= f.z
}

// Orbitals returns the slots in fill order. Callers must not modify the
// returned electrons.
func (f *FillState) Orbitals() []Orbital {
	out := make([]Orbital, len(f.orbitals))
	copy(out, f.orbitals)
	return out
}

// Orbital returns the slot with the given id.
func (f *FillState) Orbital(id ID) (Orbital, bool) {
	i, ok := f.index[id]
	if !ok {
		return Orbital{}, false
	}
	return f.orbitals[i], true
}

// Has reports whether id belongs to this atom.
func (f *FillState) Has(id ID) bool {
	_, ok := f.index[id]
	return ok
}

// subshellSlots returns the indices of the orbitals in s, ascending ml.
func (f *FillState) subshellSlots(s Subshell) []int {
	var out []int
	for i, o := range f.orbitals {
		if o.ID.Subshell() == s {
			out = append(out, i)
		}
	}
	return out
}

// SubshellFill is the occupancy of one subshell.
type SubshellFill struct {
	Subshell  Subshell
	Electrons int
}

// Full reports whether the subshell is at capacity.
func (s SubshellFill) Full() bool { return s.Electrons >= s.Subshell.Capacity() }

// Subshells returns the occupancy of each subshell in Madelung order.
func (f *FillState) Subshells() []SubshellFill {
	var out []SubshellFill
	for _, o := range f.orbitals {
		s := o.ID.Subshell()
		if len(out) == 0 || out[len(out)-1].Subshell != s {
			out = append(out, SubshellFill{Subshell: s})
		}
		out[len(out)-1].Electrons += o.Count()
	}
	return out
}

// FirstIncomplete returns the lowest-energy subshell that still has room.
func (f *FillState) FirstIncomplete() (Subshell, bool) {
	for _, s := range f.Subshells() {
		if !s.Full() {
			return s.Subshell, true
		}
	}
	return Subshell{}, false
}

// Apply places an electron. It enforces capacity and spin pairing so the
// state can never hold an impossible orbital, but does not judge fill
// order; run Validate first.
func (f *FillState) Apply(p Placement) error {
	if f.Complete() {
		return ErrComplete
	}
	i, ok := f.index[p.Orbital]
	if !ok {
		return fmt.Errorf("%s: %w", p.Orbital, ErrUnknownOrbital)
	}
	o := &f.orbitals[i]
	if o.Full() || o.HasSpin(p.Spin) {
		return fmt.Errorf("%s: %w", p, ErrOrbitalFull)
	}
	f.seq++
	o.Electrons = append(o.Electrons, Electron{
		Spin:     p.Spin,
		Seq:      f.seq,
		PlacedAt: f.now(),
	})
	return nil
}

// Clone returns a deep copy of the fill state.
func (f *FillState) Clone() *FillState {
	c := &FillState{
		z:        f.z,
		orbitals: make([]Orbital, len(f.orbitals)),
		index:    f.index,
		seq:      f.seq,
		now:      f.now,
	}
	for i, o := range f.orbitals {
		c.orbitals[i] = Orbital{ID: o.ID}
		if len(o.Electrons) > 0 {
			c.orbitals[i].Electrons = append([]Electron(nil), o.Electrons...)
		}
	}
	return c
}

// Configuration returns the occupied subshells in fill order, e.g.
// "1s² 2s² 2p²".
func (f *FillState) Configuration() string {
	return FormatConfiguration(f.Subshells())
}

// FormatConfiguration renders occupied subshells with superscript counts.
// Empty subshells are skipped.
func FormatConfiguration(fills []SubshellFill) string {
	var parts []string
	for _, s := range fills {
		if s.Electrons == 0 {
			continue
		}
		parts = append(parts, s.Subshell.Label()+Superscript(s.Electrons))
	}
	return strings.Join(parts, " ")
}

var superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

// Superscript renders n with Unicode superscript digits.
func Superscript(n int) string {
	digits := []rune(fmt.Sprintf("%d", n))
	for i, d := range digits {
		if d >= '0' && d <= '9' {
			digits[i] = superscripts[d-'0']
		}
	}
	return string(digits)
}

// FullConfiguration returns the Madelung ground-state occupancy for z.
func FullConfiguration(z int) []SubshellFill {
	var out []SubshellFill
	left := z
	for _, s := range SubshellsFor(z) {
		n := s.Capacity()
		if left < n {
			n = left
		}
		out = append(out, SubshellFill{Subshell: s, Electrons: n})
		left -= n
	}
	return out
}
