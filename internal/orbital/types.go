// Package orbital provides the orbital model, placement rules and hint engine
// for building atoms electron by electron.
package orbital

import (
	"fmt"
	"time"
)

// SubshellType is the angular momentum letter of a subshell.
type SubshellType int

const (
	TypeS SubshellType = iota // l = 0
	TypeP                     // l = 1
	TypeD                     // l = 2
	TypeF                     // l = 3
)

// String returns the spectroscopic letter.
func (t SubshellType) String() string {
	switch t {
	case TypeS:
		return "s"
	case TypeP:
		return "p"
	case TypeD:
		return "d"
	case TypeF:
		return "f"
	default:
		return "?"
	}
}

// Subshell is the set of orbitals sharing n and l.
type Subshell struct {
	N int `json:"n" yaml:"n"`
	L int `json:"l" yaml:"l"`
}

// Type returns the subshell letter for l.
func (s Subshell) Type() SubshellType {
	switch s.L {
	case 0:
		return TypeS
	case 1:
		return TypeP
	case 2:
		return TypeD
	case 3:
		return TypeF
	default:
		panic(fmt.Sprintf("orbital: unsupported angular momentum l=%d", s.L))
	}
}

// Label returns the subshell label, e.g. "3d".
func (s Subshell) Label() string {
	return fmt.Sprintf("%d%s", s.N, s.Type())
}

// String implements fmt.Stringer.
func (s Subshell) String() string { return s.Label() }

// Orbitals returns the number of orbitals in the subshell (2l+1).
func (s Subshell) Orbitals() int { return 2*s.L + 1 }

// Capacity returns the maximum number of electrons (2(2l+1)).
func (s Subshell) Capacity() int { return 2 * s.Orbitals() }

// Rank returns the Madelung sort key: n+l first, lower n breaks ties.
func (s Subshell) Rank() int {
	return (s.N+s.L)*16 + s.N
}

// Color returns the display colour for the subshell type.
func (s Subshell) Color() string {
	switch s.Type() {
	case TypeS:
		return "#FF6B6B"
	case TypeP:
		return "#4ecdc4"
	case TypeD:
		return "#ffe66d"
	case TypeF:
		return "#a8e6cf"
	default:
		return "#f1faee"
	}
}

// ID identifies one orbital by its quantum numbers.
type ID struct {
	N  int `json:"n" yaml:"n"`
	L  int `json:"l" yaml:"l"`
	ML int `json:"ml" yaml:"ml"`
}

// Subshell returns the subshell the orbital belongs to.
func (id ID) Subshell() Subshell { return Subshell{N: id.N, L: id.L} }

// String formats the id as e.g. "2p(-1)" or "1s".
func (id ID) String() string {
	label := id.Subshell().Label()
	if id.L == 0 {
		return label
	}
	return fmt.Sprintf("%s(%+d)", label, id.ML)
}

// Spin is the spin projection of an electron.
type Spin int

const (
	Up Spin = iota
	Down
)

// Opposite returns the other spin.
func (s Spin) Opposite() Spin {
	if s == Up {
		return Down
	}
	return Up
}

// Arrow returns the arrow glyph for the spin.
func (s Spin) Arrow() string {
	if s == Up {
		return "↑"
	}
	return "↓"
}

// String implements fmt.Stringer.
func (s Spin) String() string {
	if s == Up {
		return "up"
	}
	return "down"
}

// ParseSpin parses "up"/"u"/"↑" and "down"/"d"/"↓".
func ParseSpin(s string) (Spin, error) {
	switch s {
	case "up", "u", "↑", "+":
		return Up, nil
	case "down", "d", "↓", "-":
		return Down, nil
	}
	return Up, fmt.Errorf("unknown spin %q", s)
}

// Electron is a placed electron. Seq and PlacedAt order placements; they
// carry no physics.
type Electron struct {
	Spin     Spin      `json:"spin"`
	Seq      int       `json:"seq"`
	PlacedAt time.Time `json:"placed_at"`
}

// Orbital is one slot of the fill state.
type Orbital struct {
	ID        ID         `json:"id"`
	Electrons []Electron `json:"electrons,omitempty"`
}

// Count returns the number of electrons held.
func (o Orbital) Count() int { return len(o.Electrons) }

// Full reports whether the orbital holds two electrons.
func (o Orbital) Full() bool { return len(o.Electrons) >= 2 }

// Empty reports whether the orbital holds no electrons.
func (o Orbital) Empty() bool { return len(o.Electrons) == 0 }

// HasSpin reports whether an electron of the given spin is present.
func (o Orbital) HasSpin(s Spin) bool {
	for _, e := range o.Electrons {
		if e.Spin == s {
			return true
		}
	}
	return false
}

// Placement is a proposed or applied (orbital, spin) pair.
type Placement struct {
	Orbital ID   `json:"orbital"`
	Spin    Spin `json:"spin"`
}

// String formats the placement as e.g. "2p(-1)↑".
func (p Placement) String() string {
	return p.Orbital.String() + p.Spin.Arrow()
}

// Mode selects how soft rules are enforced.
type Mode int

const (
	// Sandbox reports Hund violations as advisory warnings only.
	Sandbox Mode = iota
	// Campaign accepts Hund violations but flags them for a penalty.
	Campaign
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Campaign {
		return "campaign"
	}
	return "sandbox"
}

// ParseMode parses "sandbox" or "campaign".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sandbox", "":
		return Sandbox, nil
	case "campaign":
		return Campaign, nil
	}
	return Sandbox, fmt.Errorf("unknown mode %q", s)
}

// hundPolicy returns the severity and penalty flag a Hund violation gets.
func (m Mode) hundPolicy() (Severity, bool) {
	switch m {
	case Campaign:
		return SeveritySoft, true
	default:
		return SeverityAdvisory, false
	}
}

// ViolationKind classifies a rule violation.
type ViolationKind int

const (
	Aufbau ViolationKind = iota + 1
	Pauli
	Hund
)

// String implements fmt.Stringer.
func (k ViolationKind) String() string {
	switch k {
	case Aufbau:
		return "Aufbau"
	case Pauli:
		return "Pauli"
	case Hund:
		return "Hund"
	default:
		return "unknown"
	}
}

// Severity says whether a violation blocks the placement.
type Severity int

const (
	SeverityHard     Severity = iota // placement rejected
	SeveritySoft                     // accepted, caller should penalize
	SeverityAdvisory                 // accepted, feedback only
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityHard:
		return "hard"
	case SeveritySoft:
		return "soft"
	default:
		return "advisory"
	}
}

// Violation describes why a placement broke a rule.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
}

// Error lets a violation be reported through error-shaped channels.
func (v *Violation) Error() string {
	return fmt.Sprintf("%s violation: %s", v.Kind, v.Message)
}

// Verdict is the validator's answer for a proposed placement.
type Verdict struct {
	Accepted  bool       `json:"accepted"`
	Violation *Violation `json:"violation,omitempty"`
	// Penalize is set when the placement is accepted but the score
	// tracker should treat it as a mistake.
	Penalize bool `json:"penalize,omitempty"`
}

// Clean reports an accepted placement with no violation.
func (v Verdict) Clean() bool {
	return v.Accepted && v.Violation == nil
}
