package orbital

import "sort"

// maxN bounds the subshells we enumerate; 7p closes element 118.
const maxN = 7

// madelung lists every subshell through 7p in fill order.
var madelung = buildMadelung()

func buildMadelung() []Subshell {
	var all []Subshell
	for n := 1; n <= maxN; n++ {
		for l := 0; l < n && l <= 3; l++ {
			all = append(all, Subshell{N: n, L: l})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Rank() < all[j].Rank()
	})

	// Keep only the prefix real atoms use: after 7p comes 5g/8s, which
	// no known element reaches.
	for i, s := range all {
		if s == (Subshell{N: 7, L: 1}) {
			return all[:i+1]
		}
	}
	return all
}

// MadelungOrder returns all supported subshells in fill order.
func MadelungOrder() []Subshell {
	out := make([]Subshell, len(madelung))
	copy(out, madelung)
	return out
}

// MaxElectrons is the capacity of every supported subshell combined.
func MaxElectrons() int {
	total := 0
	for _, s := range madelung {
		total += s.Capacity()
	}
	return total
}

// SubshellsFor returns the Madelung-ordered subshells an atom with z
// electrons needs: the shortest prefix whose capacity reaches z.
func SubshellsFor(z int) []Subshell {
	var out []Subshell
	capacity := 0
	for _, s := range madelung {
		if capacity >= z {
			break
		}
		out = append(out, s)
		capacity += s.Capacity()
	}
	return out
}

// BuildOrbitals returns empty orbital slots for an atom with atomic number z,
// ordered by subshell in Madelung order and by ascending ml within a subshell.
func BuildOrbitals(z int) []Orbital {
	var out []Orbital
	for _, s := range SubshellsFor(z) {
		for ml := -s.L; ml <= s.L; ml++ {
			out = append(out, Orbital{ID: ID{N: s.N, L: s.L, ML: ml}})
		}
	}
	return out
}
