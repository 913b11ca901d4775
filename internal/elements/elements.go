// Package elements holds the periodic table data the game needs: symbols,
// names, noble-gas cores and the known exceptions to Madelung filling.
package elements

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/f3rmion/orbital/internal/orbital"
)

// ErrUnknownElement is returned for atomic numbers or symbols outside the table.
var ErrUnknownElement = errors.New("unknown element")

// Element is one entry of the periodic table.
type Element struct {
	Z      int    `json:"z" yaml:"z"`
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
}

// String implements fmt.Stringer.
func (e Element) String() string {
	return fmt.Sprintf("%s (%s, Z=%d)", e.Name, e.Symbol, e.Z)
}

// Period returns the period (row) of the element.
func (e Element) Period() int {
	switch {
	case e.Z <= 2:
		return 1
	case e.Z <= 10:
		return 2
	case e.Z <= 18:
		return 3
	case e.Z <= 36:
		return 4
	case e.Z <= 54:
		return 5
	case e.Z <= 86:
		return 6
	default:
		return 7
	}
}

// NobleGas reports whether the element closes a period.
func (e Element) NobleGas() bool {
	for _, z := range nobleGases {
		if z == e.Z {
			return true
		}
	}
	return false
}

// table is indexed by Z-1.
var table = []struct{ symbol, name string }{
	{"H", "Hydrogen"}, {"He", "Helium"}, {"Li", "Lithium"}, {"Be", "Beryllium"},
	{"B", "Boron"}, {"C", "Carbon"}, {"N", "Nitrogen"}, {"O", "Oxygen"},
	{"F", "Fluorine"}, {"Ne", "Neon"}, {"Na", "Sodium"}, {"Mg", "Magnesium"},
	{"Al", "Aluminium"}, {"Si", "Silicon"}, {"P", "Phosphorus"}, {"S", "Sulfur"},
	{"Cl", "Chlorine"}, {"Ar", "Argon"}, {"K", "Potassium"}, {"Ca", "Calcium"},
	{"Sc", "Scandium"}, {"Ti", "Titanium"}, {"V", "Vanadium"}, {"Cr", "Chromium"},
	{"Mn", "Manganese"}, {"Fe", "Iron"}, {"Co", "Cobalt"}, {"Ni", "Nickel"},
	{"Cu", "Copper"}, {"Zn", "Zinc"}, {"Ga", "Gallium"}, {"Ge", "Germanium"},
	{"As", "Arsenic"}, {"Se", "Selenium"}, {"Br", "Bromine"}, {"Kr", "Krypton"},
	{"Rb", "Rubidium"}, {"Sr", "Strontium"}, {"Y", "Yttrium"}, {"Zr", "Zirconium"},
	{"Nb", "Niobium"}, {"Mo", "Molybdenum"}, {"Tc", "Technetium"}, {"Ru", "Ruthenium"},
	{"Rh", "Rhodium"}, {"Pd", "Palladium"}, {"Ag", "Silver"}, {"Cd", "Cadmium"},
	{"In", "Indium"}, {"Sn", "Tin"}, {"Sb", "Antimony"}, {"Te", "Tellurium"},
	{"I", "Iodine"}, {"Xe", "Xenon"}, {"Cs", "Caesium"}, {"Ba", "Barium"},
	{"La", "Lanthanum"}, {"Ce", "Cerium"}, {"Pr", "Praseodymium"}, {"Nd", "Neodymium"},
	{"Pm", "Promethium"}, {"Sm", "Samarium"}, {"Eu", "Europium"}, {"Gd", "Gadolinium"},
	{"Tb", "Terbium"}, {"Dy", "Dysprosium"}, {"Ho", "Holmium"}, {"Er", "Erbium"},
	{"Tm", "Thulium"}, {"Yb", "Ytterbium"}, {"Lu", "Lutetium"}, {"Hf", "Hafnium"},
	{"Ta", "Tantalum"}, {"W", "Tungsten"}, {"Re", "Rhenium"}, {"Os", "Osmium"},
	{"Ir", "Iridium"}, {"Pt", "Platinum"}, {"Au", "Gold"}, {"Hg", "Mercury"},
	{"Tl", "Thallium"}, {"Pb", "Lead"}, {"Bi", "Bismuth"}, {"Po", "Polonium"},
	{"At", "Astatine"}, {"Rn", "Radon"}, {"Fr", "Francium"}, {"Ra", "Radium"},
	{"Ac", "Actinium"}, {"Th", "Thorium"}, {"Pa", "Protactinium"}, {"U", "Uranium"},
	{"Np", "Neptunium"}, {"Pu", "Plutonium"}, {"Am", "Americium"}, {"Cm", "Curium"},
	{"Bk", "Berkelium"}, {"Cf", "Californium"}, {"Es", "Einsteinium"}, {"Fm", "Fermium"},
	{"Md", "Mendelevium"}, {"No", "Nobelium"}, {"Lr", "Lawrencium"}, {"Rf", "Rutherfordium"},
	{"Db", "Dubnium"}, {"Sg", "Seaborgium"}, {"Bh", "Bohrium"}, {"Hs", "Hassium"},
	{"Mt", "Meitnerium"}, {"Ds", "Darmstadtium"}, {"Rg", "Roentgenium"}, {"Cn", "Copernicium"},
	{"Nh", "Nihonium"}, {"Fl", "Flerovium"}, {"Mc", "Moscovium"}, {"Lv", "Livermorium"},
	{"Ts", "Tennessine"}, {"Og", "Oganesson"},
}

var nobleGases = []int{2, 10, 18, 36, 54, 86, 118}

// Count returns the number of elements in the table.
func Count() int { return len(table) }

// Lookup returns the element with atomic number z.
func Lookup(z int) (Element, error) {
	if z < 1 || z > len(table) {
		return Element{}, fmt.Errorf("Z=%d: %w", z, ErrUnknownElement)
	}
	e := table[z-1]
	return Element{Z: z, Symbol: e.symbol, Name: e.name}, nil
}

// MustLookup is Lookup for atomic numbers known to be valid.
func MustLookup(z int) Element {
	e, err := Lookup(z)
	if err != nil {
		panic(err)
	}
	return e
}

// BySymbol returns the element with the given symbol, case-insensitively.
func BySymbol(symbol string) (Element, error) {
	for i, e := range table {
		if strings.EqualFold(e.symbol, symbol) {
			return Element{Z: i + 1, Symbol: e.symbol, Name: e.name}, nil
		}
	}
	return Element{}, fmt.Errorf("symbol %q: %w", symbol, ErrUnknownElement)
}

// Parse resolves an atomic number, symbol or name, case-insensitively.
func Parse(s string) (Element, error) {
	s = strings.TrimSpace(s)
	if z, err := strconv.Atoi(s); err == nil {
		return Lookup(z)
	}
	for i, e := range table {
		if strings.EqualFold(e.symbol, s) || strings.EqualFold(e.name, s) {
			return Element{Z: i + 1, Symbol: e.symbol, Name: e.name}, nil
		}
	}
	return Element{}, fmt.Errorf("%q: %w", s, ErrUnknownElement)
}

// Range returns elements lo..hi inclusive, clamped to the table.
func Range(lo, hi int) []Element {
	if lo < 1 {
		lo = 1
	}
	if hi > len(table) {
		hi = len(table)
	}
	var out []Element
	for z := lo; z <= hi; z++ {
		out = append(out, MustLookup(z))
	}
	return out
}

// CoreNotation renders an occupancy with the largest complete noble-gas
// core replaced by its bracketed symbol, e.g. "[Ar] 4s² 3d⁶".
func CoreNotation(fills []orbital.SubshellFill) string {
	total := 0
	for _, f := range fills {
		total += f.Electrons
	}

	for i := len(nobleGases) - 1; i >= 0; i-- {
		core := nobleGases[i]
		if core >= total {
			continue
		}
		coreFills := orbital.FullConfiguration(core)
		if len(coreFills) > len(fills) || !samePrefix(coreFills, fills) {
			continue
		}
		rest := orbital.FormatConfiguration(fills[len(coreFills):])
		label := "[" + table[core-1].symbol + "]"
		if rest == "" {
			return label
		}
		return label + " " + rest
	}
	return orbital.FormatConfiguration(fills)
}

func samePrefix(core, fills []orbital.SubshellFill) bool {
	for i, c := range core {
		if fills[i] != c {
			return false
		}
	}
	return true
}

// exceptions lists ground states that break the Madelung rule, keyed by Z.
var exceptions = map[int]string{
	24: "[Ar] 4s¹ 3d⁵",
	29: "[Ar] 4s¹ 3d¹⁰",
	41: "[Kr] 5s¹ 4d⁴",
	42: "[Kr] 5s¹ 4d⁵",
	44: "[Kr] 5s¹ 4d⁷",
	45: "[Kr] 5s¹ 4d⁸",
	46: "[Kr] 4d¹⁰",
	47: "[Kr] 5s¹ 4d¹⁰",
}

// Exception returns the observed ground-state configuration when it differs
// from the Madelung prediction.
func Exception(z int) (string, bool) {
	c, ok := exceptions[z]
	return c, ok
}
