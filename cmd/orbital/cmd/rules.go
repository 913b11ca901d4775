package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/f3rmion/orbital/internal/orbital"
)

const rulesMarkdown = `# Orbital Architect

Build an atom by placing its electrons one at a time. Each placement names an
orbital (n, l, mₗ) and a spin (↑ or ↓).

## Aufbau

Subshells fill in **Madelung order**: lowest n + l first, lowest n on a tie.

%s

You may only place into the lowest-energy subshell that still has room.
Breaking this rule is always **rejected**.

## Pauli exclusion

An orbital holds at most two electrons and they must have opposite spins.
Breaking this rule is always **rejected**.

## Hund's rule

Inside a subshell, every orbital gets one electron before any orbital gets a
second.

| Mode | Hund violation |
|------|----------------|
| Campaign | accepted, counts as a mistake (−5 points, streak reset) |
| Sandbox | accepted, shown as advice, nothing is scored |

## Scoring (campaign)

- Correct placement: **+10**, plus 2 per streak step (bonus capped at +20)
- Mistake: **−5**, hint reveal: **−3** (points never drop below zero)
- Rating moves Elo-style against the atom's difficulty (800 + 25·Z)
- Stars: ★★★ with no slips, ★★ with up to two, ★ otherwise

## Hints

The hint engine fills each subshell in two passes: an up-spin electron into
every empty orbital from lowest mₗ up, then the down-spin partners.

## Exceptions

A few real atoms (Cr, Cu, Nb, Mo, Ru, Rh, Pd, Ag) break the Madelung
prediction. The board always scores against Madelung; ` + "`orbital config`" + `
shows the observed configuration alongside it.
`

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the rules reference",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

var (
	rulesStyle string
	rulesRaw   bool
	rulesWidth int
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesStyle, "style", "auto", "glamour style: auto, dark, light, notty")
	rulesCmd.Flags().BoolVar(&rulesRaw, "raw", false, "print the markdown source")
	rulesCmd.Flags().IntVar(&rulesWidth, "width", 80, "word wrap width")
}

func rulesDocument() string {
	order := ""
	for i, s := range orbital.MadelungOrder() {
		if i > 0 {
			order += " → "
		}
		order += s.Label()
	}
	return fmt.Sprintf(rulesMarkdown, order)
}

func runRules(cmd *cobra.Command, args []string) error {
	doc := rulesDocument()
	if rulesRaw {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	style := glamour.WithAutoStyle()
	if rulesStyle != "auto" {
		style = glamour.WithStandardStyle(rulesStyle)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(rulesWidth))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering rules: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
