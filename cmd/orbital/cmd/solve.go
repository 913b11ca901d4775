package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

var solveCmd = &cobra.Command{
	Use:   "solve <element>",
	Short: "Print the canonical placement sequence for an element",
	Long: `Print the sequence of placements the hint engine would make to build an
atom from empty: subshells in Madelung order, one up-spin electron in each
orbital before any pairing.

Example:
  orbital solve C`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	el, err := elements.Parse(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (%s, Z=%d)\n\n", el.Name, el.Symbol, el.Z)

	state := orbital.NewFillState(el.Z)
	for i, p := range orbital.CanonicalSequence(el.Z) {
		v := orbital.Validate(state, p.Orbital, p.Spin, orbital.Campaign)
		if !v.Clean() {
			return fmt.Errorf("step %d %s: %v", i+1, p, v.Violation)
		}
		if err := state.Apply(p); err != nil {
			return fmt.Errorf("step %d %s: %w", i+1, p, err)
		}
		fmt.Fprintf(out, "%4d  %-10s %s\n", i+1, p, state.Configuration())
	}

	fmt.Fprintf(out, "\n%s\n", elements.CoreNotation(state.Subshells()))
	return nil
}
