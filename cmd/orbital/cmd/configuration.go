package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

var configCmd = &cobra.Command{
	Use:   "config <element>...",
	Short: "Print the ground-state configuration of elements",
	Long: `Print the Madelung ground-state configuration of one or more elements,
with the noble-gas core notation and an orbital box diagram.

Elements that break the Madelung rule also show their observed configuration.

Example:
  orbital config Fe
  orbital config 24 copper`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfig,
}

var configNoDiagram bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configNoDiagram, "no-diagram", false, "omit the orbital box diagram")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, arg := range args {
		el, err := elements.Parse(arg)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		printElement(out, el, !configNoDiagram)
	}
	return nil
}

func printElement(out io.Writer, el elements.Element, diagram bool) {
	fills := orbital.FullConfiguration(el.Z)

	fmt.Fprintf(out, "%s (%s, Z=%d)\n", el.Name, el.Symbol, el.Z)
	fmt.Fprintf(out, "  Configuration: %s\n", orbital.FormatConfiguration(fills))
	fmt.Fprintf(out, "  Core notation: %s\n", elements.CoreNotation(fills))
	if exc, ok := elements.Exception(el.Z); ok {
		fmt.Fprintf(out, "  Observed:      %s (Madelung exception)\n", exc)
	}
	if !diagram {
		return
	}

	state := orbital.NewFillState(el.Z)
	for _, p := range orbital.CanonicalSequence(el.Z) {
		// The canonical sequence always applies cleanly.
		_ = state.Apply(p)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, renderDiagram(state))
}

// renderDiagram draws the orbital boxes, highest energy first.
func renderDiagram(state *orbital.FillState) string {
	var rows []string
	var cur orbital.Subshell
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			rows = append(rows, "  "+runewidth.FillRight(cur.Label(), 4)+b.String())
			b.Reset()
		}
	}
	for _, o := range state.Orbitals() {
		if s := o.ID.Subshell(); s != cur {
			flush()
			cur = s
		}
		var arrows string
		for _, e := range o.Electrons {
			arrows += e.Spin.Arrow()
		}
		b.WriteString("[" + runewidth.FillRight(arrows, 2) + "]")
	}
	flush()

	var sb strings.Builder
	for i := len(rows) - 1; i >= 0; i-- {
		sb.WriteString(rows[i])
		sb.WriteString("\n")
	}
	return sb.String()
}
