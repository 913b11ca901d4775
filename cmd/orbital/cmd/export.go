package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

// ConfigurationRow is one element in the exported table.
type ConfigurationRow struct {
	Z             int    `json:"z"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Period        int    `json:"period"`
	Configuration string `json:"configuration"`
	CoreNotation  string `json:"core_notation"`
	Observed      string `json:"observed,omitempty"`
	Unpaired      int    `json:"unpaired"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the configuration table",
	Long: `Export the Madelung ground-state configuration of every element up to
--max as JSON, CSV or TSV.

Examples:
  orbital export
  orbital export --format csv -o configurations.csv
  orbital export --format tsv --max 36`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
	exportMax    int
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "", "json", "Output format: json, csv, tsv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (stdout if not specified)")
	exportCmd.Flags().IntVar(&exportMax, "max", elements.Count(), "Highest atomic number to export")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportMax < 1 || exportMax > elements.Count() {
		return fmt.Errorf("--max must be between 1 and %d", elements.Count())
	}
	rows := configurationTable(exportMax)

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var err error
	switch exportFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(rows)
	case "csv":
		err = writeDelimited(out, rows, ',')
	case "tsv":
		err = writeDelimited(out, rows, '\t')
	default:
		return fmt.Errorf("unknown format %q (want json, csv or tsv)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", exportFormat, err)
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d elements to %s\n", len(rows), exportOutput)
	}
	return nil
}

func configurationTable(maxZ int) []ConfigurationRow {
	var rows []ConfigurationRow
	for _, el := range elements.Range(1, maxZ) {
		fills := orbital.FullConfiguration(el.Z)
		row := ConfigurationRow{
			Z:             el.Z,
			Symbol:        el.Symbol,
			Name:          el.Name,
			Period:        el.Period(),
			Configuration: orbital.FormatConfiguration(fills),
			CoreNotation:  elements.CoreNotation(fills),
			Unpaired:      unpaired(fills),
		}
		if exc, ok := elements.Exception(el.Z); ok {
			row.Observed = exc
		}
		rows = append(rows, row)
	}
	return rows
}

// unpaired counts the electrons left single by Hund's rule.
func unpaired(fills []orbital.SubshellFill) int {
	n := 0
	for _, f := range fills {
		orbitals := f.Subshell.Orbitals()
		if f.Electrons <= orbitals {
			n += f.Electrons
		} else {
			n += 2*orbitals - f.Electrons
		}
	}
	return n
}

func writeDelimited(out io.Writer, rows []ConfigurationRow, comma rune) error {
	w := csv.NewWriter(out)
	w.Comma = comma

	header := []string{"z", "symbol", "name", "period", "configuration", "core_notation", "observed", "unpaired"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Z),
			r.Symbol,
			r.Name,
			strconv.Itoa(r.Period),
			r.Configuration,
			r.CoreNotation,
			r.Observed,
			strconv.Itoa(r.Unpaired),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
