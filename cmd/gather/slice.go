package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/gather/gather"
	"github.com/viant/gather/loc"
	"gopkg.in/yaml.v3"
)

var (
	sliceCell   string
	sliceLines  string
	sliceRules  string
	sliceFormat string
)

var sliceCmd = &cobra.Command{
	Use:   "slice FILE...",
	Short: "Print the code needed to reproduce a cell",
	Long: `Execute every FILE as a cell, then print the gathered program behind the
latest execution of the target cell.

Examples:
  # Gather the code behind the last cell
  gather slice load.py clean.py plot.py

  # Gather the code behind lines 2-3 of clean.py
  gather slice --cell clean.py --lines 2-3 load.py clean.py plot.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSlice,
}

func init() {
	sliceCmd.Flags().StringVar(&sliceCell, "cell", "", "Target cell file (default: the last file)")
	sliceCmd.Flags().StringVar(&sliceLines, "lines", "", "Target line range A-B within the cell (default: whole cell)")
	sliceCmd.Flags().StringVar(&sliceRules, "rules", "", "Slice configuration URL (default: built-in rules)")
	sliceCmd.Flags().StringVar(&sliceFormat, "format", "", "Output format: text or yaml")

	rootCmd.AddCommand(sliceCmd)
}

type cellOutput struct {
	Cell  string `yaml:"cell"`
	Count int    `yaml:"count"`
	Lines []int  `yaml:"lines"`
	Text  string `yaml:"text"`
}

func runSlice(cmd *cobra.Command, args []string) error {
	format := cfg.Output
	if cmd.Flags().Changed("format") {
		format = sliceFormat
	}
	rulesURL := cfg.Rules
	if cmd.Flags().Changed("rules") {
		rulesURL = sliceRules
	}
	seeds, err := parseLines(sliceLines)
	if err != nil {
		return err
	}
	h, err := loadHistory(cmd.Context(), args, rulesURL)
	if err != nil {
		return err
	}
	target, err := h.cell(sliceCell)
	if err != nil {
		return err
	}
	sliced := h.log.SliceLatestExecution(target, seeds)
	if sliced == nil {
		logger.WithField("cell", target.PersistentID()).Info("nothing to gather")
		return nil
	}
	return writeSlice(cmd, sliced, format)
}

func writeSlice(cmd *cobra.Command, sliced *gather.SlicedExecution, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(out, sliced.Text())
		return err
	case "yaml":
		var cells []*cellOutput
		for _, cellSlice := range sliced.CellSlices {
			count, _ := cellSlice.Cell.ExecutionCount()
			cells = append(cells, &cellOutput{
				Cell:  cellSlice.Cell.PersistentID(),
				Count: count,
				Lines: cellSlice.Lines(),
				Text:  cellSlice.TextSliceLines(),
			})
		}
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(cells)
	}
	return fmt.Errorf("unsupported format: %v", format)
}

// parseLines converts "A-B" or "A" into a seed spanning whole lines; empty returns nil
func parseLines(spec string) (*loc.LocationSet, error) {
	if spec == "" {
		return nil, nil
	}
	first, last, found := strings.Cut(spec, "-")
	if !found {
		last = first
	}
	firstLine, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return nil, fmt.Errorf("invalid lines %q: %w", spec, err)
	}
	lastLine, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return nil, fmt.Errorf("invalid lines %q: %w", spec, err)
	}
	location := loc.Location{FirstLine: firstLine, LastLine: lastLine, LastColumn: gather.WholeCell.LastColumn}
	if firstLine < 1 || !location.Valid() {
		return nil, fmt.Errorf("invalid lines %q", spec)
	}
	return loc.NewLocationSet(location), nil
}
