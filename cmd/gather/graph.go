package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/viant/gather/analyzer"
	"gopkg.in/yaml.v3"
)

var graphCell string

var graphCmd = &cobra.Command{
	Use:   "graph FILE...",
	Short: "Print the dataflow graph behind a cell as YAML",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphCell, "cell", "", "Target cell file (default: the last file)")
	rootCmd.AddCommand(graphCmd)
}

// yamlExporter writes graphs as YAML documents
type yamlExporter struct {
	writer io.Writer
}

func (e *yamlExporter) Export(graph *analyzer.IRGraph) error {
	encoder := yaml.NewEncoder(e.writer)
	defer encoder.Close()
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	exporter := &yamlExporter{writer: cmd.OutOrStdout()}
	h, err := loadHistory(cmd.Context(), args, cfg.Rules, analyzer.WithGraphExporter(exporter))
	if err != nil {
		return err
	}
	target, err := h.cell(graphCell)
	if err != nil {
		return err
	}
	result := h.log.Dataflow(target)
	if result == nil {
		logger.WithField("cell", target.PersistentID()).Info("nothing to analyze")
		return nil
	}
	return h.dataflow.Export(result)
}
