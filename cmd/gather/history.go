package main

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/gather"
)

var fs = afs.New()

type history struct {
	log      *gather.ExecutionLogSlicer
	dataflow *analyzer.Analyzer
	cells    []*gather.NotebookCell
	urls     []string
}

// cell returns the cell read from URL, or the last cell when URL is empty
func (h *history) cell(URL string) (*gather.NotebookCell, error) {
	if URL == "" {
		return h.cells[len(h.cells)-1], nil
	}
	for i := len(h.urls) - 1; i >= 0; i-- {
		if h.urls[i] == URL {
			return h.cells[i], nil
		}
	}
	return nil, fmt.Errorf("cell %v is not part of the history", URL)
}

// loadHistory executes every file in order, using options for the analyzer
func loadHistory(ctx context.Context, URLs []string, rulesURL string, options ...analyzer.Option) (*history, error) {
	if len(URLs) == 0 {
		return nil, fmt.Errorf("at least one cell file is required")
	}
	if rulesURL != "" {
		rules, err := analyzer.LoadRules(ctx, fs, rulesURL)
		if err != nil {
			return nil, err
		}
		options = append(options, analyzer.WithRules(rules...))
	}
	options = append(options, analyzer.WithLogger(logger))
	dataflow := analyzer.New(options...)
	ret := &history{
		log:      gather.New(gather.WithAnalyzer(dataflow), gather.WithLogger(logger)),
		dataflow: dataflow,
		urls:     URLs,
	}
	for i, URL := range URLs {
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to read cell %v: %w", URL, err)
		}
		cell := gather.NewCell(string(data), gather.WithPersistentID(URL), gather.WithExecutionCount(i+1))
		ret.log.LogExecution(ctx, cell)
		ret.cells = append(ret.cells, cell)
	}
	return ret, nil
}
