package gather

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/gather/analyzer"
	"github.com/viant/gather/parser"
)

// Option represents an execution log slicer option
type Option func(s *ExecutionLogSlicer)

// WithAnalyzer sets the dataflow analyzer
func WithAnalyzer(dataflow *analyzer.Analyzer) Option {
	return func(s *ExecutionLogSlicer) {
		s.analyzer = dataflow
	}
}

// WithClock sets the source of execution times
func WithClock(clock func() time.Time) Option {
	return func(s *ExecutionLogSlicer) {
		s.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *ExecutionLogSlicer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser sets the parser
func WithParser(p *parser.Parser) Option {
	return func(s *ExecutionLogSlicer) {
		s.parser = p
	}
}

// WithRewriter sets the magics rewriter applied before parsing
func WithRewriter(rewriter *parser.MagicsRewriter) Option {
	return func(s *ExecutionLogSlicer) {
		s.rewriter = rewriter
	}
}
