package analyzer

import (
	"github.com/sirupsen/logrus"
)

type Option func(*Analyzer)

// WithRules replaces the built-in rules describing calls that do not modify their arguments
func WithRules(rules ...*Rule) Option {
	return func(a *Analyzer) {
		a.rules = rules
	}
}

// WithAdditionalRules appends rules to the built-in ones
func WithAdditionalRules(rules ...*Rule) Option {
	return func(a *Analyzer) {
		a.rules = append(a.rules, rules...)
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCacheLimit caps the number of cached statement definitions and uses; the cache is cleared when full.
// A limit of zero or less disables the cap.
func WithCacheLimit(limit int) Option {
	return func(a *Analyzer) {
		a.cacheLimit = limit
	}
}
