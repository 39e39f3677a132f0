package analyzer

import (
	"context"
	_ "embed"
	"fmt"
	"github.com/viant/afs"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
	"regexp"
	"strconv"
)

//go:embed rules.yaml
var defaultRules []byte

// rulesMajorVersion is the only rules document major version supported
const rulesMajorVersion = "v1"

// Exemption names what a call is known not to modify: the receiver, all arguments,
// a positional argument or a keyword argument. A nil Position exempts no positional argument.
type Exemption struct {
	Object    bool
	Arguments bool
	Position  *int
	Keyword   string
}

// AtPosition returns an exemption of the positional argument at position
func AtPosition(position int) Exemption {
	return Exemption{Position: &position}
}

// UnmarshalYAML decodes OBJECT, ARGUMENTS, a position or a keyword name
func (e *Exemption) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid exemption at line %d: expected scalar", value.Line)
	}
	if value.ShortTag() == "!!int" {
		position, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("invalid exemption position %q: %w", value.Value, err)
		}
		e.Position = &position
		return nil
	}
	switch value.Value {
	case "OBJECT":
		e.Object = true
	case "ARGUMENTS":
		e.Arguments = true
	default:
		e.Keyword = value.Value
	}
	return nil
}

// MarshalYAML encodes the exemption in its document form
func (e Exemption) MarshalYAML() (interface{}, error) {
	switch {
	case e.Object:
		return "OBJECT", nil
	case e.Arguments:
		return "ARGUMENTS", nil
	case e.Keyword != "":
		return e.Keyword, nil
	case e.Position != nil:
		return *e.Position, nil
	}
	return nil, fmt.Errorf("empty exemption")
}

// Rule tells which parts of a call to a matching function do not get modified
type Rule struct {
	ObjectName    string      `yaml:"objectName,omitempty"`
	FunctionName  string      `yaml:"functionName"`
	DoesNotModify []Exemption `yaml:"doesNotModify"`
	objectExpr    *regexp.Regexp
	functionExpr  *regexp.Regexp
}

// Init compiles rule patterns
func (r *Rule) Init() error {
	var err error
	if r.FunctionName == "" {
		return fmt.Errorf("rule function name was empty")
	}
	if r.functionExpr, err = regexp.Compile(r.FunctionName); err != nil {
		return fmt.Errorf("invalid function name pattern %q: %w", r.FunctionName, err)
	}
	if r.ObjectName != "" {
		if r.objectExpr, err = regexp.Compile(r.ObjectName); err != nil {
			return fmt.Errorf("invalid object name pattern %q: %w", r.ObjectName, err)
		}
	}
	return nil
}

// Matches returns true if the rule applies to a call of functionName on objectName
func (r *Rule) Matches(objectName, functionName string) bool {
	if r.functionExpr == nil || !r.functionExpr.MatchString(functionName) {
		return false
	}
	if r.objectExpr == nil {
		return true
	}
	return objectName != "" && r.objectExpr.MatchString(objectName)
}

// Rules is a versioned rules document
type Rules struct {
	Version string  `yaml:"version"`
	Rules   []*Rule `yaml:"rules"`
}

// ParseRules decodes and validates a rules document
func ParseRules(data []byte) ([]*Rule, error) {
	document := &Rules{}
	if err := yaml.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	if !semver.IsValid(document.Version) {
		return nil, fmt.Errorf("invalid rules version: %q", document.Version)
	}
	if major := semver.Major(document.Version); major != rulesMajorVersion {
		return nil, fmt.Errorf("unsupported rules version: %v, expected %v", document.Version, rulesMajorVersion)
	}
	for i, rule := range document.Rules {
		if err := rule.Init(); err != nil {
			return nil, fmt.Errorf("invalid rule %d: %w", i, err)
		}
	}
	return document.Rules, nil
}

// LoadRules loads a rules document from URL
func LoadRules(ctx context.Context, fs afs.Service, URL string) ([]*Rule, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules %v: %w", URL, err)
	}
	return ParseRules(data)
}

// DefaultRules returns the built-in rules
func DefaultRules() []*Rule {
	rules, err := ParseRules(defaultRules)
	if err != nil {
		panic(err)
	}
	return rules
}

// exemptions collects what calls of functionName on objectName do not modify
func exemptions(rules []*Rule, objectName, functionName string) []Exemption {
	var result []Exemption
	for _, rule := range rules {
		if rule.Matches(objectName, functionName) {
			result = append(result, rule.DoesNotModify...)
		}
	}
	return result
}
