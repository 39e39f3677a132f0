package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// LineMagicRewriter rewrites one line magic; command is the magic name without '%', args the rest of the line
type LineMagicRewriter func(command, args string) string

// RewriterOption configures a MagicsRewriter
type RewriterOption func(*MagicsRewriter)

// WithLineMagic registers a rewriter for the named line magic
func WithLineMagic(command string, rewriter LineMagicRewriter) RewriterOption {
	return func(r *MagicsRewriter) {
		r.lineMagics[command] = rewriter
	}
}

// MagicsRewriter turns IPython magics and shell escapes into valid Python without changing the line count
type MagicsRewriter struct {
	lineMagics map[string]LineMagicRewriter
}

var assignedMagic = regexp.MustCompile(`^([A-Za-z_][\w.]*(?:\s*,\s*[A-Za-z_][\w.]*)*)\s*=\s*([!%].*)$`)

// NewMagicsRewriter creates a rewriter with time, timeit, prun and pylab support
func NewMagicsRewriter(options ...RewriterOption) *MagicsRewriter {
	ret := &MagicsRewriter{lineMagics: map[string]LineMagicRewriter{
		"time":   keepStatement,
		"timeit": keepStatement,
		"prun":   keepStatement,
		"pylab":  pylab,
	}}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Rewrite returns text with magics rewritten
func (r *MagicsRewriter) Rewrite(text string) string {
	lines := strings.Split(text, "\n")
	if isCellMagic(lines) {
		for i, line := range lines {
			lines[i] = "#" + line
		}
		return strings.Join(lines, "\n")
	}
	quote := ""
	for i, line := range lines {
		if quote == "" {
			lines[i] = r.rewriteLine(line)
		}
		quote = tripleQuoteState(line, quote)
	}
	return strings.Join(lines, "\n")
}

func isCellMagic(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return strings.HasPrefix(trimmed, "%%")
	}
	return false
}

func (r *MagicsRewriter) rewriteLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	if trimmed == "" {
		return line
	}
	switch trimmed[0] {
	case '!':
		return indent + "#" + trimmed[1:]
	case '%':
		command, args := splitMagic(strings.TrimLeft(trimmed, "%"))
		if rewriter, ok := r.lineMagics[command]; ok {
			return indent + rewriter(command, args)
		}
		return indent + "#" + trimmed[1:]
	}
	if match := assignedMagic.FindStringSubmatch(trimmed); match != nil {
		return indent + match[1] + " = None  # " + match[2][1:]
	}
	return line
}

func splitMagic(magic string) (string, string) {
	index := strings.IndexAny(magic, " \t")
	if index == -1 {
		return magic, ""
	}
	return magic[:index], strings.TrimSpace(magic[index+1:])
}

// keepStatement drops the magic and its options and keeps the profiled statement
func keepStatement(command, args string) string {
	fields := strings.Fields(args)
	skip := 0
	for skip < len(fields) && strings.HasPrefix(fields[skip], "-") {
		option := fields[skip]
		skip++
		if (option == "-n" || option == "-r") && skip < len(fields) {
			skip++
		}
	}
	if skip >= len(fields) {
		return "# " + command + " " + args
	}
	statement := args
	for _, field := range fields[:skip] {
		statement = strings.TrimSpace(strings.TrimPrefix(statement, field))
	}
	return statement
}

// pylab defines np and plt through a def annotation
func pylab(command, args string) string {
	width := len(command) + 1
	if args != "" {
		width += len(args) + 1
	}
	return fmt.Sprintf(`'defs: [{"name": "np", "pos": [[0, 0], [0, %d]]}, {"name": "plt", "pos": [[0, 0], [0, %d]]}]'`, width, width)
}

// tripleQuoteState returns the triple quote delimiter still open after line, or ""
func tripleQuoteState(line, open string) string {
	for i := 0; i+3 <= len(line); {
		token := line[i : i+3]
		switch {
		case open == "" && line[i] == '#':
			return open
		case open != "" && token == open:
			open = ""
			i += 3
		case open == "" && (token == `"""` || token == `'''`):
			open = token
			i += 3
		default:
			i++
		}
	}
	return open
}
