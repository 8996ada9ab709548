package scan

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder names every canonical binding set supplies.
const (
	PhSrc          = "src"
	PhReportsDir   = "reports_dir"
	PhReportPrefix = "report_fname_prefix"
	PhType         = "type"
)

const filelistPrefix = "filelist="

// CommandTemplate is an ordered sequence of argument tokens. A token may embed
// one or more {{name}} placeholders, or be a filelist token of the form
// "filelist=<ext>" which expands to one argument per file discovered under the
// source tree. Templates are static configuration, never mutated at runtime.
type CommandTemplate []string

// Bindings maps placeholder names to concrete values. One binding set is built
// per tool invocation and never reused across tools.
type Bindings map[string]string

// NewBindings builds the canonical binding set for one invocation.
func NewBindings(src, reportsDir, reportPrefix, scanType string) Bindings {
	return Bindings{
		PhSrc:          src,
		PhReportsDir:   reportsDir,
		PhReportPrefix: reportPrefix,
		PhType:         scanType,
	}
}

var placeholderPattern = regexp.MustCompile(`\{\{[a-z_]+\}\}`)

// Resolve substitutes bindings into the template and expands filelist tokens
// by discovering matching files under src. Every non-filelist token resolves
// to exactly one argument, so bound values containing whitespace survive
// intact; a filelist token splices zero or more arguments in place. A
// placeholder left without a binding fails resolution.
func (t CommandTemplate) Resolve(b Bindings, src string) ([]string, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("empty command template")
	}
	argv := make([]string, 0, len(t))
	for _, tok := range t {
		if ext, ok := strings.CutPrefix(tok, filelistPrefix); ok {
			argv = append(argv, FindByExtension(src, ext)...)
			continue
		}
		resolved := tok
		for name, value := range b {
			resolved = strings.ReplaceAll(resolved, "{{"+name+"}}", value)
		}
		if left := placeholderPattern.FindString(resolved); left != "" {
			return nil, fmt.Errorf("unbound placeholder %s in token %q", left, tok)
		}
		argv = append(argv, resolved)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("template resolved to an empty command")
	}
	return argv, nil
}

// argvMentions reports whether any resolved argument contains sub. Used to
// decide whether a tool already routes its report to the computed prefix.
func argvMentions(argv []string, sub string) bool {
	for _, a := range argv {
		if strings.Contains(a, sub) {
			return true
		}
	}
	return false
}
