package scan

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ScanType identifies the ecosystem a registry entry applies to. It is chosen
// once per run and never changes.
type ScanType string

const (
	TypeAnsible    ScanType = "ansible"
	TypeAWS        ScanType = "aws"
	TypeBash       ScanType = "bash"
	TypeBom        ScanType = "bom"
	TypeCredScan   ScanType = "credscan"
	TypeGolang     ScanType = "golang"
	TypeJava       ScanType = "java"
	TypeKotlin     ScanType = "kotlin"
	TypeKubernetes ScanType = "kubernetes"
	TypeNodejs     ScanType = "nodejs"
	TypePython     ScanType = "python"
	TypeRust       ScanType = "rust"
	TypeTerraform  ScanType = "terraform"
	TypeYaml       ScanType = "yaml"
)

// Registry maps each scan type to either a single command template or a
// multi-step pipeline. Every valid mapping is enumerated here; looking up
// anything else is a configuration error surfaced by Dispatch.
type Registry struct {
	templates map[ScanType]CommandTemplate
	pipelines map[ScanType]Pipeline
}

// NewRegistry returns the registry with the built-in tool table.
func NewRegistry() *Registry {
	return &Registry{
		templates: map[ScanType]CommandTemplate{
			TypeAnsible:    {"ansible-lint", "--parseable-severity", "filelist=yml"},
			TypeAWS:        {"cfn-lint", "-f", "json", "-e", "filelist=yaml"},
			TypeBash:       {"shellcheck", "-a", "--shell=bash", "-f", "json", "-S", "error", "filelist=sh"},
			TypeBom:        {"cdxgen", "-r", "-o", "{{report_fname_prefix}}.xml", "{{src}}"},
			TypeCredScan:   {"gitleaks", "detect", "--source={{src}}", "--report-format=json", "--report-path={{report_fname_prefix}}.json"},
			TypeGolang:     {"gosec", "-fmt=json", "-out={{report_fname_prefix}}.json", "{{src}}/..."},
			TypeKotlin:     {"detekt", "--input", "{{src}}", "--report", "xml:{{report_fname_prefix}}.xml"},
			TypeKubernetes: {"kube-score", "score", "filelist=yaml"},
			TypeRust:       {"cargo-audit", "audit", "-q", "--json", "-c", "never"},
			TypeTerraform:  {"tfsec", "--format", "json", "--no-color", "{{src}}"},
			TypeYaml:       {"yamllint", "-f", "parsable", "filelist=yaml", "filelist=yml"},
		},
		pipelines: map[ScanType]Pipeline{
			TypePython: PythonPipeline,
			TypeJava:   JavaPipeline,
			TypeNodejs: NodePipeline,
		},
	}
}

// Template returns the single-tool template for t, if one is registered.
func (r *Registry) Template(t ScanType) (CommandTemplate, bool) {
	tmpl, ok := r.templates[t]
	return tmpl, ok
}

// Pipeline returns the multi-step pipeline for t, if one is registered.
func (r *Registry) Pipeline(t ScanType) (Pipeline, bool) {
	p, ok := r.pipelines[t]
	return p, ok
}

// Templates returns a copy of the template table, keyed by scan type.
func (r *Registry) Templates() map[ScanType]CommandTemplate {
	out := make(map[ScanType]CommandTemplate, len(r.templates))
	for t, tmpl := range r.templates {
		out[t] = tmpl
	}
	return out
}

// Types returns every registered scan type, sorted for stable display.
func (r *Registry) Types() []ScanType {
	out := make([]ScanType, 0, len(r.templates)+len(r.pipelines))
	for t := range r.templates {
		out = append(out, t)
	}
	for t := range r.pipelines {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LoadOverrides merges template definitions from a YAML file mapping scan
// types to token lists. Overrides replace built-in templates of the same
// type; pipelines cannot be overridden from a file.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tools file %s: %w", path, err)
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse tools file %s: %w", path, err)
	}
	for name, tokens := range raw {
		if len(tokens) == 0 {
			return fmt.Errorf("tools file %s: type %q has an empty command", path, name)
		}
		r.templates[ScanType(name)] = CommandTemplate(tokens)
	}
	return nil
}
