package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var scanLog = log.NewWithOptions(os.Stderr, log.Options{Prefix: "scan"})

// ToolEnv holds environment-sourced tool locations consumed by pipeline
// steps. A missing value required by a step fails that step and that step
// only.
type ToolEnv struct {
	Home         string
	PMDCmd       string
	SpotBugsHome string
	AppSrcDir    string
}

// Options carries the per-run inputs every sub-scan shares.
type Options struct {
	Src        string
	ReportsDir string
	Convert    bool
	Converter  Converter
	Ignore     IgnoreSet
	ToolEnv    ToolEnv
}

// Pipeline is an ordered sequence of sub-scan steps for one ecosystem. Steps
// have no data dependency on one another; order only shapes human-readable
// output.
type Pipeline func(ctx context.Context, opts Options) error

// Dispatch routes a scan type to its registry entry. An empty type is a no-op
// (type selection happens upstream); a type present in neither registry form
// is a configuration error that terminates the run.
func Dispatch(ctx context.Context, reg *Registry, scanType ScanType, opts Options) error {
	if scanType == "" {
		return nil
	}
	if p, ok := reg.Pipeline(scanType); ok {
		scanLog.Info("running pipeline", "type", scanType)
		return p(ctx, opts)
	}
	tmpl, ok := reg.Template(scanType)
	if !ok {
		return fmt.Errorf("unknown scan type %q, registered types: %v", scanType, reg.Types())
	}
	return runTemplate(ctx, string(scanType), tmpl, opts)
}

// runTemplate resolves and executes a single-tool template. When the resolved
// command does not route output to the computed report prefix itself, merged
// stdout/stderr is redirected to a report file whose extension is guessed
// from the command text.
func runTemplate(ctx context.Context, tool string, tmpl CommandTemplate, opts Options) error {
	prefix, err := ReportPrefix(tool, opts.ReportsDir)
	if err != nil {
		return err
	}
	argv, err := tmpl.Resolve(NewBindings(opts.Src, opts.ReportsDir, prefix, tool), opts.Src)
	if err != nil {
		return err
	}
	scanLog.Info("running scan", "type", tool, "tool", argv[0])
	if argvMentions(argv, prefix) {
		Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
		return nil
	}
	out, err := os.Create(prefix + "." + guessExtension(argv))
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer out.Close()
	Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src, Out: out})
	return nil
}

func guessExtension(argv []string) string {
	joined := strings.Join(argv, " ")
	switch {
	case strings.Contains(joined, "sarif"):
		return "sarif"
	case strings.Contains(joined, "json"):
		return "json"
	default:
		return "out"
	}
}

// PythonPipeline generates a dependency BOM, runs the bandit SAST scan, and
// audits declared dependencies. The audit is a no-op when the tree has no
// dependency manifests.
func PythonPipeline(ctx context.Context, opts Options) error {
	if err := runBom(ctx, opts); err != nil {
		return err
	}

	prefix, err := ReportPrefix("bandit", opts.ReportsDir)
	if err != nil {
		return err
	}
	tmpl := CommandTemplate{
		"bandit", "-r", "-a", "vuln", "-ii", "-ll",
		"-x", opts.Ignore.CommaList(),
		"-o", "{{report_fname_prefix}}.json", "-f", "json", "{{src}}",
	}
	argv, err := tmpl.Resolve(NewBindings(opts.Src, opts.ReportsDir, prefix, string(TypePython)), opts.Src)
	if err != nil {
		return err
	}
	scanLog.Info("running scan", "type", "python", "tool", "bandit")
	Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
	maybeConvert(opts, "bandit", argv[1:], prefix+".json", nil)

	reqFiles := findPythonRequirements(opts.Src)
	if len(reqFiles) == 0 {
		scanLog.Info("no python dependency manifests found, skipping audit")
		return nil
	}
	prefix, err = ReportPrefix("ossaudit", opts.ReportsDir)
	if err != nil {
		return err
	}
	auditArgv := []string{"ossaudit"}
	for _, f := range reqFiles {
		auditArgv = append(auditArgv, "-f", f)
	}
	out, err := os.Create(prefix + ".json")
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	scanLog.Info("running scan", "type", "python", "tool", "ossaudit", "manifests", len(reqFiles))
	Execute(ctx, ExecRequest{Argv: auditArgv, Dir: opts.Src, Out: out})
	out.Close()
	maybeConvert(opts, "ossaudit", auditArgv[1:], prefix+".json", reqFiles)
	return nil
}

// pythonManifestNames are the dependency manifests the audit step accepts.
var pythonManifestNames = []string{
	"requirements.txt",
	"requirements-dev.txt",
	"Pipfile",
	"poetry.lock",
}

func findPythonRequirements(src string) []string {
	var out []string
	for _, name := range pythonManifestNames {
		out = append(out, FindByName(src, name)...)
	}
	return out
}

// JavaPipeline generates a BOM, then runs PMD style checks, SpotBugs security
// bugs, and an OWASP dependency-vulnerability scan. PMD and SpotBugs locations
// come from the environment; a missing location fails its step and the
// pipeline moves on.
func JavaPipeline(ctx context.Context, opts Options) error {
	if err := runBom(ctx, opts); err != nil {
		return err
	}

	if opts.ToolEnv.PMDCmd == "" {
		scanLog.Error("PMD_CMD is not set, skipping pmd scan")
	} else {
		prefix, err := ReportPrefix("pmd", opts.ReportsDir)
		if err != nil {
			return err
		}
		srcDir := opts.ToolEnv.AppSrcDir
		if srcDir == "" {
			srcDir = opts.Src
		}
		argv := append(strings.Fields(opts.ToolEnv.PMDCmd),
			"-no-cache", "--failOnViolation", "false",
			"-language", "java",
			"-d", srcDir,
			"-r", prefix+".csv", "-f", "csv",
			"-R", "rulesets/java/quickstart.xml",
		)
		scanLog.Info("running scan", "type", "java", "tool", "pmd")
		Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
		maybeConvert(opts, "pmd", argv[1:], prefix+".csv", nil)
	}

	if opts.ToolEnv.SpotBugsHome == "" {
		scanLog.Error("SPOTBUGS_HOME is not set, skipping spotbugs scan")
	} else {
		prefix, err := ReportPrefix("spotbugs", opts.ReportsDir)
		if err != nil {
			return err
		}
		argv := []string{
			"java", "-jar", filepath.Join(opts.ToolEnv.SpotBugsHome, "lib", "spotbugs.jar"),
			"-textui", "-quiet", "-medium",
			"-xml:withMessages", "-effort:max", "-nested:false",
			"-output", prefix + ".xml",
			opts.Src,
		}
		scanLog.Info("running scan", "type", "java", "tool", "spotbugs")
		Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
		maybeConvert(opts, "spotbugs", argv[1:], prefix+".xml", nil)
	}

	prefix, err := ReportPrefix("dependency-check", opts.ReportsDir)
	if err != nil {
		return err
	}
	argv := []string{
		"dependency-check",
		"--scan", opts.Src,
		"--format", "json",
		"--out", prefix + ".json",
	}
	if opts.ToolEnv.Home != "" {
		argv = append(argv, "--data", filepath.Join(opts.ToolEnv.Home, ".cache", "dependency-check"))
	}
	scanLog.Info("running scan", "type", "java", "tool", "dependency-check")
	Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
	maybeConvert(opts, "dependency-check", argv[1:], prefix+".json", nil)
	return nil
}

// NodePipeline generates a BOM, runs the njsscan SAST scan, and checks for
// known-vulnerable libraries with retire.
func NodePipeline(ctx context.Context, opts Options) error {
	if err := runBom(ctx, opts); err != nil {
		return err
	}

	prefix, err := ReportPrefix("njsscan", opts.ReportsDir)
	if err != nil {
		return err
	}
	argv := []string{"njsscan", "--json", "-o", prefix + ".json", opts.Src}
	scanLog.Info("running scan", "type", "nodejs", "tool", "njsscan")
	Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
	maybeConvert(opts, "njsscan", argv[1:], prefix+".json", nil)

	prefix, err = ReportPrefix("retire", opts.ReportsDir)
	if err != nil {
		return err
	}
	argv = []string{
		"retire",
		"--outputformat", "json",
		"--outputpath", prefix + ".json",
		"--path", opts.Src,
	}
	if opts.ToolEnv.Home != "" {
		argv = append(argv, "--cachedir", filepath.Join(opts.ToolEnv.Home, ".cache", "retire"))
	}
	scanLog.Info("running scan", "type", "nodejs", "tool", "retire")
	Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
	maybeConvert(opts, "retire", argv[1:], prefix+".json", nil)
	return nil
}

// runBom produces the CycloneDX dependency BOM every pipeline starts with.
func runBom(ctx context.Context, opts Options) error {
	prefix, err := ReportPrefix("bom", opts.ReportsDir)
	if err != nil {
		return err
	}
	tmpl := CommandTemplate{"cdxgen", "-r", "-o", "{{report_fname_prefix}}.xml", "{{src}}"}
	argv, err := tmpl.Resolve(NewBindings(opts.Src, opts.ReportsDir, prefix, string(TypeBom)), opts.Src)
	if err != nil {
		return err
	}
	scanLog.Info("running scan", "type", "bom", "tool", "cdxgen")
	Execute(ctx, ExecRequest{Argv: argv, Dir: opts.Src})
	return nil
}

// maybeConvert invokes the external Converter for one finished sub-scan.
// Conversion failure is logged, never fatal, mirroring tool launch failure.
func maybeConvert(opts Options, tool string, args []string, reportFile string, auxFiles []string) {
	if !opts.Convert || opts.Converter == nil {
		return
	}
	convertFile := strings.TrimSuffix(reportFile, filepath.Ext(reportFile)) + ".sarif"
	if err := opts.Converter.Convert(tool, args, opts.Src, reportFile, convertFile, auxFiles); err != nil {
		scanLog.Warn("report conversion failed", "tool", tool, "err", err)
	}
}
