package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/urfave/cli/v2"

	"github.com/your-org/polyscan/internal/config"
	"github.com/your-org/polyscan/internal/scan"
	"github.com/your-org/polyscan/internal/ui"
)

const (
	appName    = "polyscan"
	appVersion = "1.2.0"
)

func Execute() error {
	app := &cli.App{
		Name:    appName,
		Version: appVersion,
		Usage:   "Multi-ecosystem static analysis orchestrator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "src",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Source directory to scan",
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"o", "out_dir"},
				Usage:   "Reports directory (default: ephemeral per-tool files)",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Scan type override (e.g. python, java, nodejs, credscan)",
			},
			&cli.BoolFlag{
				Name:  "convert",
				Value: true,
				Usage: "Normalize native reports via the external converter",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
			},
		},
		Action: run,
	}
	return app.Run(os.Args)
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	src := c.String("src")
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source directory %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", src)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	outDir := c.String("out-dir")
	if outDir == "" {
		outDir = cfg.ReportsDir
	}

	var types []scan.ScanType
	if override := c.String("type"); override != "" {
		types = []scan.ScanType{scan.ScanType(override)}
	} else {
		types = scan.DetectTypes(src)
		if len(types) == 0 {
			log.Warn("no recognizable project types under source tree", "src", src)
		}
	}

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	ui.ShowBanner(appVersion, src, names)
	logHostInfo()

	reg := scan.NewRegistry()
	if cfg.ToolsFile != "" {
		if err := reg.LoadOverrides(cfg.ToolsFile); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := scan.Options{
		Src:        src,
		ReportsDir: outDir,
		Convert:    c.Bool("convert"),
		Converter:  scan.CommandConverter{Command: cfg.Converter.Command},
		Ignore:     scan.IgnoreSet(cfg.IgnoreDirs),
		ToolEnv: scan.ToolEnv{
			Home:         cfg.ToolEnv.Home,
			PMDCmd:       cfg.ToolEnv.PMDCmd,
			SpotBugsHome: cfg.ToolEnv.SpotBugsHome,
			AppSrcDir:    cfg.ToolEnv.AppSrcDir,
		},
	}

	for _, t := range types {
		if err := scan.Dispatch(ctx, reg, t, opts); err != nil {
			return err
		}
	}

	if outDir != "" {
		ui.ListReports(outDir)
	}
	return nil
}

// logHostInfo records the host resources a run has to work with. Purely
// informational; scheduling is strictly sequential.
func logHostInfo() {
	cores, err := cpu.Counts(true)
	if err != nil {
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	log.Debug("host resources", "cores", cores, "mem_available_mb", vm.Available/1024/1024)
}
