package config

import (
	"slices"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Converter.Command != "sast-scan-convert" {
		t.Errorf("default converter command: %q", cfg.Converter.Command)
	}
	if !slices.Contains(cfg.IgnoreDirs, "node_modules") || !slices.Contains(cfg.IgnoreDirs, ".git") {
		t.Errorf("ignore defaults incomplete: %v", cfg.IgnoreDirs)
	}
	if cfg.ReportsDir != "" {
		t.Errorf("reports dir should default to ephemeral, got %q", cfg.ReportsDir)
	}
}

func TestLoadBindsToolEnv(t *testing.T) {
	t.Setenv("PMD_CMD", "/opt/pmd/bin/run.sh pmd")
	t.Setenv("SPOTBUGS_HOME", "/opt/spotbugs")
	t.Setenv("APP_SRC_DIR", "/workspace/app")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ToolEnv.PMDCmd != "/opt/pmd/bin/run.sh pmd" {
		t.Errorf("PMD_CMD not bound: %q", cfg.ToolEnv.PMDCmd)
	}
	if cfg.ToolEnv.SpotBugsHome != "/opt/spotbugs" {
		t.Errorf("SPOTBUGS_HOME not bound: %q", cfg.ToolEnv.SpotBugsHome)
	}
	if cfg.ToolEnv.AppSrcDir != "/workspace/app" {
		t.Errorf("APP_SRC_DIR not bound: %q", cfg.ToolEnv.AppSrcDir)
	}
}
