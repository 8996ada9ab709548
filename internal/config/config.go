package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup and passed
// explicitly to the components that need it.
type Config struct {
	ReportsDir string
	ToolsFile  string
	Converter  ConverterConfig
	ToolEnv    ToolEnvConfig
	IgnoreDirs []string
}

// ConverterConfig locates the external report normalizer.
type ConverterConfig struct {
	Command string
}

// ToolEnvConfig holds environment-sourced tool locations. HOME feeds
// dependency-manager cache paths; the rest locate Java tooling.
type ToolEnvConfig struct {
	Home         string
	PMDCmd       string
	SpotBugsHome string
	AppSrcDir    string
}

func defaultIgnoreDirs() []string {
	return []string{
		".git", ".svn", ".mvn", ".idea", ".vscode",
		"node_modules", "vendor", "bower_components",
		"dist", "build", "bin", "obj",
		"venv", ".venv", "__pycache__", ".tox",
	}
}

// Load reads an optional polyscan.yaml from the working directory or
// $HOME/.polyscan, applies defaults, and binds tool-location environment
// variables. A missing config file is not an error; a malformed one is.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("polyscan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".polyscan"))
	}

	v.SetDefault("reports.directory", "")
	v.SetDefault("tools.file", "")
	v.SetDefault("converter.command", "sast-scan-convert")
	v.SetDefault("ignore.dirs", defaultIgnoreDirs())

	_ = v.BindEnv("toolenv.home", "HOME")
	_ = v.BindEnv("toolenv.pmd_cmd", "PMD_CMD")
	_ = v.BindEnv("toolenv.spotbugs_home", "SPOTBUGS_HOME")
	_ = v.BindEnv("toolenv.app_src_dir", "APP_SRC_DIR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		ReportsDir: v.GetString("reports.directory"),
		ToolsFile:  v.GetString("tools.file"),
		Converter: ConverterConfig{
			Command: v.GetString("converter.command"),
		},
		ToolEnv: ToolEnvConfig{
			Home:         v.GetString("toolenv.home"),
			PMDCmd:       v.GetString("toolenv.pmd_cmd"),
			SpotBugsHome: v.GetString("toolenv.spotbugs_home"),
			AppSrcDir:    v.GetString("toolenv.app_src_dir"),
		},
		IgnoreDirs: v.GetStringSlice("ignore.dirs"),
	}, nil
}
