package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReportPrefix returns the canonical report path for toolName without an
// extension, creating reportsDir on demand. Templates append their own
// extension to it. With no reports directory configured, a fresh temporary
// directory holds the prefix; cleanup is left to the operating environment.
func ReportPrefix(toolName, reportsDir string) (string, error) {
	if reportsDir == "" {
		dir, err := os.MkdirTemp("", toolName+"-scan-")
		if err != nil {
			return "", fmt.Errorf("allocate temp report dir: %w", err)
		}
		return filepath.Join(dir, toolName+"-report"), nil
	}
	// MkdirAll is a no-op when the directory already exists.
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("create reports dir %s: %w", reportsDir, err)
	}
	return filepath.Join(reportsDir, toolName+"-report"), nil
}

// ReportFile is ReportPrefix with the extension applied, i.e. the full
// <toolName>-report.<ext> path the owning tool will write.
func ReportFile(toolName, reportsDir, ext string) (string, error) {
	prefix, err := ReportPrefix(toolName, reportsDir)
	if err != nil {
		return "", err
	}
	return prefix + "." + ext, nil
}
