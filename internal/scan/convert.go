package scan

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Converter normalizes a tool's native report into the common interchange
// format. Implementations own the interchange schema; this system only routes
// tool metadata and file paths to them.
type Converter interface {
	Convert(tool string, args []string, src, reportFile, convertFile string, auxFiles []string) error
}

// CommandConverter invokes an external normalizer binary once per convertible
// sub-scan. The binary receives the tool name, its resolved arguments, the
// source directory, the native report path, and the normalized target path.
type CommandConverter struct {
	Command string
}

func (c CommandConverter) Convert(tool string, args []string, src, reportFile, convertFile string, auxFiles []string) error {
	bin := c.Command
	if bin == "" {
		bin = "sast-scan-convert"
	}
	argv := []string{
		"--tool", tool,
		"--src", src,
		"--report-file", reportFile,
		"--convert-file", convertFile,
	}
	if len(args) > 0 {
		argv = append(argv, "--tool-args", strings.Join(args, " "))
	}
	for _, f := range auxFiles {
		argv = append(argv, "--aux-file", f)
	}
	cmd := exec.Command(bin, argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("converter %s: %w", bin, err)
	}
	return nil
}
