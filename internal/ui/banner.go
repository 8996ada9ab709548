package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// ShowBanner prints the startup banner with the resolved scan target and the
// scan types about to run. Styling is dropped when stdout is not a terminal.
func ShowBanner(version, src string, types []string) {
	title := fmt.Sprintf("polyscan %s", version)
	body := fmt.Sprintf("scanning %s", src)
	if len(types) > 0 {
		body += fmt.Sprintf(" (%s)", strings.Join(types, ", "))
	}
	if styled {
		fmt.Println(titleStyle.Render(title))
		fmt.Println(dimStyle.Render(body))
		return
	}
	fmt.Println(title)
	fmt.Println(body)
}

// ListReports prints the files present in the reports directory after a run.
func ListReports(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return
	}
	header := fmt.Sprintf("reports in %s:", dir)
	if styled {
		header = titleStyle.Render(header)
	}
	fmt.Println(header)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		line := "  " + e.Name()
		if styled {
			line = dimStyle.Render(line)
		}
		fmt.Println(line)
	}
}
