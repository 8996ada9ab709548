package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/your-org/polyscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Error("scan run failed", "err", err)
		os.Exit(1)
	}
}
