package scan

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

var execLog = log.NewWithOptions(os.Stderr, log.Options{Prefix: "exec"})

// ExecRequest is one concrete process invocation: an argument vector, a
// working directory, and an output sink. A nil Out inherits the
// orchestrator's own stdout/stderr; otherwise stdout and stderr are merged
// into the given file.
type ExecRequest struct {
	Argv []string
	Dir  string
	Out  *os.File
}

// Execute runs the request and waits for the process to exit. Exit status is
// deliberately not inspected: a tool that runs and fails still leaves whatever
// report it managed to write, and the run moves on. Only a failure to launch
// at all is reported, and even that never aborts the caller.
func Execute(ctx context.Context, req ExecRequest) {
	if len(req.Argv) == 0 {
		execLog.Warn("empty command, nothing to run")
		return
	}
	cmd := exec.CommandContext(ctx, req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir
	if req.Out != nil {
		cmd.Stdout = req.Out
		cmd.Stderr = req.Out
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	execLog.Debug("running", "cmd", strings.Join(req.Argv, " "), "dir", req.Dir)
	if err := cmd.Start(); err != nil {
		execLog.Error("unable to launch tool", "tool", req.Argv[0], "err", err)
		return
	}
	_ = cmd.Wait()
}
