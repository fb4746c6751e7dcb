package system

import (
	"bytes"
	"io"
	"os/exec"

	"setupdeps/pkg/runner"
)

// CommandRunner is re-exported from pkg/runner so callers only import system.
type CommandRunner = runner.CommandRunner

// LiveCommandRunner runs commands on the live system.
//
// Stdout and Stderr are handled independently: a set writer receives that
// stream as it is produced, an unset one is captured and returned by Run.
// With neither set, Run returns the combined output.
type LiveCommandRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command and waits for it to exit.
func (r *LiveCommandRunner) Run(name string, args ...string) ([]byte, error) {
	var captured bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = writerOr(r.Stdout, &captured)
	cmd.Stderr = writerOr(r.Stderr, &captured)
	err := cmd.Run()
	return captured.Bytes(), err
}

func writerOr(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
