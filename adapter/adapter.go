// Package adapter holds the boundaries to the external stage tools. Each
// adapter follows the same file-based contract: the workspace carries the
// inputs, the tool is invoked as a process, and the workspace carries the
// outputs. Diagnostic output is captured so a failing tool's stderr reaches
// the job record verbatim.
package adapter

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// StageError wraps a failed tool invocation together with its captured
// combined output.
type StageError struct {
	Tool   string
	Output string
	Err    error
}

func (e *StageError) Error() string {
	if diag := e.Diagnostic(); diag != "" {
		return fmt.Sprintf("%s failed: %s", e.Tool, diag)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the tool's captured output when present, else the
// underlying error text.
func (e *StageError) Diagnostic() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return out
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &StageError{
			Tool:   name + " " + strings.Join(args, " "),
			Output: string(output),
			Err:    err,
		}
	}
	return nil
}
