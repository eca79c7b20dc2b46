// Package executor runs LakeXpress commands and records their outcomes.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"evalgo.org/lakeservice/internal/domain"
)

// DefaultTimeout bounds a single LakeXpress execution. Exports of large
// schemas routinely run for many minutes, so the default is generous.
const DefaultTimeout = 3600 * time.Second

// Result holds the outcome of one LakeXpress execution.
type Result struct {
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Duration time.Duration `json:"duration"`
	LogFile  string        `json:"log_file,omitempty"`
}

// Success reports whether the command exited cleanly.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes LakeXpress argument vectors as subprocesses.
type Runner struct {
	timeout time.Duration
	logDir  string
}

// NewRunner creates a runner. A zero timeout falls back to DefaultTimeout;
// an empty logDir disables per-run log files.
func NewRunner(timeout time.Duration, logDir string) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout, logDir: logDir}
}

// Run executes the given argument vector and captures its output. The first
// token is the binary path. A non-zero exit is not an error; launch failures
// and timeouts return a *domain.ExecutionError.
func (r *Runner) Run(ctx context.Context, tokens []string) (*Result, error) {
	if len(tokens) == 0 {
		return nil, domain.NewExecutionError("empty command", false, nil)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, tokens[0], tokens[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return nil, domain.NewExecutionError(
			fmt.Sprintf("execution timed out after %s", r.timeout), true, err)
	}

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, domain.NewExecutionError(
				fmt.Sprintf("failed to launch %s", tokens[0]), false, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	if r.logDir != "" {
		if path, err := r.saveLog(tokens, result); err == nil {
			result.LogFile = path
		}
	}

	return result, nil
}

// saveLog writes a per-run log file into the configured log directory.
// Failures here never fail the run itself.
func (r *Runner) saveLog(tokens []string, result *Result) (string, error) {
	if err := os.MkdirAll(r.logDir, 0755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(r.logDir, fmt.Sprintf("lakexpress_%s.log", timestamp))

	separator := strings.Repeat("=", 80)
	var b strings.Builder
	b.WriteString("LakeXpress Execution Log\n")
	b.WriteString(separator + "\n\n")
	b.WriteString("Timestamp: " + time.Now().Format(time.RFC3339) + "\n")
	fmt.Fprintf(&b, "Duration: %.2f seconds\n", result.Duration.Seconds())
	fmt.Fprintf(&b, "Return Code: %d\n\n", result.ExitCode)
	b.WriteString("Command:\n" + strings.Join(tokens, " ") + "\n\n")
	b.WriteString(separator + "\n")
	b.WriteString("STDOUT:\n" + result.Stdout + "\n\n")
	b.WriteString(separator + "\n")
	b.WriteString("STDERR:\n" + result.Stderr + "\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}
