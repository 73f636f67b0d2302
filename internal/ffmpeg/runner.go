package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/google/uuid"
)

// ErrExternalTool marks failures reported by the executed binary rather
// than by command construction.
var ErrExternalTool = errors.New("external tool error")

// Result holds the outcome of a single run.
type Result struct {
	RunID  string
	Args   []string
	Stderr string
	Marker string
}

// Runner executes rendered commands and classifies their stderr.
type Runner struct {
	logger *slog.Logger
}

// NewRunner builds a runner logging through the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run renders the command, executes it, and scans the captured stderr
// for error markers. A non-zero exit or any marker fails the whole run;
// there is no partial success.
func (r *Runner) Run(ctx context.Context, cmd *Command) (Result, error) {
	args, err := cmd.Args()
	if err != nil {
		return Result{}, err
	}

	result := Result{
		RunID: uuid.NewString(),
		Args:  args,
	}
	r.logger.Info("executing command",
		slog.String("run_id", result.RunID),
		slog.String("binary", args[0]),
		slog.Int("arg_count", len(args)-1),
	)
	r.logger.Debug("command line",
		slog.String("run_id", result.RunID),
		slog.String("args", strings.Join(args, " ")),
	)

	proc := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	proc.Stderr = &stderr

	runErr := proc.Run()
	result.Stderr = stderr.String()
	result.Marker = ScanMarkers(result.Stderr)

	switch {
	case runErr != nil:
		r.logger.Error("command failed",
			slog.String("run_id", result.RunID),
			slog.String("error", runErr.Error()),
		)
		return result, fmt.Errorf("%w: %s: %w", ErrExternalTool, args[0], runErr)
	case result.Marker != "":
		r.logger.Error("command reported errors",
			slog.String("run_id", result.RunID),
			slog.String("marker", result.Marker),
		)
		return result, fmt.Errorf("%w: %s: %s", ErrExternalTool, args[0], result.Marker)
	}

	r.logger.Info("command finished", slog.String("run_id", result.RunID))
	return result, nil
}
