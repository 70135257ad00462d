package precommand

import (
	"context"
	"os/exec"

	"go.uber.org/zap"
)

// Runner executes a monitor's PreUpCommand/PreDownCommand shell command on
// the matching important-for-notify transition. Failures are logged only:
// a broken pre-command must never block the heartbeat pipeline.
type Runner struct {
	logger *zap.SugaredLogger
}

func NewRunner(logger *zap.SugaredLogger) *Runner {
	return &Runner{logger: logger.Named("[precommand]")}
}

// RunPreUp runs command on a DOWN->UP (or first-beat UP) transition.
func (r *Runner) RunPreUp(ctx context.Context, monitorID, command string) {
	r.run(ctx, monitorID, command)
}

// RunPreDown runs command on an UP/MAINTENANCE->DOWN transition.
func (r *Runner) RunPreDown(ctx context.Context, monitorID, command string) {
	r.run(ctx, monitorID, command)
}

func (r *Runner) run(ctx context.Context, monitorID, command string) {
	if command == "" {
		return
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.logger.Warnw("pre-command failed", "monitor_id", monitorID, "error", err, "output", string(output))
		return
	}
	r.logger.Debugw("pre-command executed", "monitor_id", monitorID, "output", string(output))
}
