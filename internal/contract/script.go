package contract

import (
	"context"
	"time"

	"task-assistant/internal/model"
)

// ExecutionResult is the outcome returned by a script engine run.
type ExecutionResult struct {
	Success   bool
	Output    string
	StartedAt time.Time
	EndedAt   time.Time
}

// ScriptExecutor runs a user script and reports its outcome. The sandboxing
// and timeout policy belong to the implementation; the scheduler only
// consumes the result.
type ScriptExecutor interface {
	Execute(ctx context.Context, script *model.Script) (*ExecutionResult, error)
}
