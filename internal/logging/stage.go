package logging

import (
	"context"
	"time"
)

// StartRun returns ctx carrying a run ID, generating one unless ctx
// already has it.
func StartRun(ctx context.Context) context.Context {
	if GetRunID(ctx) != "" {
		return ctx
	}
	return WithRunID(ctx, NewRunID())
}

// TimeStage starts timing a pipeline stage. Calling the returned function
// logs stage_complete with the elapsed time and any extra key-value pairs.
func TimeStage(ctx context.Context, stage string) func(args ...any) {
	start := time.Now()
	return func(args ...any) {
		StageComplete(ctx, stage, time.Since(start), args...)
	}
}
