package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRunAttachesLoggerAndID(t *testing.T) {
	InitLogger()

	ctx := WithRun(context.Background(), 12345)

	assert.NotEmpty(t, RunID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	InitLogger()

	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestStageTimerDoesNotPanic(t *testing.T) {
	InitLogger()
	ctx := WithRun(context.Background(), 1)

	assert.NotPanics(t, func() {
		done := StageTimer(ctx, "mesh")
		done()
	})
}
