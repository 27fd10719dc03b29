package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/logging"
)

type recordingLogger struct {
	calls []string
}

func (r *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	r.calls = append(r.calls, level+":"+message)
}

func TestWithLoggerThenFromContextRoundTrips(t *testing.T) {
	rec := &recordingLogger{}
	ctx := logging.WithLogger(context.Background(), rec)

	logging.FromContext(ctx).Log("info", "ship stepped", map[string]interface{}{"ship_id": "ship-1"})

	assert.Equal(t, []string{"info:ship stepped"}, rec.calls)
}

func TestFromContextWithoutLoggerReturnsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.FromContext(context.Background()).Log("info", "no logger attached", nil)
	})
}
