package regulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vnykmshr/regulator/internal/testutil"
)

func TestLogger_SchedulingDecisions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	clock := testutil.NewFakeClock(epoch)

	cfg := DefaultConfig()
	cfg.Wait = 100 * ms
	cfg.Options = Options{Mode: ModeDebounce, Once: true}
	cfg.Clock = clock
	cfg.Logger = zap.New(core)
	cfg.Name = "autosave"

	r, err := NewWithConfig(func(string) {}, cfg)
	require.NoError(t, err)

	r.Call("A")
	r.Cancel()
	r.Call("B")
	clock.Advance(100 * ms)
	r.Call("C")

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
		fields := entry.ContextMap()
		assert.Equal(t, "autosave", fields["regulator"])
		assert.Equal(t, "debounce", fields["mode"])
	}
	assert.Equal(t, []string{
		"rescheduled trailing execution",
		"cancelled pending execution",
		"rescheduled trailing execution",
		"disabled after first execution",
		"fired trailing execution",
		"dropped call on disabled regulator",
	}, messages)
}

func TestLogger_NilDefaultsToNop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logger = nil
	cfg.Clock = nil
	cfg.Options = Options{Immediate: true}

	tracker := testutil.NewCallbackTracker()
	r, err := NewWithConfig(func(n int) { tracker.Mark(n) }, cfg)
	require.NoError(t, err)

	r.Call(1)
	tracker.AssertCallCount(t, 1)
}
