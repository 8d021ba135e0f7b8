package status_test

import (
	"testing"

	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/hook"
	"github.com/gocrud/hookapi/logging"
	"github.com/gocrud/hookapi/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInactiveDefaults(t *testing.T) {
	r := status.NewReader(bridge.NewTable())
	assert.False(t, r.IsActive())
	assert.Equal(t, "unknown", r.ExecutorName())
	assert.Equal(t, -1, r.ExecutorVersion())
}

func TestConfigureActivates(t *testing.T) {
	table := bridge.NewTable()
	logger, logs := logging.NewMemoryLogger()
	creator := hook.NewCreator(&hook.Env{Bridge: table, Logger: logger}, status.Class())
	status.Configure(creator, table)
	require.Len(t, creator.Members(), 3)
	require.NoError(t, creator.Hook())

	r := status.NewReader(table)
	assert.True(t, r.IsActive())
	assert.Equal(t, "HookAPIBridge", r.ExecutorName())
	assert.Equal(t, 1, r.ExecutorVersion())
	assert.Empty(t, logs.Entries())
}

func TestConfigureWithoutDescriptor(t *testing.T) {
	table := bridge.NewTable()
	logger, _ := logging.NewMemoryLogger()
	creator := hook.NewCreator(&hook.Env{Bridge: table, Logger: logger}, status.Class())
	status.Configure(creator, nil)
	require.NoError(t, creator.Hook())

	r := status.NewReader(table)
	assert.True(t, r.IsActive())
	assert.Equal(t, "unknown", r.ExecutorName())
}
