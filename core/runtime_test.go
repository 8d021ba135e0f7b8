package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocrud/hookapi/bridge"
	"github.com/gocrud/hookapi/config"
	"github.com/gocrud/hookapi/hook"
	"github.com/gocrud/hookapi/logging"
	"github.com/gocrud/hookapi/member"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func greet(t *testing.T, table *bridge.Table, name string) any {
	t.Helper()
	m, err := member.NewMethodFinder("Greet").Locate(member.ClassOf[*Greeter]())
	require.NoError(t, err)
	got, err := table.Call(m, &Greeter{}, name)
	require.NoError(t, err)
	return got
}

func TestLoadInstallsGroups(t *testing.T) {
	table := bridge.NewTable()
	logger, _ := logging.NewMemoryLogger()
	rt := NewRuntime()
	m := &ListenerOnlyModule{}
	require.NoError(t, rt.Apply(
		WithBridge(table),
		WithLogger(logger),
		WithModule(&HooksOnlyModule{}),
		WithModule(m),
	))

	require.NoError(t, rt.Load(context.Background()))
	assert.Equal(t, "hooked", greet(t, table, "x"))
	assert.Equal(t, 1, m.loaded)
	require.Len(t, rt.Groups(), 1)

	assert.ErrorIs(t, rt.Load(context.Background()), ErrAlreadyLoaded)
}

func TestLoadDoesNotShortCircuit(t *testing.T) {
	table := bridge.NewTable()
	logger, logs := logging.NewMemoryLogger()
	rt := NewRuntime()
	require.NoError(t, rt.Apply(WithBridge(table), WithLogger(logger)))

	rt.Hook(member.ClassOf[*Greeter](), func(c *hook.Creator) {
		panic("bad group")
	})
	rt.Hook(member.ClassOf[*Greeter](), nil)
	rt.Hook(member.ClassOf[*Greeter](), func(c *hook.Creator) {
		c.InjectMember("", func(m *hook.MemberCreator) {
			m.Method(func(f *member.MethodFinder) { f.Name = "Greet" })
			m.After(func(p *hook.Param) error {
				p.SetResult(p.Result().(string) + "!")
				return nil
			})
		})
	})
	rt.Lifecycle.OnLoaded(func(context.Context) error { return errors.New("listener failed") })

	err := rt.Load(context.Background())
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "bad group")
	assert.ErrorIs(t, errs[1], hook.ErrEmptyGroup)
	assert.EqualError(t, errs[2], "listener failed")

	assert.Equal(t, "hello bob!", greet(t, table, "bob"))
	assert.Len(t, logs.Filter(logging.LogLevelError, "Hook Members is empty"), 1)
}

func TestLoadHonoursContext(t *testing.T) {
	rt := newTestRuntime(t)
	rt.Hook(member.ClassOf[*Greeter](), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rt.Load(ctx), context.Canceled)
	assert.Empty(t, rt.Groups())
}

func TestWithConfiguration(t *testing.T) {
	cfg, err := config.NewConfigurationBuilder().AddInMemory(map[string]any{
		"hook": map[string]any{
			"debug":      true,
			"defaultTag": "Cfg",
			"logLevel":   "warn",
			"logFormat":  "json",
		},
	}).Build()
	require.NoError(t, err)

	rt := NewRuntime()
	require.NoError(t, rt.Apply(WithConfiguration(cfg), WithDebug(false)))
	assert.False(t, rt.Env.Debug)
	assert.Equal(t, "Cfg", rt.Env.DefaultTag)
	assert.NotNil(t, rt.Env.Logger)
	assert.Same(t, cfg, rt.Configuration)

	bad, err := config.NewConfigurationBuilder().AddInMemory(map[string]any{
		"hook": map[string]any{"logFormat": "xml"},
	}).Build()
	require.NoError(t, err)
	assert.Error(t, NewRuntime().Apply(WithConfiguration(bad)))
}

func TestLoadSettingsDefaults(t *testing.T) {
	cfg, err := config.NewConfigurationBuilder().Build()
	require.NoError(t, err)
	s, err := LoadSettings(cfg)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)

	factory, err := s.NewLoggerFactory()
	require.NoError(t, err)
	assert.NotNil(t, factory.CreateLogger(logging.DefaultCategory))
	assert.NoError(t, factory.Close())

	_, err = Settings{LogLevel: "loud"}.NewLoggerFactory()
	assert.Error(t, err)
}

func TestWithBridgeRejectsNil(t *testing.T) {
	assert.Error(t, NewRuntime().Apply(WithBridge(nil)))
}

type sample struct{ n int }

func TestFeatures(t *testing.T) {
	rt := NewRuntime()
	_, ok := GetFeature[*sample](rt)
	assert.False(t, ok)

	rt.Features.Set(&sample{n: 3})
	got, ok := GetFeature[*sample](rt)
	require.True(t, ok)
	assert.Equal(t, 3, got.n)
}

func TestCloseFlushesConfiguredLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hook.log")
	cfg, err := config.NewConfigurationBuilder().AddInMemory(map[string]any{
		"hook": map[string]any{
			"logFormat": "json",
			"logFile":   path,
		},
	}).Build()
	require.NoError(t, err)

	rt := NewRuntime()
	require.NoError(t, rt.Apply(WithConfiguration(cfg), WithBridge(bridge.NewTable())))
	rt.Hook(member.ClassOf[*Greeter](), nil)
	assert.ErrorIs(t, rt.Load(context.Background()), hook.ErrEmptyGroup)

	require.NoError(t, rt.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hook Members is empty, hook aborted")

	assert.NoError(t, rt.Close())
}
