package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

func TestValueStore(t *testing.T) {
	store := NewValueStore()

	data := map[string]any{"key": "value"}
	old := store.Store(data)
	if len(old) != 0 {
		t.Errorf("Expected empty initial snapshot, got %v", old)
	}

	loaded := store.Load()
	if loaded["key"] != "value" {
		t.Error("Load failed")
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Load()
		}()
	}
	wg.Wait()
}

func TestPathCache(t *testing.T) {
	cache := &PathCache{}

	parts := cache.GetPathSegments("a:b.c")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d", len(parts))
	}
	if parts[0] != "a" || parts[1] != "b" || parts[2] != "c" {
		t.Error("Parse failed")
	}

	parts2 := cache.GetPathSegments("a:b.c")
	if len(parts2) != 3 {
		t.Errorf("Expected 3 parts on second call, got %d", len(parts2))
	}

	parts3 := cache.GetPathSegments("hook::logLevel.")
	if len(parts3) != 2 || parts3[1] != "logLevel" {
		t.Errorf("Expected empty segments to be skipped, got %v", parts3)
	}
}

type hookSettings struct {
	Debug      bool   `json:"debug"`
	DefaultTag string `json:"defaultTag"`
	LogLevel   string `json:"logLevel"`
}

func TestYamlAndOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hook.yaml")
	content := "hook:\n  debug: false\n  defaultTag: Yaml\n  logLevel: warn\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfigurationBuilder().
		AddYamlFile(path).
		AddJsonFile(filepath.Join(dir, "missing.json"), true).
		AddInMemory(map[string]any{"hook": map[string]any{"debug": true}}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	settings, err := Load[hookSettings](cfg, "hook")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !settings.Debug {
		t.Error("in-memory source should override yaml debug")
	}
	if settings.DefaultTag != "Yaml" || settings.LogLevel != "warn" {
		t.Errorf("Unexpected settings %+v", settings)
	}

	if got := cfg.Get("hook.defaultTag"); got != "Yaml" {
		t.Errorf("Get = %q", got)
	}
	if got := cfg.GetSection("hook").Get("logLevel"); got != "warn" {
		t.Errorf("GetSection.Get = %q", got)
	}
	if b, err := cfg.GetBool("hook:debug"); err != nil || !b {
		t.Errorf("GetBool = %v, %v", b, err)
	}
	if got := cfg.GetWithDefault("hook:missing", "fallback"); got != "fallback" {
		t.Errorf("GetWithDefault = %q", got)
	}
}

func TestMissingRequiredFile(t *testing.T) {
	_, err := NewConfigurationBuilder().AddYamlFile("/nonexistent/hook.yaml").Build()
	if err == nil {
		t.Fatal("Expected error for missing required file")
	}
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("HOOKTEST_HOOK_DEBUG", "true")
	t.Setenv("HOOKTEST_HOOK_RETRIES", "3")

	cfg, err := NewConfigurationBuilder().AddEnvironmentVariables("HOOKTEST_").Build()
	if err != nil {
		t.Fatal(err)
	}
	if b, err := cfg.GetBool("hook:debug"); err != nil || !b {
		t.Errorf("GetBool = %v, %v", b, err)
	}
	if n, err := cfg.GetInt("hook:retries"); err != nil || n != 3 {
		t.Errorf("GetInt = %v, %v", n, err)
	}
}

type fakeKV struct {
	kvs []*mvccpb.KeyValue
}

func (f *fakeKV) Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	return &clientv3.GetResponse{Kvs: f.kvs}, nil
}

func TestEtcdSource(t *testing.T) {
	kv := &fakeKV{kvs: []*mvccpb.KeyValue{
		{Key: []byte("/hookapi/hook/debug"), Value: []byte("true")},
		{Key: []byte("/hookapi/hook/defaultTag"), Value: []byte("Remote")},
		{Key: []byte("/hookapi/logging"), Value: []byte(`{"level":"debug"}`)},
	}}

	cfg, err := NewConfigurationBuilder().
		Add(&EtcdSource{Options: EtcdOptions{Prefix: "/hookapi"}, Client: kv}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	if b, err := cfg.GetBool("hook:debug"); err != nil || !b {
		t.Errorf("GetBool = %v, %v", b, err)
	}
	if got := cfg.Get("hook:defaultTag"); got != "Remote" {
		t.Errorf("Get = %q", got)
	}
	if got := cfg.Get("logging:level"); got != "debug" {
		t.Errorf("nested JSON value = %q", got)
	}
}

func BenchmarkConfigGet(b *testing.B) {
	config, _ := NewConfigurationBuilder().AddInMemory(map[string]any{
		"server": map[string]any{
			"host": "localhost",
			"port": 8080,
		},
	}).Build()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		config.Get("server:host")
	}
}

func TestEmptyConfiguration(t *testing.T) {
	cfg := Empty()
	if len(cfg.GetAll()) != 0 {
		t.Errorf("Expected no values, got %v", cfg.GetAll())
	}
	if cfg.Get("hook:debug") != "" {
		t.Error("Expected empty value for missing key")
	}
}
