package cli

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/heartbeat/pkg/config"
	"github.com/carverauto/heartbeat/pkg/logger"
	"github.com/carverauto/heartbeat/pkg/models"
	"github.com/carverauto/heartbeat/pkg/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://heartbeat.example.com/ping/abc"

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("cpu", []string{"-u", testURL}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, testURL, cfg.URL)
	assert.Equal(t, "cpu", cfg.Metric)
	assert.Equal(t, time.Second, time.Duration(cfg.CollectionInterval))
	assert.Equal(t, time.Minute, time.Duration(cfg.PostInterval))
	assert.Equal(t, 1, cfg.Verbosity())
	assert.Equal(t, 3, cfg.Attempts)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.Timeout))
	assert.Equal(t, "heartbeat-cpu", cfg.ServiceName)
	assert.Empty(t, cfg.DiskPath)
	assert.Empty(t, cfg.ListenAddr)
}

func TestParse_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.AgentConfig)
	}{
		{
			name: "long names",
			args: []string{"-url", testURL, "-collection-seconds", "5", "-post-seconds", "30"},
			check: func(t *testing.T, cfg *config.AgentConfig) {
				t.Helper()
				assert.Equal(t, 5*time.Second, time.Duration(cfg.CollectionInterval))
				assert.Equal(t, 30*time.Second, time.Duration(cfg.PostInterval))
			},
		},
		{
			name: "short names",
			args: []string{"-u", testURL, "-c", "2", "-p", "10"},
			check: func(t *testing.T, cfg *config.AgentConfig) {
				t.Helper()
				assert.Equal(t, 2*time.Second, time.Duration(cfg.CollectionInterval))
				assert.Equal(t, 10*time.Second, time.Duration(cfg.PostInterval))
				// 10s post interval over 3 attempts.
				assert.Equal(t, 10*time.Second/3, time.Duration(cfg.Timeout))
			},
		},
		{
			name: "bare v increments",
			args: []string{"-u", testURL, "-v"},
			check: func(t *testing.T, cfg *config.AgentConfig) {
				t.Helper()
				assert.Equal(t, 2, cfg.Verbosity())
			},
		},
		{
			name: "repeated v clamps",
			args: []string{"-u", testURL, "-v", "-v", "-v"},
			check: func(t *testing.T, cfg *config.AgentConfig) {
				t.Helper()
				assert.Equal(t, 2, cfg.Verbosity())
			},
		},
		{
			name: "explicit verbosity",
			args: []string{"-u", testURL, "-verbose=0"},
			check: func(t *testing.T, cfg *config.AgentConfig) {
				t.Helper()
				assert.Equal(t, 0, cfg.Verbosity())
			},
		},
		{
			name: "servers",
			args: []string{"-u", testURL, "-listen", ":9105", "-grpc-listen", ":50055", "-attempts", "5"},
			check: func(t *testing.T, cfg *config.AgentConfig) {
				t.Helper()
				assert.Equal(t, ":9105", cfg.ListenAddr)
				assert.Equal(t, ":50055", cfg.GRPCListenAddr)
				assert.Equal(t, 5, cfg.Attempts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("cpu", tt.args, io.Discard)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		metric  string
		args    []string
		wantErr error
	}{
		{name: "missing url", metric: "cpu", args: nil, wantErr: config.ErrURLRequired},
		{name: "relative url", metric: "cpu", args: []string{"-u", "/ping"}, wantErr: config.ErrInvalidURL},
		{name: "unknown metric", metric: "gpu", args: []string{"-u", testURL}, wantErr: config.ErrUnknownMetric},
		{name: "zero seconds", metric: "ram", args: []string{"-u", testURL, "-c", "0"}, wantErr: errInvalidSeconds},
		{name: "negative post", metric: "ram", args: []string{"-u", testURL, "-p", "-1"}, wantErr: errInvalidSeconds},
		{name: "positional", metric: "ram", args: []string{"-u", testURL, "extra"}, wantErr: errUnexpectedArgs},
		{name: "help", metric: "ram", args: []string{"-h"}, wantErr: flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.metric, tt.args, io.Discard)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_DiskPath(t *testing.T) {
	cfg, err := Parse("disk", []string{"-u", testURL}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.DiskPath)

	cfg, err = Parse("disk", []string{"-u", testURL, "-d", "/var"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/var", cfg.DiskPath)

	// Only the disk binary knows the flag.
	_, err = Parse("cpu", []string{"-u", testURL, "-d", "/var"}, io.Discard)
	require.Error(t, err)
}

func TestParse_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heartbeat.yaml")

	require.NoError(t, os.WriteFile(path, []byte(`
url: https://file.example.com/ping
collection_interval: 2s
post_interval: 30s
verbose: 0
headers:
  - key: X-Api-Key
    value: secret
`), 0o600))

	cfg, err := Parse("ram", []string{"-config", path}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/ping", cfg.URL)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.CollectionInterval))
	assert.Equal(t, 30*time.Second, time.Duration(cfg.PostInterval))
	assert.Equal(t, 0, cfg.Verbosity())
	require.Len(t, cfg.Headers, 1)
	assert.Equal(t, "X-Api-Key", cfg.Headers[0].Key)

	// Explicit flags win over the file; unset flags leave it alone.
	cfg, err = Parse("ram", []string{"-config", path, "-u", testURL, "-p", "90"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, testURL, cfg.URL)
	assert.Equal(t, 90*time.Second, time.Duration(cfg.PostInterval))
	assert.Equal(t, 2*time.Second, time.Duration(cfg.CollectionInterval))
	assert.Equal(t, 0, cfg.Verbosity())
}

func TestParse_ConfigFileMetricMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartbeat.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"url":"https://x.example.com","metric":"cpu"}`), 0o600))

	_, err := Parse("disk", []string{"-config", path}, io.Discard)
	require.ErrorIs(t, err, errMetricMismatch)
}

func TestParse_ConfigFileMissing(t *testing.T) {
	_, err := Parse("cpu", []string{"-config", filepath.Join(t.TempDir(), "nope.json")}, io.Discard)
	require.Error(t, err)
}

func TestBuild(t *testing.T) {
	registry := sampler.NewRegistry()
	registry.Register("ram", func(sampler.Options) (sampler.Source, error) {
		return sampler.NewFuncSource(models.MetricRAM, func(context.Context) (float64, error) { return 1, nil }), nil
	})

	cfg, err := Parse("ram", []string{"-u", testURL, "-listen", "127.0.0.1:0"}, io.Discard)
	require.NoError(t, err)

	opts, err := build(cfg, logger.Discard(), registry)
	require.NoError(t, err)

	assert.Equal(t, "heartbeat-ram", opts.ServiceName)
	assert.NotNil(t, opts.Service)
	assert.NotNil(t, opts.StatusServer)
	assert.Equal(t, "127.0.0.1:0", opts.StatusListenAddr)
	assert.Empty(t, opts.GRPCListenAddr)

	_, err = build(&config.AgentConfig{Metric: "cpu"}, logger.Discard(), registry)
	require.ErrorIs(t, err, sampler.ErrUnknownMetric)
}

func TestVerbosityFlag(t *testing.T) {
	v := verbosity{n: 1}

	require.NoError(t, v.Set("true"))
	assert.Equal(t, "2", v.String())

	require.NoError(t, v.Set("0"))
	assert.Equal(t, "0", v.String())

	require.Error(t, v.Set("loud"))
	assert.True(t, v.IsBoolFlag())
}
