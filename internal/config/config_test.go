package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestParse_Defaults(t *testing.T) {
	o, err := parse(newFlagSet(), []string{"-c", ""}, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", o.Port)
	assert.Equal(t, StoreFile, o.Store)
	assert.Equal(t, "tripwise.json", o.DataFile)
	assert.Equal(t, "tripwise:", o.RedisPrefix)
	assert.Equal(t, 1.0, o.LatencyScale)
	assert.False(t, o.StrictUpdates)
	assert.Equal(t, "info", o.LogLevel)
	assert.Equal(t, []string{"*"}, o.AllowedOrigins())
}

func TestParse_Flags(t *testing.T) {
	o, err := parse(newFlagSet(), []string{
		"-a", ":9000",
		"-store", "postgres",
		"-d", "postgres://localhost/tripwise",
		"-latency", "0",
		"-strict-updates",
		"-c", "",
	}, env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":9000", o.Port)
	assert.Equal(t, StorePostgres, o.Store)
	assert.Equal(t, "postgres://localhost/tripwise", o.DatabaseDSN)
	assert.Zero(t, o.LatencyScale)
	assert.True(t, o.StrictUpdates)
}

func TestParse_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_address": ":7000",
		"store": "redis",
		"redis_addr": "cache:6379",
		"latency_scale": 0.5
	}`), 0o600))

	o, err := parse(newFlagSet(), []string{"-a", ":6000"}, env(map[string]string{
		"CONFIG":         path,
		"SERVER_ADDRESS": ":8000",
		"NATS_URL":       "nats://bus:4222",
		"STRICT_UPDATES": "true",
		"CORS_ORIGINS":   "http://a.test, ,http://b.test",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8000", o.Port)
	assert.Equal(t, StoreRedis, o.Store)
	assert.Equal(t, "cache:6379", o.RedisAddr)
	assert.Equal(t, 0.5, o.LatencyScale)
	assert.Equal(t, "nats://bus:4222", o.NATSURL)
	assert.True(t, o.StrictUpdates)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, o.AllowedOrigins())
}

func TestParse_MissingConfigFileIsIgnored(t *testing.T) {
	o, err := parse(newFlagSet(), []string{"-c", filepath.Join(t.TempDir(), "absent.json")}, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", o.Port)
}

func TestParse_Errors(t *testing.T) {
	badJSON := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "unknown store", args: []string{"-store", "s3", "-c", ""}},
		{name: "postgres without dsn", args: []string{"-store", "postgres", "-c", ""}},
		{name: "negative latency", args: []string{"-latency", "-1", "-c", ""}},
		{name: "infinite latency", args: []string{"-c", ""}, env: map[string]string{"LATENCY_SCALE": "Inf"}},
		{name: "NaN latency", args: []string{"-latency", "NaN", "-c", ""}},
		{name: "bad latency env", args: []string{"-c", ""}, env: map[string]string{"LATENCY_SCALE": "fast"}},
		{name: "bad strict env", args: []string{"-c", ""}, env: map[string]string{"STRICT_UPDATES": "maybe"}},
		{name: "bad config file", args: []string{"-c", badJSON}},
		{name: "unknown flag", args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet()
			fs.SetOutput(io.Discard)
			_, err := parse(fs, tt.args, env(tt.env))
			assert.Error(t, err)
		})
	}
}
