package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigd/internal/config"
	"sigd/internal/signals"
)

const testConfig = `log_level: debug
log_format: json
hooks:
  - owner: mailer
    target: users
    signal: deleted
    action: log
    message: user removed
  - owner: guard
    target: apps
    signal: removed
    action: fail
    message: apps are protected
  - owner: stats
    target: apps
    signal: removed
    action: count
`

// isolate keeps default config discovery away from the developer's files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SIGD_CONFIG", "")
	t.Setenv("SIGD_LOG_LEVEL", "")
	t.Setenv("SIGD_LOG_FORMAT", "")
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sigd dev\n", out)
}

func TestListeners_FromConfig(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "sigd.yaml", testConfig)

	out, _, err := run(t, "--config", cfg, "listeners")
	require.NoError(t, err)
	assert.Contains(t, out, "OWNER")
	assert.Contains(t, out, "guard")
	assert.Contains(t, out, "mailer")

	out, _, err = run(t, "--config", cfg, "listeners", "--target", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "mailer")
	assert.NotContains(t, out, "guard")
}

func TestEmit_LogHookReceivesPayload(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "sigd.yaml", testConfig)

	out, logs, err := run(t, "--config", cfg, "emit", "users", "deleted", `{"id":1}`)
	require.NoError(t, err)
	assert.Equal(t, "emitted users/deleted to 1 listener(s)\n", out)
	assert.Contains(t, logs, `"message":"user removed"`)
	assert.Contains(t, logs, `"data":{"id":1}`)
	assert.Contains(t, logs, "Registered deleted to users for mailer")
}

func TestEmit_StrictFailureAndBestEffort(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "sigd.yaml", testConfig)

	_, _, err := run(t, "--config", cfg, "emit", "apps", "removed")
	require.Error(t, err)
	assert.EqualError(t, err, "emit apps/removed: apps are protected")

	out, _, err := run(t, "--config", cfg, "emit", "apps", "removed", "--best-effort")
	require.NoError(t, err)
	assert.Equal(t, "emitted apps/removed to 2 listener(s)\n", out)
}

func TestEmit_UnmatchedSuggests(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "sigd.yaml", testConfig)

	out, _, err := run(t, "--config", cfg, "emit", "users", "delted")
	require.NoError(t, err)
	assert.Equal(t, "no listeners for users/delted (did you mean \"deleted\"?)\n", out)

	out, _, err = run(t, "--config", cfg, "emit", "nobody", "deleted")
	require.NoError(t, err)
	assert.Equal(t, "no listeners for nobody/deleted\n", out)
}

func TestEmit_Errors(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "sigd.yaml", testConfig)

	_, _, err := run(t, "--config", cfg, "emit", "users", "deleted", "{not json")
	assert.ErrorContains(t, err, "invalid JSON data")

	_, _, err = run(t, "--config", cfg, "emit", "users")
	assert.Error(t, err)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "listeners")
	assert.ErrorContains(t, err, "load config")

	bad := writeConfig(t, "bad.yaml", "hooks:\n  - owner: x\n    target: t\n    signal: s\n    action: email\n")
	_, _, err = run(t, "--config", bad, "listeners")
	assert.ErrorContains(t, err, "install hooks")
	assert.ErrorContains(t, err, "unknown hook action")
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	isolate(t)
	cfg := writeConfig(t, "sigd.toml", "addr = \":9000\"\nlog_level = \"warn\"\n")

	c, err := loadConfig(&Options{ConfigPath: cfg, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, config.DefaultLogFormat, c.LogFormat)

	c, err = loadConfig(&Options{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddr, c.Addr, "no config file falls back to defaults")
}

func TestParseData(t *testing.T) {
	d, err := parseData(nil)
	require.NoError(t, err)
	assert.False(t, d.Present())

	d, err = parseData([]string{"null"})
	require.NoError(t, err)
	assert.False(t, d.Present())

	d, err = parseData([]string{`"x"`})
	require.NoError(t, err)
	v, ok := d.Value()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestServe_StopsOnCancel(t *testing.T) {
	rt := &runtime{cfg: config.Config{Addr: "127.0.0.1:0"}.WithDefaults(), log: zerolog.Nop(), reg: signals.New()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, rt) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_ListenError(t *testing.T) {
	rt := &runtime{cfg: config.Config{Addr: "256.0.0.1:bad"}.WithDefaults(), log: zerolog.Nop(), reg: signals.New()}
	err := serve(context.Background(), rt)
	assert.Error(t, err)
}
