package hooks

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigd/internal/signals"
)

func TestInstall_LogHookWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	reg := signals.New()
	err := Install(reg, []Spec{{Owner: "mailer", Target: "users", Signal: "deleted", Action: ActionLog, Message: "user removed"}}, log)
	require.NoError(t, err)

	require.NoError(t, reg.EmitStrict("users", "deleted", signals.Some(map[string]any{"id": 1})))
	out := buf.String()
	assert.Contains(t, out, `"message":"user removed"`)
	assert.Contains(t, out, `"data":{"id":1}`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestInstall_LogHookWithoutPayloadOmitsData(t *testing.T) {
	var buf bytes.Buffer
	reg := signals.New()
	require.NoError(t, Install(reg, []Spec{{Owner: "o", Target: "t", Signal: "s", Action: ActionLog, Level: "warn"}}, zerolog.New(&buf)))

	require.NoError(t, reg.EmitStrict("t", "s", signals.None))
	out := buf.String()
	assert.NotContains(t, out, `"data"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "signal received")
}

func TestInstall_CountHookIncrementsCounter(t *testing.T) {
	reg := signals.New()
	require.NoError(t, Install(reg, []Spec{{Owner: "stats", Target: "apps", Signal: "installed", Action: ActionCount}}, zerolog.Nop()))

	c := hooksFiredTotal.WithLabelValues("stats", "apps", "installed")
	before := testutil.ToFloat64(c)
	require.NoError(t, reg.EmitStrict("apps", "installed", signals.None))
	require.NoError(t, reg.EmitStrict("apps", "installed", signals.Some("x")))
	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestInstall_FailHookDrivesErrorPolicy(t *testing.T) {
	reg := signals.New()
	specs := []Spec{
		{Owner: "guard", Target: "t", Signal: "s", Action: ActionFail, Message: "denied"},
		{Owner: "stats", Target: "t", Signal: "s", Action: ActionCount},
	}
	require.NoError(t, Install(reg, specs, zerolog.Nop()))

	c := hooksFiredTotal.WithLabelValues("stats", "t", "s")
	before := testutil.ToFloat64(c)

	err := reg.EmitStrict("t", "s", signals.None)
	require.EqualError(t, err, "denied")
	assert.Equal(t, before, testutil.ToFloat64(c))

	reg.EmitBestEffort("t", "s", signals.None)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestInstall_InvalidSpecsRegisterNothing(t *testing.T) {
	reg := signals.New()
	specs := []Spec{
		{Owner: "ok", Target: "t", Signal: "s", Action: ActionCount},
		{Owner: "", Target: "t", Signal: "", Action: ActionLog},
		{Owner: "x", Target: "t", Signal: "s", Action: "email"},
		{Owner: "y", Target: "t", Signal: "s", Action: ActionLog, Level: "loud"},
	}
	err := Install(reg, specs, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.True(t, strings.Contains(err.Error(), "owner, signal"), err.Error())
	assert.True(t, strings.Contains(err.Error(), `invalid log level "loud"`), err.Error())
	assert.Equal(t, 0, reg.Len())
}

func TestInstall_AcceptsLoggingLevelAliases(t *testing.T) {
	var buf bytes.Buffer
	reg := signals.New()
	require.NoError(t, Install(reg, []Spec{
		{Owner: "o", Target: "t", Signal: "s", Action: ActionLog, Level: "warning"},
		{Owner: "o", Target: "t", Signal: "quiet", Action: ActionLog, Level: "off"},
	}, zerolog.New(&buf)))

	require.NoError(t, reg.EmitStrict("t", "s", signals.None))
	require.NoError(t, reg.EmitStrict("t", "quiet", signals.None))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestUninstall_RemovesOwnerHooks(t *testing.T) {
	reg := signals.New()
	require.NoError(t, Install(reg, []Spec{
		{Owner: "a", Target: "t", Signal: "s", Action: ActionCount},
		{Owner: "b", Target: "t", Signal: "s", Action: ActionCount},
	}, zerolog.Nop()))

	Uninstall(reg, "a")
	assert.Equal(t, []string{"b"}, reg.Owners())
}
