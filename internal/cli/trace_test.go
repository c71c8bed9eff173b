package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/cadence"
)

func traceShowcase(cfg cadence.Config, step, limit time.Duration, runner *cadence.ScriptRunner) (TraceResult, error) {
	return trace(newShowcase(cfg, cadence.NewRand(1)), cfg, 1, step, limit, runner)
}

func eventsOf(res TraceResult, kind string) []TraceEvent {
	var out []TraceEvent
	for _, ev := range res.Timeline {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestTraceDefaults(t *testing.T) {
	cfg := cadence.DefaultConfig()
	res, err := traceShowcase(cfg, 10*time.Millisecond, 6*time.Second, nil)
	require.NoError(t, err)

	assert.True(t, res.Finished)
	assert.Equal(t, 6*time.Second, res.Elapsed)

	typed := eventsOf(res, "typed")
	require.Len(t, typed, 13)
	assert.Equal(t, "line-0", typed[0].Subject)
	assert.Equal(t, cfg.Messages[0].Text, typed[0].Detail)
	assert.Equal(t, 300*time.Millisecond, typed[0].At)
	assert.Equal(t, 4200*time.Millisecond, typed[12].At)

	console := eventsOf(res, "console")
	require.Len(t, console, 1)
	assert.Equal(t, 4700*time.Millisecond, console[0].At)

	states := eventsOf(res, "state")
	require.NotEmpty(t, states)
	assert.Equal(t, "item-0", states[0].Subject)
	assert.Equal(t, "inactive -> activating", states[0].Detail)
	assert.Equal(t, 4850*time.Millisecond, states[0].At)
	last := states[len(states)-1]
	assert.Equal(t, "activating -> active", last.Detail)
	assert.Equal(t, 5550*time.Millisecond, last.At)
}

func TestTraceScript(t *testing.T) {
	runner, err := cadence.LoadScript([]byte(`{"steps": [
		{"action": "next"},
		{"action": "wait", "ms": 400},
		{"action": "confirm"}
	]}`))
	require.NoError(t, err)

	res, err := traceShowcase(cadence.DefaultConfig(), 10*time.Millisecond, 7*time.Second, runner)
	require.NoError(t, err)
	assert.True(t, res.Finished)

	inputs := eventsOf(res, "input")
	require.Len(t, inputs, 3)
	assert.Equal(t, []string{"next", "wait", "confirm"}, []string{inputs[0].Subject, inputs[1].Subject, inputs[2].Subject})

	confirms := eventsOf(res, "confirm")
	require.Len(t, confirms, 1)
	assert.Equal(t, "item-1", confirms[0].Subject)
	assert.Equal(t, "Projects", confirms[0].Detail)
	assert.GreaterOrEqual(t, confirms[0].At-inputs[0].At, 400*time.Millisecond)
}

func TestTraceStopsOnUpdateError(t *testing.T) {
	cfg := cadence.DefaultConfig()
	sc := newShowcase(cfg, cadence.NewRand(1))
	boom := errors.New("boom")
	sc.update = func() error {
		if sc.scene.Ticker().Now() >= time.Second {
			return boom
		}
		return nil
	}

	res, err := trace(sc, cfg, 1, 10*time.Millisecond, 6*time.Second, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, time.Second, res.Elapsed)
	assert.False(t, res.Finished)
	assert.NotEmpty(t, eventsOf(res, "typed"))
}

func TestTraceCommandJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--step", "20ms", "--duration", "6s", "--seed", "3"})
	require.NoError(t, cmd.Execute())

	var res TraceResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, uint64(3), res.Seed)
	assert.Equal(t, 20*time.Millisecond, res.Step)
	assert.True(t, res.Finished)
	assert.NotEmpty(t, res.Timeline)
}

func TestTraceCommandText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: "text", Verbose: true})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--duration", "6s"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Commencing Core Diagnostics")
	assert.Contains(t, buf.String(), "inactive -> activating")
	assert.Contains(t, buf.String(), "finished true")
}

func TestTraceCommandUnfinished(t *testing.T) {
	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--duration", "1s"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTraceCommandBadStep(t *testing.T) {
	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--step", "0s"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTraceCommandBadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps": []}`), 0o644))

	cmd := NewTraceCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--script", path})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, cadence.ErrEmptyScript)
}

func TestTraceMessagesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- text: hello\n- text: world\n"), 0o644))

	cfg, err := loadConfig(&RootOptions{Messages: path})
	require.NoError(t, err)
	res, err := traceShowcase(cfg, 10*time.Millisecond, 3*time.Second, nil)
	require.NoError(t, err)
	typed := eventsOf(res, "typed")
	require.Len(t, typed, 2)
	assert.Equal(t, "world", typed[1].Detail)
	assert.True(t, res.Finished)
}

func TestLoadConfigMissingMessagesFallsBack(t *testing.T) {
	cfg, err := loadConfig(&RootOptions{Messages: filepath.Join(t.TempDir(), "none.yaml")})
	require.NoError(t, err)
	assert.Len(t, cfg.Messages, 13)
}
