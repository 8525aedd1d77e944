package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"

	"quaero-icons/internal/pngenc"
)

// eventRecorder is a private arbor writer that keeps events at or above the
// level the logger sets on it.
type eventRecorder struct {
	level  log.Level
	events []models.LogEvent
}

func (r *eventRecorder) WithLevel(level log.Level) writers.IWriter {
	r.level = level
	return r
}

func (r *eventRecorder) Write(p []byte) (int, error) {
	var ev models.LogEvent
	if err := json.Unmarshal(p, &ev); err != nil {
		return 0, err
	}
	if ev.Level >= r.level {
		r.events = append(r.events, ev)
	}
	return len(p), nil
}

func (r *eventRecorder) GetFilePath() string { return "" }
func (r *eventRecorder) Close() error        { return nil }

func (r *eventRecorder) messages(msg string) []models.LogEvent {
	var out []models.LogEvent
	for _, ev := range r.events {
		if ev.Message == msg {
			out = append(out, ev)
		}
	}
	return out
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithLogger(t, arbor.NewLogger().WithWriters([]writers.IWriter{&eventRecorder{}}), args...)
}

func executeWithLogger(t *testing.T, logger arbor.ILogger, args ...string) (string, error) {
	t.Helper()
	stdoutIsTerminal = func() bool { return false }

	var out bytes.Buffer
	cmd := newRootCmd(logger)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_DefaultSizesIntoNewDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")

	out, err := execute(t, "--output", dir)
	require.NoError(t, err)

	for _, n := range []int{16, 48, 128} {
		name := filepath.Join(dir, "icon"+strconv.Itoa(n)+".png")
		f, err := os.Open(name)
		require.NoError(t, err)
		chunks, err := pngenc.ReadChunks(f)
		f.Close()
		require.NoError(t, err, name)

		h, err := pngenc.ParseHeader(chunks[0].Data)
		require.NoError(t, err)
		assert.Equal(t, uint32(n), h.Width)
		assert.Equal(t, uint32(n), h.Height)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"icon16.png", "icon48.png", "icon128.png"}, names)

	assert.Contains(t, out, "Created icon16.png")
	assert.Contains(t, out, "Created icon48.png")
	assert.Contains(t, out, "Created icon128.png")
	assert.Contains(t, out, "Icons generated")
	assert.NotContains(t, out, "\x1b[", "no colour codes when not a terminal")
}

func TestGenerate_ThenVerify(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")
	_, err := execute(t, "--output", dir, "--variant", "solid", "--format", "webp,tga")
	require.NoError(t, err)

	out, err := execute(t, "verify", "--output", dir, "--variant", "solid")
	require.NoError(t, err, out)
	assert.Contains(t, out, "All 3 icon(s) verified")
	assert.Contains(t, out, "pixels match")
	assert.Contains(t, out, "extras: tga,webp")
}

func TestVerify_FailsOnEmptyDirectory(t *testing.T) {
	out, err := execute(t, "verify", "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, err.Error(), "3 of 3 icon(s) failed")
}

func TestGenerate_ConfigFileAndFlags(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "icongen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
output_dir = "`+filepath.ToSlash(filepath.Join(tmp, "from-file"))+`"
sizes = [32]
manifest = false
`), 0644))

	_, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmp, "from-file", "icon32.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmp, "from-file", "manifest.json"))
	assert.True(t, os.IsNotExist(err))

	override := filepath.Join(tmp, "from-flag")
	_, err = execute(t, "--config", cfgPath, "--output", override, "--sizes", "24")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(override, "icon24.png"))
	assert.NoError(t, err)
}

func TestGenerate_LogsEachIcon(t *testing.T) {
	rec := &eventRecorder{}
	dir := filepath.Join(t.TempDir(), "icons")

	out, err := executeWithLogger(t, arbor.NewLogger().WithWriters([]writers.IWriter{rec}), "--output", dir)
	require.NoError(t, err)

	written := rec.messages("Icon written")
	require.Len(t, written, 3)
	for i, n := range []int{16, 48, 128} {
		assert.Equal(t, log.InfoLevel, written[i].Level)
		assert.Equal(t, filepath.Join(dir, "icon"+strconv.Itoa(n)+".png"), written[i].Fields["path"])
	}
	assert.NotContains(t, out, "Icon written", "log events stay off the progress stream")
}

func TestGenerate_LogLevelFlag(t *testing.T) {
	rec := &eventRecorder{}
	logger := arbor.NewLogger().WithWriters([]writers.IWriter{rec})

	_, err := executeWithLogger(t, logger, "--output", t.TempDir(), "--log-level", "warn")
	require.NoError(t, err)
	assert.Empty(t, rec.messages("Icon written"))

	_, err = execute(t, "--output", t.TempDir(), "--log-level", "loud")
	assert.Error(t, err)
}

func TestGenerate_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "--output", t.TempDir(), "--variant", "fancy")
	assert.Error(t, err)

	_, err = execute(t, "--output", t.TempDir(), "--format", "bmp")
	assert.Error(t, err)

	_, err = execute(t, "unexpected-arg")
	assert.Error(t, err)
}

func TestDecorate(t *testing.T) {
	stdoutIsTerminal = func() bool { return true }
	defer func() { stdoutIsTerminal = func() bool { return false } }()
	assert.Equal(t, colorSuccess+"ok"+colorDefault, decorate("ok", colorSuccess))
}
