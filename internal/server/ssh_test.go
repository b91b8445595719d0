package server

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridbugs/perlin2/internal/config"
	"github.com/gridbugs/perlin2/internal/explore"
)

func newTestView(buf *bytes.Buffer, m *Metrics) *view {
	f := config.Default().Field
	ex := explore.New(1, f.ScaleX, f.ScaleY, f.Threshold)
	return newView(buf, ex, 40, 12, m)
}

func TestViewDrawsAndDiffs(t *testing.T) {
	var buf bytes.Buffer
	v := newTestView(&buf, nil)

	v.draw()
	first := buf.Len()
	require.Positive(t, first)
	assert.Equal(t, 40*12, strings.Count(buf.String(), "\x1b[0;"))

	// Redrawing an unchanged view writes nothing.
	buf.Reset()
	v.draw()
	assert.Zero(t, buf.Len())

	// Panning writes a partial update.
	require.True(t, v.apply([]explore.Action{explore.ActionRight}))
	assert.Positive(t, buf.Len())
}

func TestViewQuit(t *testing.T) {
	var buf bytes.Buffer
	v := newTestView(&buf, nil)
	v.draw()
	buf.Reset()

	assert.False(t, v.apply([]explore.Action{explore.ActionQuit, explore.ActionRight}))
	assert.Zero(t, buf.Len(), "actions after quit are not applied")
}

func TestViewIgnoresNoops(t *testing.T) {
	var buf bytes.Buffer
	v := newTestView(&buf, nil)
	v.draw()
	buf.Reset()

	assert.True(t, v.apply([]explore.Action{explore.ActionNone}))
	assert.Zero(t, buf.Len())
}

func TestViewResize(t *testing.T) {
	var buf bytes.Buffer
	v := newTestView(&buf, nil)
	v.draw()
	buf.Reset()

	v.resize(20, 6)
	// A resize repaints every cell.
	assert.Equal(t, 20*6, strings.Count(buf.String(), "\x1b[0;"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	var buf bytes.Buffer
	v := newTestView(&buf, m)

	m.sessionOpened()
	v.draw()
	v.apply([]explore.Action{explore.ActionMode})
	m.sessionClosed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "perlin2_sessions_active 0")
	assert.Contains(t, out, "perlin2_sessions_total 1")
	assert.Contains(t, out, "perlin2_frames_rendered_total 2")
	assert.Contains(t, out, "perlin2_frame_render_seconds_count 2")
}

func TestNewSSHServerDefaultsMetrics(t *testing.T) {
	s := NewSSHServer(":0", "host_key", config.Default().Field, nil)
	assert.NotNil(t, s.metrics)
}
