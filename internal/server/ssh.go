package server

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"

	"github.com/gridbugs/perlin2/internal/config"
	"github.com/gridbugs/perlin2/internal/explore"
	"github.com/gridbugs/perlin2/internal/render"
)

// SSHServer serves an interactive noise explorer to each SSH session.
type SSHServer struct {
	addr    string
	hostKey string
	field   config.FieldConfig
	metrics *Metrics
}

// NewSSHServer creates a new SSH server bound to the given address.
// field.Seed must already be resolved; every session starts from it.
func NewSSHServer(addr, hostKey string, field config.FieldConfig, m *Metrics) *SSHServer {
	if m == nil {
		m = NewMetrics()
	}
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		field:   field,
		metrics: m,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	id := uuid.NewString()
	log.Printf("Session opened: %s (%s)", sess.User(), id)
	s.metrics.sessionOpened()
	defer func() {
		s.metrics.sessionClosed()
		log.Printf("Session closed: %s (%s)", sess.User(), id)
	}()

	ex := explore.New(s.field.Seed, s.field.ScaleX, s.field.ScaleY, s.field.Threshold)
	v := newView(sess, ex, ptyReq.Window.Width, ptyReq.Window.Height, s.metrics)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	actionCh := make(chan []explore.Action, 16)

	// Goroutine: read input
	go func() {
		defer close(actionCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			if actions := explore.ParseInput(buf[:n]); len(actions) > 0 {
				select {
				case actionCh <- actions:
				case <-sess.Context().Done():
					return
				}
			}
		}
	}()

	v.draw()
	for {
		select {
		case <-sess.Context().Done():
			return
		case actions, ok := <-actionCh:
			if !ok {
				return
			}
			if !v.apply(actions) {
				return
			}
		case win, ok := <-winCh:
			if !ok {
				winCh = nil
				continue
			}
			v.resize(win.Width, win.Height)
		}
	}
}

// view couples one session's explorer with its renderer and output.
type view struct {
	out     io.Writer
	ex      *explore.Explorer
	engine  *render.Engine
	w, h    int
	metrics *Metrics
}

func newView(out io.Writer, ex *explore.Explorer, w, h int, m *Metrics) *view {
	return &view{out: out, ex: ex, engine: render.NewEngine(w, h), w: w, h: h, metrics: m}
}

// apply runs actions in order and redraws once if any changed the view.
// It returns false when the session should end.
func (v *view) apply(actions []explore.Action) bool {
	changed := false
	for _, a := range actions {
		if a == explore.ActionQuit {
			return false
		}
		if v.ex.Apply(a) {
			changed = true
		}
	}
	if changed {
		v.draw()
	}
	return true
}

func (v *view) resize(w, h int) {
	v.w, v.h = w, h
	v.engine.Resize(w, h)
	v.draw()
}

func (v *view) draw() {
	start := time.Now()
	frame := v.ex.Frame(v.engine.Viewport(v.ex.Mode()))
	output := v.engine.Render(v.w, v.h, frame)
	if len(output) > 0 {
		io.WriteString(v.out, output)
	}
	if v.metrics != nil {
		v.metrics.frameRendered(time.Since(start), len(output))
	}
}
