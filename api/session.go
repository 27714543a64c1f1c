package api

import (
	"github.com/voxelsplace/voxview/render"
	"github.com/voxelsplace/voxview/vox"
	"github.com/voxelsplace/voxview/xform"
)

// Session is an interactive view of one shape. Commands mark the frame dirty
// and the next Frame call redraws it.
type Session struct {
	shape *vox.Shape
	frame *render.Frame
	opts  []render.Option
	hud   bool
	dirty bool
	last  render.Stats
}

// NewSession wraps s. The shape is used as is, callers place it.
func NewSession(s *vox.Shape, opts ...render.Option) *Session {
	return &Session{
		shape: s,
		frame: render.NewFrameFor(opts...),
		opts:  opts,
		dirty: true,
	}
}

// Apply runs cmd on the shape.
func (s *Session) Apply(cmd xform.Command) {
	cmd.Apply(s.shape.Node)
	s.dirty = true
}

// ToggleHUD switches the transform readout on or off.
func (s *Session) ToggleHUD() {
	s.hud = !s.hud
	s.dirty = true
}

// Dirty reports whether the next Frame call will redraw.
func (s *Session) Dirty() bool { return s.dirty }

// Frame returns the current frame, rendering it first if needed.
func (s *Session) Frame() *render.Frame {
	if !s.dirty {
		return s.frame
	}
	s.last = render.Render(s.frame, s.shape, s.opts...)
	if s.hud {
		n := s.shape.Node
		render.DrawHUD(s.frame, render.HUDLines(n.Pos(), n.Rot(), n.Sc(), s.shape.Store().Len()), render.Hue(60))
	}
	s.dirty = false
	return s.frame
}

// Save writes the current frame to path, format picked by extension. An
// empty path does nothing.
func (s *Session) Save(path string) error {
	if path == "" {
		return nil
	}
	return render.SaveFrame(path, s.Frame())
}

// Stats returns the counters of the last redraw.
func (s *Session) Stats() render.Stats { return s.last }

// Shape returns the viewed shape.
func (s *Session) Shape() *vox.Shape { return s.shape }
