// Package api is the in-memory surface of voxview: every call takes and
// returns byte slices so it works the same from the CLI and from js/wasm.
package api

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/voxelsplace/voxview/render"
	"github.com/voxelsplace/voxview/vlog"
	"github.com/voxelsplace/voxview/vox"
	"github.com/voxelsplace/voxview/xform"
)

// Initial placement of a freshly loaded shape on the default canvas.
const (
	PlaceX     = render.DefaultWidth / 2
	PlaceY     = render.DefaultHeight / 2
	PlaceScale = 3
)

// Place moves n to the middle of the default canvas and scales it up.
func Place(n *xform.Node) {
	n.Translate(PlaceX, PlaceY, 0)
	n.Scale(PlaceScale, PlaceScale, PlaceScale)
}

// LoadShape reads a text grid, compressed grid or snapshot, places it and
// runs the command script on it.
func LoadShape(data []byte, p vox.Palette, script string) (*vox.Shape, error) {
	cmds, err := xform.ParseCommands(script)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = vox.DefaultPalette()
	}
	s, err := vox.LoadShape(bytes.NewReader(data), p)
	if err != nil {
		return nil, err
	}
	Place(s.Node)
	xform.ApplyAll(s.Node, cmds)
	return s, nil
}

// RenderConfig selects the output of RenderShape.
type RenderConfig struct {
	Format  string // png, jpg or bmp
	HUD     bool
	Options []render.Option
}

// RenderShape rasterizes s and encodes the frame.
func RenderShape(s *vox.Shape, cfg RenderConfig) ([]byte, render.Stats, error) {
	sess := NewSession(s, cfg.Options...)
	if cfg.HUD {
		sess.ToggleHUD()
	}
	f := sess.Frame()
	st := sess.Stats()
	vlog.Logger().Debug("render stats", slog.Int("painted", st.Painted), slog.Int("occluded", st.Occluded))

	format := cfg.Format
	if format == "" {
		format = "png"
	}
	var out bytes.Buffer
	if err := render.Encode(&out, f, format); err != nil {
		return nil, st, err
	}
	return out.Bytes(), st, nil
}

// Render loads data and returns the encoded frame.
func Render(data []byte, p vox.Palette, script string, cfg RenderConfig) ([]byte, error) {
	s, err := LoadShape(data, p, script)
	if err != nil {
		return nil, err
	}
	out, _, err := RenderShape(s, cfg)
	return out, err
}

// Compile turns a text grid into a snapshot.
func Compile(data []byte, p vox.Palette) ([]byte, error) {
	if p == nil {
		p = vox.DefaultPalette()
	}
	s, err := vox.LoadShape(bytes.NewReader(data), p)
	if err != nil {
		return nil, err
	}
	return vox.EncodeSnapshot(s), nil
}

// Info describes a shape for humans.
func Info(s *vox.Shape) string {
	return fmt.Sprintf("%s\n\tUnique voxels: %d\n\tSaved voxels: %d\n\tPalette: %s\n\tDigest: %016x",
		s, s.Store().Len(), s.Store().Order(), s.Palette(), s.Store().Digest())
}
