//go:build !(js && wasm)

// Package desktop shows a shape in a window and drives it from the keyboard.
package desktop

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vlog"
)

// Config controls the window.
type Config struct {
	Title string
	// Out receives the last frame when the viewer is closed with space.
	// Empty skips the write.
	Out string
}

type viewer struct {
	sess   *api.Session
	img    *ebiten.Image
	upload bool
}

// Run opens the window and blocks until it is closed.
func Run(sess *api.Session, cfg Config) error {
	f := sess.Frame()
	if cfg.Title == "" {
		cfg.Title = "voxview"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(f.Width(), f.Height())
	ebiten.SetTPS(60)

	v := &viewer{sess: sess}
	// RunGame reports a Termination from Update as a nil error.
	if err := ebiten.RunGame(v); err != nil {
		return err
	}
	return sess.Save(cfg.Out)
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.sess.ToggleHUD()
	}
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if inpututil.IsKeyJustPressed(k) {
				v.sess.Apply(b.Cmd)
				vlog.Logger().Debug("command", slog.String("cmd", b.Cmd.String()))
				break
			}
		}
	}
	if v.sess.Dirty() {
		v.sess.Frame()
		v.upload = true
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	f := v.sess.Frame()
	if v.img == nil {
		v.img = ebiten.NewImage(f.Width(), f.Height())
		v.upload = true
	}
	if v.upload {
		v.img.WritePixels(f.Image().Pix)
		v.upload = false
	}
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	f := v.sess.Frame()
	return f.Width(), f.Height()
}
