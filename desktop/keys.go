//go:build !(js && wasm)

package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/voxelsplace/voxview/xform"
)

// Binding maps keys to one transform command.
type Binding struct {
	Keys []ebiten.Key
	Cmd  xform.Command
}

func bind(op xform.Op, axis xform.Axis, neg bool, keys ...ebiten.Key) Binding {
	return Binding{Keys: keys, Cmd: xform.Command{Op: op, Axis: axis, Neg: neg}}
}

// Bindings is the viewer keymap. Screen y grows downwards, so W moves up
// with a negative step.
var Bindings = []Binding{
	bind(xform.OpTranslate, xform.Y, true, ebiten.KeyW, ebiten.KeyArrowUp),
	bind(xform.OpTranslate, xform.Y, false, ebiten.KeyS, ebiten.KeyArrowDown),
	bind(xform.OpTranslate, xform.X, true, ebiten.KeyA, ebiten.KeyArrowLeft),
	bind(xform.OpTranslate, xform.X, false, ebiten.KeyD, ebiten.KeyArrowRight),
	bind(xform.OpTranslate, xform.Z, false, ebiten.KeyEqual, ebiten.KeyNumpadAdd),
	bind(xform.OpTranslate, xform.Z, true, ebiten.KeyMinus, ebiten.KeyNumpadSubtract),

	bind(xform.OpRotate, xform.X, false, ebiten.KeyDigit1, ebiten.KeyNumpad1),
	bind(xform.OpRotate, xform.X, true, ebiten.KeyDigit2, ebiten.KeyNumpad2),
	bind(xform.OpRotate, xform.Y, false, ebiten.KeyDigit4, ebiten.KeyNumpad4),
	bind(xform.OpRotate, xform.Y, true, ebiten.KeyDigit5, ebiten.KeyNumpad5),
	bind(xform.OpRotate, xform.Z, false, ebiten.KeyDigit7, ebiten.KeyNumpad7),
	bind(xform.OpRotate, xform.Z, true, ebiten.KeyDigit8, ebiten.KeyNumpad8),

	bind(xform.OpScale, xform.X, false, ebiten.KeyBracketRight),
	bind(xform.OpScale, xform.X, true, ebiten.KeyBracketLeft),
	bind(xform.OpScale, xform.Y, false, ebiten.KeyQuote),
	bind(xform.OpScale, xform.Y, true, ebiten.KeySemicolon),
	bind(xform.OpScale, xform.Z, false, ebiten.KeySlash),
	bind(xform.OpScale, xform.Z, true, ebiten.KeyPeriod),
}
