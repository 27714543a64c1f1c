//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/voxview/api"
	"github.com/voxelsplace/voxview/vox"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func toJS(out []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(arr, out)
	return arr
}

// paletteArg reads an optional "c=hue,..." string argument.
func paletteArg(args []js.Value, i int) (vox.Palette, error) {
	if len(args) <= i || args[i].IsUndefined() || args[i].String() == "" {
		return vox.DefaultPalette(), nil
	}
	return vox.ParsePalette(args[i].String())
}

func stringArg(args []js.Value, i int) string {
	if len(args) <= i || args[i].IsUndefined() {
		return ""
	}
	return args[i].String()
}

// renderShape(bytes, palette?, cmds?) -> PNG bytes
func renderShape(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing shape bytes")
	}
	p, err := paletteArg(args, 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.Render(bytesArg(args[0]), p, stringArg(args, 2), api.RenderConfig{Format: "png"})
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

// shape2glb(bytes, palette?, cmds?) -> GLB bytes
func shape2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing shape bytes")
	}
	p, err := paletteArg(args, 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	s, err := api.LoadShape(bytesArg(args[0]), p, stringArg(args, 2))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.ShapesToGLB([]api.NamedShape{{Name: "shape", Shape: s}})
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

// compileShape(bytes, palette?) -> snapshot bytes
func compileShape(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing shape bytes")
	}
	p, err := paletteArg(args, 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.Compile(bytesArg(args[0]), p)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func main() {
	js.Global().Set("renderShape", js.FuncOf(renderShape))
	js.Global().Set("shape2glb", js.FuncOf(shape2glb))
	js.Global().Set("compileShape", js.FuncOf(compileShape))
	select {}
}
