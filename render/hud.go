package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/voxelsplace/voxview/xform"
)

const (
	hudMargin     = 8
	hudLineHeight = 15
)

// DrawHUD writes lines top-left over f.
func DrawHUD(f *Frame, lines []string, c color.Color) {
	d := &font.Drawer{
		Dst:  f.Image(),
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	for i, line := range lines {
		d.Dot = fixed.P(hudMargin, hudMargin+ascent+i*hudLineHeight)
		d.DrawString(line)
	}
}

// HUDLines formats the position, rotation and scale readout.
func HUDLines(pos, rot, sc mgl32.Vec3, voxels int) []string {
	return []string{
		"pos   " + xform.Curlify(pos),
		"rot   " + xform.Curlify(rot),
		"scale " + xform.Curlify(sc),
		"voxels " + strconv.Itoa(voxels),
	}
}
