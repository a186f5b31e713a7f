package imagepkg

import (
	"image"
	"image/color"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawGrid overlays guide lines every stepX and stepY pixels, each labelled
// with its pixel coordinate. A step of zero or less disables that axis.
func DrawGrid(dst *image.NRGBA, stepX, stepY int, c color.Color) {
	b := dst.Bounds()
	src := image.NewUniform(c)
	d := font.Drawer{Dst: dst, Src: src, Face: basicfont.Face7x13}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()

	if stepX > 0 {
		for x := b.Min.X + stepX; x < b.Max.X; x += stepX {
			xdraw.Draw(dst, image.Rect(x, b.Min.Y, x+1, b.Max.Y), src, image.Point{}, xdraw.Over)
			d.Dot = fixed.P(x+2, b.Min.Y+ascent+1)
			d.DrawString(strconv.Itoa(x - b.Min.X))
		}
	}
	if stepY > 0 {
		for y := b.Min.Y + stepY; y < b.Max.Y; y += stepY {
			xdraw.Draw(dst, image.Rect(b.Min.X, y, b.Max.X, y+1), src, image.Point{}, xdraw.Over)
			d.Dot = fixed.P(b.Min.X+2, y+ascent+1)
			d.DrawString(strconv.Itoa(y - b.Min.Y))
		}
	}
}
