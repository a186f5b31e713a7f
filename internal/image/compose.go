package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/youruser/cardcreator/internal/schema"
)

// NewCanvas creates a white card canvas of w x h pixels. With border set a
// one pixel black frame is drawn around its edge.
func NewCanvas(w, h int, border bool) *image.NRGBA {
	canvas := imaging.New(w, h, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if border && w > 0 && h > 0 {
		black := color.NRGBA{A: 0xff}
		for x := 0; x < w; x++ {
			canvas.SetNRGBA(x, 0, black)
			canvas.SetNRGBA(x, h-1, black)
		}
		for y := 0; y < h; y++ {
			canvas.SetNRGBA(0, y, black)
			canvas.SetNRGBA(w-1, y, black)
		}
	}
	return canvas
}

// DrawStretched scales img to exactly fill r and composites it over dst.
func DrawStretched(dst *image.NRGBA, img image.Image, r image.Rectangle) {
	if img == nil || r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	scaled := imaging.Resize(img, r.Dx(), r.Dy(), imaging.Lanczos)
	xdraw.Draw(dst, r, scaled, scaled.Bounds().Min, xdraw.Over)
}

// DrawFitted scales img to the largest size that fits r without changing
// its aspect ratio and places it inside r according to align.
func DrawFitted(dst *image.NRGBA, img image.Image, r image.Rectangle, align schema.Alignment) {
	if img == nil || r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return
	}
	sx := float64(r.Dx()) / float64(b.Dx())
	sy := float64(r.Dy()) / float64(b.Dy())
	scale := min(sx, sy)
	w := max(1, int(float64(b.Dx())*scale+0.5))
	h := max(1, int(float64(b.Dy())*scale+0.5))
	w, h = min(w, r.Dx()), min(h, r.Dy())

	scaled := imaging.Resize(img, w, h, imaging.Lanczos)
	at := image.Pt(
		r.Min.X+offset(align.Horizontal, r.Dx(), w),
		r.Min.Y+offset(align.Vertical, r.Dy(), h),
	)
	xdraw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(image.Pt(w, h))}, scaled, scaled.Bounds().Min, xdraw.Over)
}

// offset returns where content of size used starts inside space.
func offset(a schema.Align, space, used int) int {
	switch a {
	case schema.AlignNear:
		return 0
	case schema.AlignFar:
		return space - used
	default:
		return (space - used) / 2
	}
}
