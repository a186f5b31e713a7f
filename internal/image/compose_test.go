package imagepkg

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardcreator/internal/schema"
)

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.NRGBA{A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
)

func TestNewCanvasBorder(t *testing.T) {
	c := NewCanvas(10, 8, true)
	if got := c.NRGBAAt(0, 0); got != black {
		t.Errorf("corner = %v, want black", got)
	}
	if got := c.NRGBAAt(9, 7); got != black {
		t.Errorf("far corner = %v, want black", got)
	}
	if got := c.NRGBAAt(5, 4); got != white {
		t.Errorf("inside = %v, want white", got)
	}

	plain := NewCanvas(10, 8, false)
	if got := plain.NRGBAAt(0, 0); got != white {
		t.Errorf("borderless corner = %v, want white", got)
	}
}

func TestDrawStretchedFillsRect(t *testing.T) {
	c := NewCanvas(20, 20, false)
	src := imaging.New(3, 7, red)
	r := image.Rect(5, 5, 15, 10)
	DrawStretched(c, src, r)

	for _, p := range []image.Point{{5, 5}, {14, 9}, {10, 7}} {
		if got := c.NRGBAAt(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range []image.Point{{4, 5}, {15, 9}, {10, 10}} {
		if got := c.NRGBAAt(p.X, p.Y); got != white {
			t.Errorf("pixel %v = %v, want white", p, got)
		}
	}
}

func TestDrawFittedKeepsAspect(t *testing.T) {
	c := NewCanvas(40, 20, false)
	src := imaging.New(10, 10, red)
	r := image.Rect(0, 0, 40, 20)
	DrawFitted(c, src, r, schema.Alignment{Horizontal: schema.AlignFar, Vertical: schema.AlignCenter})

	if got := c.NRGBAAt(5, 10); got != white {
		t.Errorf("left side = %v, want white", got)
	}
	if got := c.NRGBAAt(30, 10); got != red {
		t.Errorf("right side = %v, want red", got)
	}
}

func TestDrawSkipsEmptyRect(t *testing.T) {
	c := NewCanvas(5, 5, false)
	DrawStretched(c, imaging.New(2, 2, red), image.Rect(1, 1, 1, 4))
	DrawFitted(c, imaging.New(2, 2, red), image.Rect(1, 1, 4, 1), schema.Alignment{})
	if got := c.NRGBAAt(1, 1); got != white {
		t.Errorf("pixel = %v, want white", got)
	}
}
