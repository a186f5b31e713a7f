package imagepkg

import (
	"image"

	"github.com/youruser/cardcreator/internal/schema"
)

// Renderer rasterizes card parts. It carries no per-card state, so the
// same Renderer can render any number of cards.
type Renderer struct {
	Fonts FontProvider
	// FitStep is the font size decrement used when fitting text.
	FitStep float64
	// Border draws a one pixel black frame around each card.
	Border bool
}

// NewRenderer returns a Renderer with the default fit step and a border.
func NewRenderer(fonts FontProvider) *Renderer {
	if fonts == nil {
		fonts = NewFontRegistry()
	}
	return &Renderer{Fonts: fonts, FitStep: DefaultFitStep, Border: true}
}

// Canvas returns a fresh card canvas.
func (r *Renderer) Canvas(w, h int) *image.NRGBA {
	return NewCanvas(w, h, r.Border)
}

// Text draws text into area using the font settings of es.
func (r *Renderer) Text(dst *image.NRGBA, text string, es schema.ElementSchema, area image.Rectangle) error {
	_, err := DrawText(dst, text, TextStyle{
		Font:      r.Fonts.Font(es.Font()),
		Color:     es.Color(),
		MaxSize:   es.MaxSize(),
		MinSize:   es.MinSize(),
		Wrap:      es.Wrap(),
		Alignment: es.Alignment(),
		Step:      r.FitStep,
	}, area)
	return err
}

// Image draws img into area, stretched or fitted according to es.
func (r *Renderer) Image(dst *image.NRGBA, img image.Image, es schema.ElementSchema, area image.Rectangle) {
	if es.StretchImage() {
		DrawStretched(dst, img, area)
		return
	}
	DrawFitted(dst, img, area, es.Alignment())
}
