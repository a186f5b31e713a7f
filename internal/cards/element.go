package cards

import (
	"image"

	imagepkg "github.com/youruser/cardcreator/internal/image"
	"github.com/youruser/cardcreator/internal/schema"
)

// Drawable is anything that can paint itself onto a card canvas.
type Drawable interface {
	Draw(dst *image.NRGBA, r *imagepkg.Renderer) error
}

// Element is one schema slot filled with the content of a data row.
type Element struct {
	content string
	schema  schema.ElementSchema
	image   image.Image
}

func newElement(images imagepkg.ImageProvider, es schema.ElementSchema, content, dir string) *Element {
	e := &Element{content: content, schema: es}
	if images != nil && content != "" {
		e.image = images.TryGet(dir, content)
	}
	return e
}

func (e *Element) Content() string              { return e.content }
func (e *Element) Schema() schema.ElementSchema { return e.schema }
func (e *Element) Area() image.Rectangle        { return e.schema.Area() }

// Image is the resolved image content, or nil for text content.
func (e *Element) Image() image.Image { return e.image }

// setPosition moves e to the i-th of n slices of its area.
func (e *Element) setPosition(i, n int) {
	e.schema = e.schema.WithArea(e.schema.Slice(i, n))
}

// Drawables returns the element background, if any, followed by the
// element content.
func (e *Element) Drawables() []Drawable {
	var out []Drawable
	if bg := e.schema.Background(); bg != nil {
		out = append(out, Background{Image: bg, Area: e.Area()})
	}
	if e.image != nil {
		out = append(out, ImageElement{e})
	} else {
		out = append(out, TextElement{e})
	}
	return out
}

func (e *Element) Draw(dst *image.NRGBA, r *imagepkg.Renderer) error {
	for _, d := range e.Drawables() {
		if err := d.Draw(dst, r); err != nil {
			return err
		}
	}
	return nil
}

// Background is an image stretched over an area: the whole card for a
// card schema background, or an element area.
type Background struct {
	Image image.Image
	Area  image.Rectangle
}

func (b Background) Draw(dst *image.NRGBA, _ *imagepkg.Renderer) error {
	imagepkg.DrawStretched(dst, b.Image, b.Area)
	return nil
}

// TextElement draws element content as auto-fitted text.
type TextElement struct{ *Element }

func (t TextElement) Draw(dst *image.NRGBA, r *imagepkg.Renderer) error {
	if t.content == "" {
		return nil
	}
	return r.Text(dst, t.content, t.schema, t.Area())
}

// ImageElement draws the resolved image of an element.
type ImageElement struct{ *Element }

func (i ImageElement) Draw(dst *image.NRGBA, r *imagepkg.Renderer) error {
	r.Image(dst, i.image, i.schema, i.Area())
	return nil
}
