package schema

import (
	"image"
)

// CardSchema is the ordered list of element slots of a card together with
// the card's pixel and physical size.
type CardSchema struct {
	elements   []ElementSchema
	widthPx    int
	heightPx   int
	widthInch  float64
	heightInch float64
	background image.Image
}

// CardParams holds the card-level values used to build a CardSchema.
type CardParams struct {
	WidthPx    int
	HeightPx   int
	WidthInch  float64
	HeightInch float64
	Background image.Image
}

// NewCardSchema returns a schema for cards described by p with the given
// element slots in order.
func NewCardSchema(p CardParams, elements []ElementSchema) (*CardSchema, error) {
	if p.WidthPx <= 0 || p.HeightPx <= 0 {
		return nil, paramError("size", "pixel size must be positive")
	}
	if !finite(p.WidthInch) || !finite(p.HeightInch) || p.WidthInch <= 0 || p.HeightInch <= 0 {
		return nil, paramError("size", "physical size must be positive")
	}
	return &CardSchema{
		elements:   append([]ElementSchema(nil), elements...),
		widthPx:    p.WidthPx,
		heightPx:   p.HeightPx,
		widthInch:  p.WidthInch,
		heightInch: p.HeightInch,
		background: p.Background,
	}, nil
}

// Len returns the number of element slots.
func (c *CardSchema) Len() int { return len(c.elements) }

// Element returns the i-th slot.
func (c *CardSchema) Element(i int) ElementSchema { return c.elements[i] }

// Elements returns a copy of the slots in order.
func (c *CardSchema) Elements() []ElementSchema {
	return append([]ElementSchema(nil), c.elements...)
}

func (c *CardSchema) WidthPx() int            { return c.widthPx }
func (c *CardSchema) HeightPx() int           { return c.heightPx }
func (c *CardSchema) WidthInch() float64      { return c.widthInch }
func (c *CardSchema) HeightInch() float64     { return c.heightInch }
func (c *CardSchema) Background() image.Image { return c.background }

// Bounds is the full card rectangle in pixels.
func (c *CardSchema) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.widthPx, c.heightPx)
}
