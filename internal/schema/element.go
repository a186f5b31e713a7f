package schema

import (
	"image"
	"image/color"
	"math"
)

// JoinDirection is the axis along which elements sharing a name split
// their common area.
type JoinDirection int

const (
	JoinNone JoinDirection = iota
	JoinHorizontal
	JoinVertical
)

func (d JoinDirection) String() string {
	switch d {
	case JoinHorizontal:
		return "horizontal"
	case JoinVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Align positions content inside an area along one axis.
type Align int

const (
	AlignNear Align = iota
	AlignCenter
	AlignFar
)

// Alignment pairs the horizontal and vertical placement of an element.
type Alignment struct {
	Horizontal Align
	Vertical   Align
}

// ElementSchema describes one region of a card. It is a value type: the
// accessors never hand out anything that could mutate it, and WithArea
// returns a repositioned copy.
type ElementSchema struct {
	name         string
	area         image.Rectangle
	background   image.Image
	color        color.Color
	font         string
	maxSize      float64
	minSize      float64
	alignment    Alignment
	wrap         bool
	stretchImage bool
	join         JoinDirection
}

// ElementParams holds the values used to build an ElementSchema.
type ElementParams struct {
	Name         string
	Area         image.Rectangle
	Background   image.Image
	Color        color.Color
	Font         string
	MaxSize      float64
	MinSize      float64
	Alignment    Alignment
	Wrap         bool
	StretchImage bool
	Join         JoinDirection
}

// NewElementSchema validates p and returns the schema it describes.
// MinSize defaults to MaxSize when unset, and Color defaults to black.
func NewElementSchema(p ElementParams) (ElementSchema, error) {
	if p.Name == "" {
		return ElementSchema{}, paramError("name", "must not be empty")
	}
	if p.Area.Dx() < 0 || p.Area.Dy() < 0 {
		return ElementSchema{}, paramError("area", "negative size")
	}
	if !finite(p.MaxSize) || p.MaxSize <= 0 {
		return ElementSchema{}, paramError("maxSize", "must be a positive number")
	}
	if !finite(p.MinSize) {
		return ElementSchema{}, paramError("minSize", "must be a number")
	}
	if p.MinSize <= 0 {
		p.MinSize = p.MaxSize
	}
	if p.MinSize > p.MaxSize {
		return ElementSchema{}, paramError("minSize", "greater than maxSize")
	}
	if p.Color == nil {
		p.Color = color.Black
	}
	return ElementSchema{
		name:         p.Name,
		area:         p.Area,
		background:   p.Background,
		color:        p.Color,
		font:         p.Font,
		maxSize:      p.MaxSize,
		minSize:      p.MinSize,
		alignment:    p.Alignment,
		wrap:         p.Wrap,
		stretchImage: p.StretchImage,
		join:         p.Join,
	}, nil
}

func (s ElementSchema) Name() string                 { return s.name }
func (s ElementSchema) Area() image.Rectangle        { return s.area }
func (s ElementSchema) Background() image.Image      { return s.background }
func (s ElementSchema) Color() color.Color           { return s.color }
func (s ElementSchema) Font() string                 { return s.font }
func (s ElementSchema) MaxSize() float64             { return s.maxSize }
func (s ElementSchema) MinSize() float64             { return s.minSize }
func (s ElementSchema) Alignment() Alignment         { return s.alignment }
func (s ElementSchema) Wrap() bool                   { return s.wrap }
func (s ElementSchema) StretchImage() bool           { return s.stretchImage }
func (s ElementSchema) JoinDirection() JoinDirection { return s.join }

// WithArea returns a copy of s placed at area.
func (s ElementSchema) WithArea(area image.Rectangle) ElementSchema {
	s.area = area
	return s
}

// Slice returns the area of the i-th of n elements sharing this schema's
// area along its join direction. Slices are floor(dimension/n) wide, so the
// trailing dimension%n pixels belong to no slice. With JoinNone the area is
// returned unchanged.
func (s ElementSchema) Slice(i, n int) image.Rectangle {
	a := s.area
	if n <= 1 {
		return a
	}
	switch s.join {
	case JoinHorizontal:
		w := a.Dx() / n
		x := a.Min.X + i*w
		return image.Rect(x, a.Min.Y, x+w, a.Max.Y)
	case JoinVertical:
		h := a.Dy() / n
		y := a.Min.Y + i*h
		return image.Rect(a.Min.X, y, a.Max.X, y+h)
	default:
		return a
	}
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
