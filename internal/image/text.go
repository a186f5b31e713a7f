package imagepkg

import (
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/youruser/cardcreator/internal/schema"
)

// DefaultFitStep is the font size decrement, in points, between two
// attempts of FitText.
const DefaultFitStep = 0.5

// maxFitAttempts bounds FitText when the size range is not finite.
const maxFitAttempts = 1000

// TextStyle describes how a string is laid out inside an area.
type TextStyle struct {
	Font      *opentype.Font
	Color     color.Color
	MaxSize   float64
	MinSize   float64
	Wrap      bool
	Alignment schema.Alignment
	// Step is the size decrement between attempts; DefaultFitStep when 0.
	Step float64
}

// TextLayout is the result of fitting text into an area.
type TextLayout struct {
	Size   float64
	Lines  []string
	Widths []int
	// LineHeight, Ascent and Height are in pixels.
	LineHeight int
	Ascent     int
	Height     int
	Fits       bool
}

// FitText finds the largest size between MaxSize and MinSize, going down in
// Step increments, at which text fits into a width x height box, and returns
// the line breaks at that size. When nothing fits the layout at MinSize is
// returned with Fits unset. The result depends only on the arguments.
func FitText(text string, st TextStyle, width, height int) (TextLayout, error) {
	step := st.Step
	if step <= 0 {
		step = DefaultFitStep
	}
	minSize := math.Min(st.MinSize, st.MaxSize)
	attempts := maxFitAttempts
	if n := math.Ceil((st.MaxSize - minSize) / step); n >= 0 && n < maxFitAttempts {
		attempts = int(n) + 1
	}
	for k := 0; ; k++ {
		size := st.MaxSize - float64(k)*step
		last := size <= minSize || k+1 >= attempts
		if last {
			size = minSize
		}
		l, err := layoutAt(text, st.Font, size, width, st.Wrap)
		if err != nil {
			return TextLayout{}, err
		}
		l.Fits = l.Height <= height && maxWidth(l.Widths) <= width
		if l.Fits || last {
			return l, nil
		}
	}
}

// DrawText fits text into area and draws it there. Glyphs that still
// overflow at the minimum size are clipped to area.
func DrawText(dst *image.NRGBA, text string, st TextStyle, area image.Rectangle) (TextLayout, error) {
	l, err := FitText(text, st, area.Dx(), area.Dy())
	if err != nil || len(l.Lines) == 0 || area.Empty() {
		return l, err
	}
	face, err := newFace(st.Font, l.Size)
	if err != nil {
		return l, err
	}
	defer face.Close()

	clip, ok := dst.SubImage(area).(*image.NRGBA)
	if !ok {
		return l, nil
	}
	col := st.Color
	if col == nil {
		col = color.Black
	}
	d := font.Drawer{Dst: clip, Src: image.NewUniform(col), Face: face}
	top := area.Min.Y + offset(st.Alignment.Vertical, area.Dy(), l.Height)
	for i, line := range l.Lines {
		x := area.Min.X + offset(st.Alignment.Horizontal, area.Dx(), l.Widths[i])
		y := top + l.Ascent + i*l.LineHeight
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}
	return l, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func layoutAt(text string, f *opentype.Font, size float64, width int, wrap bool) (TextLayout, error) {
	face, err := newFace(f, size)
	if err != nil {
		return TextLayout{}, err
	}
	defer face.Close()

	m := face.Metrics()
	l := TextLayout{
		Size:       size,
		LineHeight: m.Height.Ceil(),
		Ascent:     m.Ascent.Ceil(),
	}
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if !wrap {
			l.Lines = append(l.Lines, para)
			continue
		}
		l.Lines = append(l.Lines, wrapLine(face, para, width)...)
	}
	l.Widths = make([]int, len(l.Lines))
	for i, line := range l.Lines {
		l.Widths[i] = font.MeasureString(face, line).Ceil()
	}
	l.Height = len(l.Lines) * l.LineHeight
	return l, nil
}

// wrapLine breaks para greedily at spaces. A word wider than width gets a
// line of its own.
func wrapLine(face font.Face, para string, width int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		candidate := cur + " " + w
		if font.MeasureString(face, candidate).Ceil() <= width {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

func maxWidth(ws []int) int {
	m := 0
	for _, w := range ws {
		m = max(m, w)
	}
	return m
}
