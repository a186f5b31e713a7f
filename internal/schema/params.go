package schema

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
)

// Rows of element parameters, in file order.
const (
	paramName = iota
	paramX
	paramY
	paramWidth
	paramHeight
	paramBackground
	paramColor
	paramFont
	paramMaxSize
	paramMinSize
	paramHAlign
	paramVAlign
	paramWrap
	paramStretch
	paramJoin

	// ElementParamsNumber is the number of rows describing element slots.
	ElementParamsNumber
)

// CardParamsNumber is the number of cells describing the card itself:
// widthPx, heightPx, widthInch, heightInch and an optional background.
const CardParamsNumber = 5

// ImageSource loads images referenced by schema parameters.
type ImageSource interface {
	Image(path string) (image.Image, error)
}

// foldCase lowers s for case-insensitive keyword matching. Casers keep
// state, so each call gets its own.
func foldCase(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Parse builds a CardSchema from raw table cells. cardRow holds the card
// parameters; elementRows holds ElementParamsNumber rows whose first cell is a
// label and whose remaining cells describe one slot each. Relative image
// paths are resolved against dir.
func Parse(cardRow []string, elementRows [][]string, dir string, images ImageSource) (*CardSchema, error) {
	cp, err := parseCardParams(cardRow, dir, images)
	if err != nil {
		return nil, err
	}
	if len(elementRows) < ElementParamsNumber {
		return nil, paramError("elements", fmt.Sprintf("need %d parameter rows, got %d", ElementParamsNumber, len(elementRows)))
	}

	n := SlotCount(elementRows[paramName])
	elements := make([]ElementSchema, 0, n)
	for i := 1; i <= n; i++ {
		cell := func(row int) string {
			r := elementRows[row]
			if i < len(r) {
				return strings.TrimSpace(r[i])
			}
			return ""
		}
		es, err := parseElement(cell, dir, images)
		if err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i, cell(paramName), err)
		}
		elements = append(elements, es)
	}
	return NewCardSchema(cp, elements)
}

// SlotCount returns the number of consecutive non-empty names after the
// label cell of a name row.
func SlotCount(nameRow []string) int {
	n := 0
	for _, v := range nameRow[min(1, len(nameRow)):] {
		if strings.TrimSpace(v) == "" {
			break
		}
		n++
	}
	return n
}

func parseCardParams(row []string, dir string, images ImageSource) (CardParams, error) {
	if len(row) < CardParamsNumber-1 {
		return CardParams{}, paramError("card", fmt.Sprintf("need at least %d values, got %d", CardParamsNumber-1, len(row)))
	}
	var (
		p   CardParams
		err error
	)
	if p.WidthPx, err = atoi("widthPx", row[0]); err != nil {
		return p, err
	}
	if p.HeightPx, err = atoi("heightPx", row[1]); err != nil {
		return p, err
	}
	if p.WidthInch, err = atof("widthInch", row[2]); err != nil {
		return p, err
	}
	if p.HeightInch, err = atof("heightInch", row[3]); err != nil {
		return p, err
	}
	if len(row) > 4 {
		if p.Background, err = loadImage(images, dir, row[4]); err != nil {
			return p, err
		}
	}
	return p, nil
}

func parseElement(cell func(int) string, dir string, images ImageSource) (ElementSchema, error) {
	var (
		p   ElementParams
		err error
	)
	p.Name = cell(paramName)

	var x, y, w, h int
	for _, f := range []struct {
		dst   *int
		row   int
		label string
	}{
		{&x, paramX, "x"},
		{&y, paramY, "y"},
		{&w, paramWidth, "width"},
		{&h, paramHeight, "height"},
	} {
		if *f.dst, err = atoi(f.label, cell(f.row)); err != nil {
			return ElementSchema{}, err
		}
	}
	p.Area = image.Rect(x, y, x+w, y+h)

	if p.Background, err = loadImage(images, dir, cell(paramBackground)); err != nil {
		return ElementSchema{}, err
	}
	if p.Color, err = ParseColor(cell(paramColor)); err != nil {
		return ElementSchema{}, err
	}
	p.Font = cell(paramFont)
	if p.MaxSize, err = atof("maxSize", cell(paramMaxSize)); err != nil {
		return ElementSchema{}, err
	}
	if v := cell(paramMinSize); v != "" {
		if p.MinSize, err = atof("minSize", v); err != nil {
			return ElementSchema{}, err
		}
	}
	if p.Alignment.Horizontal, err = parseAlign(cell(paramHAlign), "left", "right"); err != nil {
		return ElementSchema{}, err
	}
	if p.Alignment.Vertical, err = parseAlign(cell(paramVAlign), "top", "bottom"); err != nil {
		return ElementSchema{}, err
	}
	if p.Wrap, err = parseBool("wrap", cell(paramWrap)); err != nil {
		return ElementSchema{}, err
	}
	if p.StretchImage, err = parseBool("stretch", cell(paramStretch)); err != nil {
		return ElementSchema{}, err
	}
	if p.Join, err = ParseJoinDirection(cell(paramJoin)); err != nil {
		return ElementSchema{}, err
	}
	return NewElementSchema(p)
}

// ParseColor reads a "#rrggbb" or "#rrggbbaa" hex color. An empty string
// yields nil so the element default applies.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, paramError("color", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, paramError("color", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// ParseJoinDirection reads none, horizontal or vertical, case-insensitively.
func ParseJoinDirection(s string) (JoinDirection, error) {
	switch foldCase(s) {
	case "", "none":
		return JoinNone, nil
	case "horizontal", "horizontally", "h":
		return JoinHorizontal, nil
	case "vertical", "vertically", "v":
		return JoinVertical, nil
	}
	return JoinNone, paramError("join", s)
}

func parseAlign(s, near, far string) (Align, error) {
	switch foldCase(s) {
	case "", "center", "middle":
		return AlignCenter, nil
	case near, "near":
		return AlignNear, nil
	case far, "far":
		return AlignFar, nil
	}
	return AlignCenter, paramError("alignment", s)
}

func parseBool(label, s string) (bool, error) {
	switch foldCase(s) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y":
		return true, nil
	}
	return false, paramError(label, s)
}

func atoi(label, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// spreadsheets often store integers as "12.0"
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, paramError(label, fmt.Sprintf("%q is not an integer", s))
		}
		v = int(f)
	}
	return v, nil
}

func atof(label, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, paramError(label, fmt.Sprintf("%q is not a number", s))
	}
	return v, nil
}

func loadImage(images ImageSource, dir, name string) (image.Image, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if images == nil {
		return nil, paramError("background", "no image source for "+name)
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, name)
	}
	img, err := images.Image(path)
	if err != nil {
		return nil, fmt.Errorf("background %s: %w", name, err)
	}
	return img, nil
}
