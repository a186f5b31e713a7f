package deck

import "math"

// PointsPerInch converts physical card and page sizes to PDF points.
const PointsPerInch = 72.0

// A4 page size in inches.
const (
	A4WidthInch  = 8.27
	A4HeightInch = 11.69
)

// Rect is a rectangle in points, origin at the top-left of the page.
type Rect struct {
	X, Y, W, H float64
}

// Page describes the sheet cards are printed on, in points.
type Page struct {
	Width      float64
	Height     float64
	Margin     float64
	CellMargin float64
}

// A4 returns an A4 page with the given page and inter-card margins.
func A4(margin, cellMargin float64) Page {
	return Page{
		Width:      A4WidthInch * PointsPerInch,
		Height:     A4HeightInch * PointsPerInch,
		Margin:     margin,
		CellMargin: cellMargin,
	}
}

// Layout is the grid of card cells on a page.
type Layout struct {
	Page       Page
	CardWidth  float64
	CardHeight float64

	CardsInRow   int
	CardsInCol   int
	CardsPerPage int
}

// NewLayout computes how many cards of the given size, in points, fit on
// page. At least one card fits in each direction even if it overflows the
// printable area.
func NewLayout(page Page, cardWidth, cardHeight float64) Layout {
	printableW := page.Width - 2*page.Margin
	printableH := page.Height - 2*page.Margin
	l := Layout{
		Page:       page,
		CardWidth:  cardWidth,
		CardHeight: cardHeight,
		CardsInRow: cells(printableW, cardWidth+page.CellMargin),
		CardsInCol: cells(printableH, cardHeight+page.CellMargin),
	}
	l.CardsPerPage = l.CardsInRow * l.CardsInCol
	return l
}

func cells(space, cell float64) int {
	if cell <= 0 {
		return 1
	}
	return max(1, int(math.Floor(space/cell)))
}

// Cell returns the rectangle of slot s, counted across all pages, on its
// page.
func (l Layout) Cell(s int) Rect {
	col := s % l.CardsInRow
	row := s % l.CardsPerPage / l.CardsInRow
	return Rect{
		X: l.Page.Margin + float64(col)*(l.CardWidth+l.Page.CellMargin),
		Y: l.Page.Margin + float64(row)*(l.CardHeight+l.Page.CellMargin),
		W: l.CardWidth,
		H: l.CardHeight,
	}
}

// PageOf returns the 0-based page index of slot s.
func (l Layout) PageOf(s int) int {
	return s / l.CardsPerPage
}
