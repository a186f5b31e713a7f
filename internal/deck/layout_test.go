package deck

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLayoutCapacity(t *testing.T) {
	page := Page{Width: 595, Height: 842, Margin: 20, CellMargin: 10}
	l := NewLayout(page, 100, 150)
	if l.CardsInRow != 5 || l.CardsInCol != 5 || l.CardsPerPage != 25 {
		t.Errorf("got %d x %d = %d, want 5 x 5 = 25", l.CardsInRow, l.CardsInCol, l.CardsPerPage)
	}
}

func TestNewLayoutOversizedCardStillFits(t *testing.T) {
	l := NewLayout(A4(20, 10), 1000, 2000)
	if l.CardsInRow != 1 || l.CardsInCol != 1 || l.CardsPerPage != 1 {
		t.Errorf("got %d x %d, want 1 x 1", l.CardsInRow, l.CardsInCol)
	}
}

func TestA4InPoints(t *testing.T) {
	p := A4(20, 10)
	if diff := cmp.Diff(Page{Width: 8.27 * 72, Height: 11.69 * 72, Margin: 20, CellMargin: 10}, p); diff != "" {
		t.Errorf("A4 mismatch (-want +got):\n%s", diff)
	}
}

func TestCell(t *testing.T) {
	l := NewLayout(Page{Width: 595, Height: 842, Margin: 20, CellMargin: 10}, 100, 150)
	tests := []struct {
		slot int
		want Rect
		page int
	}{
		{0, Rect{20, 20, 100, 150}, 0},
		{4, Rect{460, 20, 100, 150}, 0},
		{5, Rect{20, 180, 100, 150}, 0},
		{24, Rect{460, 660, 100, 150}, 0},
		{25, Rect{20, 20, 100, 150}, 1},
		{31, Rect{130, 180, 100, 150}, 1},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, l.Cell(tt.slot)); diff != "" {
			t.Errorf("Cell(%d) mismatch (-want +got):\n%s", tt.slot, diff)
		}
		if got := l.PageOf(tt.slot); got != tt.page {
			t.Errorf("PageOf(%d) = %d, want %d", tt.slot, got, tt.page)
		}
	}
}
