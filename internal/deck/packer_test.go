package deck

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type placement struct {
	Page   int
	Handle string
	Rect   Rect
}

// recordingDoc is a Document that remembers every call.
type recordingDoc struct {
	pages      int
	images     int
	placements []placement
	saveErr    error
	savedPath  string
}

func (d *recordingDoc) AddPage() { d.pages++ }

func (d *recordingDoc) AddImage(image.Image) (string, error) {
	d.images++
	return fmt.Sprintf("img%d", d.images), nil
}

func (d *recordingDoc) DrawImage(h string, r Rect) {
	d.placements = append(d.placements, placement{d.pages, h, r})
}

func (d *recordingDoc) Save(path string) error {
	if d.saveErr != nil {
		return d.saveErr
	}
	d.savedPath = path
	return nil
}

var testLayout = NewLayout(Page{Width: 595, Height: 842, Margin: 20, CellMargin: 10}, 100, 150)

func card(ordinal int, name string, reps int) Item {
	return Item{
		Ordinal:     ordinal,
		Name:        name,
		Repetitions: reps,
		Image: func() (image.Image, error) {
			return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
		},
	}
}

func TestPackerRepetitionsOnOnePage(t *testing.T) {
	doc := &recordingDoc{}
	p := NewPacker(testLayout, doc, nil)

	if n, err := p.Add(card(1, "Goblin", 12)); n != 12 || err != nil {
		t.Fatalf("Add = %d, %v", n, err)
	}
	if p.Slot() != 12 || doc.pages != 1 || p.Pages() != 1 {
		t.Errorf("slot = %d pages = %d", p.Slot(), doc.pages)
	}
	for i, pl := range doc.placements {
		if pl.Rect != testLayout.Cell(i) || pl.Handle != "img1" {
			t.Errorf("placement %d = %+v", i, pl)
		}
	}

	called := false
	zero := card(2, "Goblin", 0)
	zero.Image = func() (image.Image, error) { called = true; return nil, nil }
	if n, err := p.Add(zero); n != 0 || err != nil {
		t.Fatalf("Add(zero) = %d, %v", n, err)
	}
	if p.Slot() != 12 || called {
		t.Errorf("zero repetitions advanced slot to %d (rendered: %v)", p.Slot(), called)
	}
	if p.State() != Packing {
		t.Errorf("state = %v, want packing", p.State())
	}
}

func TestPackerStartsNewPages(t *testing.T) {
	doc := &recordingDoc{}
	p := NewPacker(testLayout, doc, nil)
	p.Add(card(1, "a", 20))
	p.Add(card(2, "b", 10))

	if doc.pages != 2 {
		t.Fatalf("pages = %d, want 2", doc.pages)
	}
	if got := doc.placements[25]; got.Page != 2 || got.Rect != (Rect{20, 20, 100, 150}) || got.Handle != "img2" {
		t.Errorf("first slot of page 2 = %+v", got)
	}
	if doc.images != 2 {
		t.Errorf("images registered = %d, want one per card", doc.images)
	}
}

func TestPackerIsolatesFailures(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	doc := &recordingDoc{}
	p := NewPacker(testLayout, doc, log)

	bad := card(2, "Broken", 3)
	bad.Image = func() (image.Image, error) { return nil, errors.New("font exploded") }
	panicky := card(3, "Panicky", 1)
	panicky.Image = func() (image.Image, error) { panic("boom") }

	successes := 0
	for _, it := range []Item{card(1, "First", 2), bad, panicky, card(4, "Last", 1)} {
		if _, err := p.Add(it); err == nil {
			successes++
		}
	}
	if successes != 2 {
		t.Errorf("successes = %d, want 2", successes)
	}
	if p.Slot() != 3 {
		t.Errorf("slot = %d, want 3", p.Slot())
	}
	if got := doc.placements[2].Rect; got != testLayout.Cell(2) {
		t.Errorf("last card placed at %+v, want slot 2", got)
	}
	if n := strings.Count(logs.String(), "font exploded"); n != 1 {
		t.Errorf("failure logged %d times, want 1:\n%s", n, logs.String())
	}
	if !strings.Contains(logs.String(), "2nd") {
		t.Errorf("log lacks ordinal:\n%s", logs.String())
	}
	want := Deck{Entries: []Entry{{"First", 2}, {"Last", 1}}}
	if diff := cmp.Diff(want, p.Deck()); diff != "" {
		t.Errorf("deck mismatch (-want +got):\n%s", diff)
	}
}

func TestPackerSave(t *testing.T) {
	doc := &recordingDoc{}
	p := NewPacker(testLayout, doc, nil)
	if p.State() != Empty {
		t.Errorf("initial state = %v", p.State())
	}
	p.Add(card(1, "a", 1))
	if err := p.Save("/out/cards.pdf"); err != nil {
		t.Fatal(err)
	}
	if p.State() != Saved || doc.savedPath != "/out/cards.pdf" {
		t.Errorf("state = %v path = %q", p.State(), doc.savedPath)
	}
	if _, err := p.Add(card(2, "b", 1)); !errors.Is(err, ErrPackerClosed) {
		t.Errorf("Add after save err = %v", err)
	}
	if err := p.Save("/out/again.pdf"); !errors.Is(err, ErrPackerClosed) {
		t.Errorf("second Save err = %v", err)
	}
}

func TestPackerSaveWithoutCards(t *testing.T) {
	doc := &recordingDoc{}
	p := NewPacker(testLayout, doc, nil)
	p.Add(card(1, "a", 0))
	if err := p.Save("/out/cards.pdf"); err != nil {
		t.Fatal(err)
	}
	if doc.pages != 1 || p.Pages() != 1 || p.Slot() != 0 {
		t.Errorf("doc pages = %d, Pages = %d, Slot = %d, want 1 1 0", doc.pages, p.Pages(), p.Slot())
	}
}

func TestPackerSaveFailure(t *testing.T) {
	doc := &recordingDoc{saveErr: errors.New("disk full")}
	p := NewPacker(testLayout, doc, nil)
	p.Add(card(1, "a", 1))
	if err := p.Save("/out/cards.pdf"); err == nil {
		t.Fatal("expected save error")
	}
	if p.State() != SaveFailed {
		t.Errorf("state = %v, want save failed", p.State())
	}
}

func TestExportDeckText(t *testing.T) {
	d := Deck{Name: "Starter"}
	d.Add("Goblin", 3)
	d.Add("", 1)
	want := "# Starter\n3xGoblin\n1x(unnamed)"
	if got := ExportDeckText(d); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if d.Total() != 4 {
		t.Errorf("Total = %d", d.Total())
	}
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 102: "102nd", 111: "111th"} {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
