package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	imagepkg "github.com/youruser/cardcreator/internal/image"
)

func sampleTable() [][]string {
	return table(
		[]string{"120", "160", "2.5", "3.5"},
		[]column{textColumn("name", 0, 0, 120, 30), textColumn("text", 0, 30, 120, 100)},
		[]string{"2", "Goblin", "Sneaky"},
		[]string{"", "Orc", ""},
		[]string{"", "", ""},
		[]string{"x", "Broken", "row"},
		[]string{"0", "Troll", "Big", "", ""},
	)
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), sampleTable())
	checkLoaded(t, path)
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, t.TempDir(), sampleTable())
	checkLoaded(t, path)
}

func checkLoaded(t *testing.T, path string) {
	t.Helper()
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Dir != filepath.Dir(path) {
		t.Errorf("Dir = %q", f.Dir)
	}

	type rowSummary struct {
		Ordinal     int
		Repetitions int
		Invalid     bool
		Contents    []string
	}
	var got []rowSummary
	for _, r := range f.Rows {
		got = append(got, rowSummary{r.Ordinal, r.Repetitions, r.RepetitionsErr != nil, r.Contents(2)})
	}
	want := []rowSummary{
		{1, 2, false, []string{"Goblin", "Sneaky"}},
		{2, 1, false, []string{"Orc", ""}},
		{4, 0, true, []string{"Broken", "row"}},
		{5, 0, false, []string{"Troll", "Big"}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	cs, err := f.Schema(imagepkg.FileProvider{})
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if cs.Len() != 2 || cs.Element(1).Name() != "text" {
		t.Errorf("schema has %d slots", cs.Len())
	}
	if _, err := NewCard(cs, f.Rows[0].Contents(cs.Len()), f.Rows[0].Repetitions, f.Dir, noImages{}); err != nil {
		t.Errorf("NewCard: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("missing file should fail")
	}
	txt := filepath.Join(dir, "cards.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(txt); err == nil {
		t.Error("unsupported extension should fail")
	}
	short := writeCSV(t, dir, [][]string{{"1", "1", "1", "1"}})
	if _, err := Load(short); err == nil {
		t.Error("file without element rows should fail")
	}
}

func TestRowContentsKeepsShortRows(t *testing.T) {
	r := Row{Cells: []string{"a"}}
	if got := r.Contents(3); len(got) != 1 {
		t.Errorf("Contents = %q, want the single cell back", got)
	}
	r = Row{Cells: []string{"a", "b", "c"}}
	if got := r.Contents(2); len(got) != 3 {
		t.Errorf("non-empty extra cell must be kept, got %q", got)
	}
}

func TestFilter(t *testing.T) {
	rows := []Row{
		{Ordinal: 1, Repetitions: 2, Cells: []string{"Goblin", "Sneaky"}},
		{Ordinal: 2, Repetitions: 0, Cells: []string{"Troll", "Big"}},
		{Ordinal: 3, RepetitionsErr: os.ErrInvalid, Cells: []string{"Broken"}},
		{Ordinal: 4, Repetitions: 1, Cells: []string{"Orc", "sneaky too"}},
	}
	ordinals := func(rs []Row) []int {
		var out []int
		for _, r := range rs {
			out = append(out, r.Ordinal)
		}
		return out
	}
	tests := []struct {
		name string
		opt  FilterOptions
		want []int
	}{
		{"all", FilterOptions{}, []int{1, 2, 3, 4}},
		{"printable", FilterOptions{MinRepetitions: 1, SkipInvalid: true}, []int{1, 4}},
		{"words", FilterOptions{FreeWords: "SNEAKY"}, []int{1, 4}},
		{"two words", FilterOptions{FreeWords: "orc too"}, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ordinals(Filter(rows, tt.opt))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
