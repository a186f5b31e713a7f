package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tsawler/tabula/xlsx"

	"github.com/youruser/cardcreator/internal/schema"
)

// HeaderRows is the number of rows before the first card row: one row of
// card parameters followed by the element parameter rows.
const HeaderRows = 1 + schema.ElementParamsNumber

// CardFile is a parsed card table.
type CardFile struct {
	Path string
	Dir  string

	CardParams    []string
	ElementParams [][]string
	Rows          []Row
}

// Row is one card row of a card file.
type Row struct {
	// Ordinal is the 1-based position among the data rows, blank rows included.
	Ordinal     int
	Repetitions int
	// RepetitionsErr is set when the repetition cell could not be read; the
	// row is then unusable but the rest of the file is not.
	RepetitionsErr error
	Cells          []string
}

// Contents returns the cells for n slots. Empty cells past n are dropped so
// spreadsheets padded with blank columns still line up; anything else is
// returned as is and left to NewCard to reject.
func (r Row) Contents(n int) []string {
	cells := r.Cells
	for len(cells) > n && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// Load reads a .csv or .xlsx card file.
func Load(path string) (*CardFile, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = loadCSV(path)
	case ".xlsx":
		rows, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported card file type %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(rows) < HeaderRows {
		return nil, fmt.Errorf("%s: need %d header rows, got %d", path, HeaderRows, len(rows))
	}

	f := &CardFile{
		Path:          path,
		Dir:           filepath.Dir(path),
		CardParams:    trimTrailing(rows[0]),
		ElementParams: rows[1:HeaderRows],
	}
	// ordinals count blank rows too, so they match the sheet's data rows
	for i, cells := range rows[HeaderRows:] {
		if isBlank(cells) {
			continue
		}
		row := Row{Ordinal: i + 1}
		if len(cells) > 0 {
			row.Repetitions, row.RepetitionsErr = parseRepetitions(cells[0])
			row.Cells = cells[1:]
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}

// Schema builds the card schema described by the header rows. Images are
// loaded relative to the file's directory.
func (f *CardFile) Schema(images schema.ImageSource) (*schema.CardSchema, error) {
	return schema.Parse(f.CardParams, f.ElementParams, f.Dir, images)
}

func loadCSV(path string) ([][]string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func loadXLSX(path string) ([][]string, error) {
	wb, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(0)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, sheet.RowCount())
	for _, cells := range sheet.Rows {
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRepetitions(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("repetitions %q is not an integer", s)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("repetitions %d is negative", n)
	}
	return n, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailing(cells []string) []string {
	for len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
