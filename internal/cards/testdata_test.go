package cards

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/tabula/xlsx"

	"github.com/youruser/cardcreator/internal/schema"
)

// column describes one element slot as its 15 parameter cells.
type column [schema.ElementParamsNumber]string

func textColumn(name string, x, y, w, h int) column {
	return column{name, fmt.Sprint(x), fmt.Sprint(y), fmt.Sprint(w), fmt.Sprint(h), "", "#000000", "Go", "14", "6", "center", "middle", "true", "", "none"}
}

// table lays out a card file: card params, element params, then card rows
// whose first cell is the repetition count.
func table(card []string, cols []column, rows ...[]string) [][]string {
	out := [][]string{card}
	for p := 0; p < schema.ElementParamsNumber; p++ {
		r := []string{fmt.Sprintf("param%d", p)}
		for _, c := range cols {
			r = append(r, c[p])
		}
		out = append(out, r)
	}
	return append(out, rows...)
}

func writeCSV(t *testing.T, dir string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, "cards.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeXLSX writes the smallest workbook the xlsx reader accepts, with
// every cell stored as an inline string.
func writeXLSX(t *testing.T, dir string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, "cards.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var sheet strings.Builder
	sheet.WriteString(`<?xml version="1.0" encoding="UTF-8"?><worksheet><sheetData>`)
	for r, row := range rows {
		fmt.Fprintf(&sheet, `<row r="%d">`, r+1)
		for c, v := range row {
			if v == "" {
				continue
			}
			fmt.Fprintf(&sheet, `<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, xlsx.CellRef(c, r), xmlEscape(v))
		}
		sheet.WriteString(`</row>`)
	}
	sheet.WriteString(`</sheetData></worksheet>`)

	zw := zip.NewWriter(f)
	for name, body := range map[string]string{
		"[Content_Types].xml":      `<?xml version="1.0" encoding="UTF-8"?><Types></Types>`,
		"xl/workbook.xml":          `<?xml version="1.0" encoding="UTF-8"?><workbook><sheets><sheet name="Cards" sheetId="1"/></sheets></workbook>`,
		"xl/worksheets/sheet1.xml": sheet.String(),
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

type noImages struct{}

func (noImages) TryGet(string, string) image.Image { return nil }
