package deck

import (
	"strconv"
	"strings"
)

// Entry is one card of a deck and the number of copies printed.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Deck lists the cards placed on a print sheet, in placement order.
type Deck struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

func (d *Deck) Add(name string, count int) {
	d.Entries = append(d.Entries, Entry{Name: name, Count: count})
}

// Total is the number of printed card copies.
func (d Deck) Total() int {
	n := 0
	for _, e := range d.Entries {
		n += e.Count
	}
	return n
}

func ExportDeckText(d Deck) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	for _, e := range d.Entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = "(unnamed)"
		}
		lines = append(lines, strconv.Itoa(e.Count)+"x"+name)
	}
	return strings.Join(lines, "\n")
}

// Ordinal spells n as an English ordinal: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
