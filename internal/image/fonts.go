package imagepkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/cases"
)

// FontProvider resolves the font reference of an element schema.
type FontProvider interface {
	Font(name string) *opentype.Font
}

// FontRegistry maps font names to parsed fonts. Lookups are
// case-insensitive and fall back to Go Regular for unknown names.
// Register and LoadDir must not be called concurrently with Font.
type FontRegistry struct {
	fonts    map[string]*opentype.Font
	fallback *opentype.Font
}

// NewFontRegistry returns a registry holding the Go font family.
func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{fonts: make(map[string]*opentype.Font)}
	for name, data := range map[string][]byte{
		"Go":        goregular.TTF,
		"Go Bold":   gobold.TTF,
		"Go Italic": goitalic.TTF,
		"Go Mono":   gomono.TTF,
	} {
		if err := r.Register(name, data); err != nil {
			panic(fmt.Sprintf("imagepkg: parsing builtin font %s: %v", name, err))
		}
	}
	r.fallback = r.fonts[fontKey("Go")]
	return r
}

// Register parses a TrueType or OpenType font and makes it available under
// name and under the family name stored in the font itself.
func (r *FontRegistry) Register(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font %s: %w", name, err)
	}
	r.fonts[fontKey(name)] = f
	if family, err := f.Name(nil, sfnt.NameIDFull); err == nil && family != "" {
		if _, taken := r.fonts[fontKey(family)]; !taken {
			r.fonts[fontKey(family)] = f
		}
	}
	return nil
}

// LoadDir registers every .ttf and .otf file in dir under its base name.
func (r *FontRegistry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, err
		}
		if err := r.Register(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *FontRegistry) Font(name string) *opentype.Font {
	if f, ok := r.fonts[fontKey(name)]; ok {
		return f
	}
	return r.fallback
}

func fontKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
