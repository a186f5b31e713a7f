package imagepkg

import (
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/gomono"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := imaging.Save(imaging.New(w, h, red), path); err != nil {
		t.Fatal(err)
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "art.png"), 4, 3)

	img := FileProvider{}.TryGet(dir, "art.png")
	if img == nil {
		t.Fatal("expected image for existing file")
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	for _, content := range []string{"", "Goblin", "missing.png", "two\nlines"} {
		if (FileProvider{}).TryGet(dir, content) != nil {
			t.Errorf("TryGet(%q) returned an image", content)
		}
	}
	if _, err := (FileProvider{}).Image(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Image on a missing file should fail")
	}
}

func TestURLProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/art.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	}))
	defer srv.Close()

	if img := (URLProvider{}).TryGet("", srv.URL+"/art.png"); img == nil {
		t.Error("expected downloaded image")
	}
	if img := (URLProvider{}).TryGet("", srv.URL+"/missing.png"); img != nil {
		t.Error("404 should yield no image")
	}
	if img := (URLProvider{}).TryGet("", "plain text"); img != nil {
		t.Error("non-URL content should yield no image")
	}
}

func TestQRProvider(t *testing.T) {
	img := QRProvider{}.TryGet("", "qr:https://example.com/card/1")
	if img == nil {
		t.Fatal("expected QR image")
	}
	if img.Bounds().Dx() != qrSize {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), qrSize)
	}
	if (QRProvider{}).TryGet("", "not a qr") != nil {
		t.Error("content without prefix should yield no image")
	}
}

func TestChainProviderOrder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "qr:x.png"), 1, 1)
	img := DefaultProvider().TryGet(dir, "qr:x.png")
	if img == nil || img.Bounds().Dx() != qrSize {
		t.Errorf("QR provider should win over file provider, got %v", img)
	}
}

func TestFontRegistry(t *testing.T) {
	r := NewFontRegistry()
	if r.Font("go bold") == nil || r.Font("go bold") == r.Font("Go") {
		t.Error("case-insensitive lookup of Go Bold failed")
	}
	if r.Font("Unknown Family") != r.Font("Go") {
		t.Error("unknown font should fall back to Go")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Runic.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := r.LoadDir(dir)
	if err != nil || n != 1 {
		t.Fatalf("LoadDir = %d, %v", n, err)
	}
	if r.Font("runic") == r.Font("Go") {
		t.Error("loaded font not registered under its file name")
	}
}
