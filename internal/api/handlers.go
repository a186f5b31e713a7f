package api

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardcreator/internal/cards"
	imagepkg "github.com/youruser/cardcreator/internal/image"
	"github.com/youruser/cardcreator/internal/preview"
)

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// files lists the card files of the data directory
func (s *Server) filesHandler(c *gin.Context) {
	entries, err := os.ReadDir(s.Config.Server.DataDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// filter returns the card rows of one file matching the options
func (s *Server) filterHandler(c *gin.Context) {
	var req struct {
		File string `json:"file"`
		cards.FilterOptions
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	path, err := s.resolve(req.File)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := cards.Load(path)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	type row struct {
		Ordinal     int      `json:"ordinal"`
		Repetitions int      `json:"repetitions"`
		Cells       []string `json:"cells"`
	}
	out := []row{}
	for _, r := range cards.Filter(f.Rows, req.FilterOptions) {
		out = append(out, row{r.Ordinal, r.Repetitions, r.Cells})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

type previewMove func(p *preview.Preview, gridW, gridH int) (image.Image, error)

func previewCurrent(p *preview.Preview, w, h int) (image.Image, error)  { return p.Current(w, h) }
func previewNext(p *preview.Preview, w, h int) (image.Image, error)     { return p.Next(w, h) }
func previewPrevious(p *preview.Preview, w, h int) (image.Image, error) { return p.Previous(w, h) }

// preview renders a card of ?file= as PNG, with grid lines every
// ?grid_w= and ?grid_h= pixels
func (s *Server) previewHandler(move previewMove) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := s.resolve(c.Query("file"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		gridW, _ := strconv.Atoi(c.Query("grid_w"))
		gridH, _ := strconv.Atoi(c.Query("grid_h"))

		s.mu.Lock()
		defer s.mu.Unlock()
		p, err := s.preview(path)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		img, err := move(p, gridW, gridH)
		if err != nil {
			c.JSON(statusOf(err), gin.H{"error": err.Error()})
			return
		}
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, img); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		n, _ := p.Len()
		c.Header("X-Card-Position", strconv.Itoa(p.Position()))
		c.Header("X-Card-Count", strconv.Itoa(n))
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// refresh re-reads ?file= and drops its cached previews
func (s *Server) refreshHandler(c *gin.Context) {
	path, err := s.resolve(c.Query("file"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.preview(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := p.Refresh(); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	n, _ := p.Len()
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// statusOf maps pipeline errors onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, os.ErrNotExist), errors.Is(err, preview.ErrNoCards):
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}
