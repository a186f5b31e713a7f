package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardcreator/internal/deck"
	"github.com/youruser/cardcreator/internal/export"
)

type exportResponse struct {
	export.Result
	Manifest string `json:"manifest"`
}

// relative turns an output path back into a data-directory name.
func (s *Server) relative(path string) string {
	if rel, err := filepath.Rel(s.Config.Server.DataDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(path)
}

func (s *Server) respond(c *gin.Context, res export.Result, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, export.ErrInputMissing):
			status = http.StatusNotFound
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error(), "successes": 0})
		return
	}
	res.Output = s.relative(res.Output)
	c.JSON(http.StatusOK, exportResponse{Result: res, Manifest: deck.ExportDeckText(res.Deck)})
}

func (s *Server) bindFile(c *gin.Context) (string, bool) {
	var req struct {
		File string `json:"file"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	path, err := s.resolve(req.File)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return path, true
}

// export/pdf packs a card file into a PDF next to it
func (s *Server) exportPDFHandler(c *gin.Context) {
	path, ok := s.bindFile(c)
	if !ok {
		return
	}
	res, err := s.Exporter.PDF(c.Request.Context(), path)
	s.respond(c, res, err)
}

// export/images writes one PNG per card
func (s *Server) exportImagesHandler(c *gin.Context) {
	path, ok := s.bindFile(c)
	if !ok {
		return
	}
	res, err := s.Exporter.Images(c.Request.Context(), path)
	s.respond(c, res, err)
}

// export/pdf-from-images packs ready card images into one PDF
func (s *Server) pdfFromImagesHandler(c *gin.Context) {
	var req struct {
		Files  []string `json:"files"`
		DPI    int      `json:"dpi"`
		Output string   `json:"output"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	paths := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		p, err := s.resolve(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		paths = append(paths, p)
	}
	if req.Output == "" {
		req.Output = "images.pdf"
	}
	out, err := s.resolve(req.Output)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DPI == 0 {
		req.DPI = s.Config.Images.DPI
	}
	res, err := s.Exporter.PDFFromImages(c.Request.Context(), paths, req.DPI, out)
	s.respond(c, res, err)
}
