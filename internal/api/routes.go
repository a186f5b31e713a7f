package api

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardcreator/internal/config"
	"github.com/youruser/cardcreator/internal/export"
	"github.com/youruser/cardcreator/internal/logging"
	"github.com/youruser/cardcreator/internal/preview"
	"github.com/youruser/cardcreator/internal/schema"
)

var errBadPath = errors.New("file must be a relative path inside the data directory")

// Server serves the card files found in Config.Server.DataDir.
type Server struct {
	Config   *config.Config
	Exporter *export.Exporter
	Log      *slog.Logger

	mu       sync.Mutex
	previews map[string]*preview.Preview
}

// NewServer returns a server whose exports use cfg's page and renderer.
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	r, err := cfg.Renderer()
	if err != nil {
		return nil, err
	}
	return &Server{
		Config: cfg,
		Exporter: &export.Exporter{
			Renderer: r,
			Page:     cfg.PrintPage(),
			Log:      log,
		},
		Log:      logging.OrNop(log),
		previews: make(map[string]*preview.Preview),
	}, nil
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/files", s.filesHandler)
		api.POST("/filter", s.filterHandler)
		api.GET("/qr", qrHandler)

		api.GET("/preview", s.previewHandler(previewCurrent))
		api.POST("/preview/next", s.previewHandler(previewNext))
		api.POST("/preview/previous", s.previewHandler(previewPrevious))
		api.POST("/preview/refresh", s.refreshHandler)

		api.POST("/export/pdf", s.exportPDFHandler)
		api.POST("/export/images", s.exportImagesHandler)
		api.POST("/export/pdf-from-images", s.pdfFromImagesHandler)
	}
}

// resolve maps a client file name onto the data directory.
func (s *Server) resolve(name string) (string, error) {
	if name == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", errBadPath, name)
	}
	return filepath.Join(s.Config.Server.DataDir, name), nil
}

// preview returns the preview of path, creating it on first use. Callers
// hold s.mu.
func (s *Server) preview(path string) (*preview.Preview, error) {
	if p, ok := s.previews[path]; ok {
		return p, nil
	}
	grid, err := schema.ParseColor(s.Config.Preview.GridColor)
	if err != nil {
		return nil, fmt.Errorf("preview.grid_color: %w", err)
	}
	p := preview.New(path, s.Exporter.Renderer, s.Exporter.Images, grid)
	s.previews[path] = p
	return p, nil
}
