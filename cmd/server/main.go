package main

import (
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardcreator/internal/api"
	"github.com/youruser/cardcreator/internal/config"
	"github.com/youruser/cardcreator/internal/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(logger)

	if _, err := os.Stat(cfg.Server.DataDir); err != nil {
		logger.Warn("data directory not readable", "dir", cfg.Server.DataDir, "err", err)
	}
	srv, err := api.NewServer(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	api.RegisterRoutes(r, srv)

	logger.Info("starting server on http://localhost:" + cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
