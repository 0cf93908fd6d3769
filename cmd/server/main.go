package main

import (
	"log/slog"
	"os"

	"github.com/tourofheroes/heroes/internal/config"
	"github.com/tourofheroes/heroes/internal/logging"
	"github.com/tourofheroes/heroes/internal/server"
)

func main() {
	cfg := config.New()
	logging.New() // Initialize the structured logger

	s, err := server.New(server.Dependencies{Config: cfg})
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(cfg.GetServerAddr()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
