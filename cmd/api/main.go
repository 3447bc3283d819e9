package main

import (
	"flag"
	"os"

	"github.com/yigit/diasporahub/internal/bootstrap"
	"github.com/yigit/diasporahub/internal/pkg/logger"
	"github.com/yigit/diasporahub/internal/server"
)

// @title Diaspora Hub API
// @version 1.0
// @description Local-first API behind the Diaspora Hub community app
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
