package main

import (
	"os"

	"github.com/yigit/studentreg/internal/pkg/logger"
	"github.com/yigit/studentreg/internal/server"
)

// @title Student Registration API
// @version 1.0
// @description Registers students and lists them. Every endpoint answers with a {success, data | error} envelope.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /api
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// the package default logger is usable before configuration
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until a shutdown signal or a listener failure
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
