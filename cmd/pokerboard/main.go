package main

import (
	"log/slog"
	"os"

	"github.com/evanofslack/pokerboard/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	// Create and start leaderboard server
	boardServer, err := server.NewBoardServer()
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	// Start server (blocks until shutdown)
	if err := boardServer.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
