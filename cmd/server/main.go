package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/housetab/housetab/internal/auth"
	"github.com/housetab/housetab/internal/config"
	"github.com/housetab/housetab/internal/server"
	"github.com/housetab/housetab/internal/service"
	"github.com/housetab/housetab/internal/storage/sqlite"
	"github.com/housetab/housetab/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := server.New(
		service.NewAuthService(authenticator, jwtManager),
		service.NewExpenseService(store),
		service.NewHouseholdService(store),
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
