package main

import (
	"flag"
	"fmt"
	"os"

	auction "auction-backend/internal/auctionService"
	"auction-backend/internal/auth"
	"auction-backend/internal/config"
	"auction-backend/internal/server"
	"auction-backend/internal/storage"
	"auction-backend/internal/storage/gormdb"
	"auction-backend/internal/storage/memory"
	user "auction-backend/internal/userService"
	"auction-backend/utils"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	utils.ConfigureLogger(cfg.Logging.Level, cfg.Logging.Format)

	store, err := openStore(cfg)
	if err != nil {
		utils.Fatal("failed to open storage", map[string]any{"type": cfg.Storage.Type, "error": err.Error()})
	}

	tokens := auth.NewTokenManager(cfg.JWT)
	auctionSvc := auction.NewAuctionService(store)
	userSvc := user.NewUserService(store, tokens)

	router := server.SetupRouter(cfg, tokens, auctionSvc, userSvc)

	utils.Info("starting auction server", map[string]any{
		"address": cfg.Server.Address(),
		"storage": cfg.Storage.Type,
	})
	if err := router.Run(cfg.Server.Address()); err != nil {
		utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
	}
}

// openStore builds the storage backend selected by the configuration
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "mysql":
		return gormdb.Open(cfg.Storage.MySQL.DSN)
	default:
		return memory.NewStore(), nil
	}
}
