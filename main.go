package main

import (
	"Recipe-API/cmd/config"
	migration "Recipe-API/cmd/database/migrate"
	"Recipe-API/internal/utils"
	"Recipe-API/internal/utils/logger"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", utils.DefaultConfigPath, "path to config.yaml")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		zl.Fatal("connecting database", zap.Error(err))
	}
	if err := migration.Migrate(db); err != nil {
		zl.Fatal("migrating database", zap.Error(err))
	}
	zl.Info("database migration complete")

	app, err := config.NewApp(db, cfg, zl)
	if err != nil {
		zl.Fatal("building app", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zl.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zl.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.AppPort
	zl.Info("listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
