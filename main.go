package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"pdv/auth"
	"pdv/config"
	"pdv/loader"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	dbConn, err := sqlx.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalw("db open error", "path", cfg.DBPath, "error", err)
	}
	defer dbConn.Close()

	if err := loader.InitDatabase(dbConn, cfg, log); err != nil {
		log.Fatalw("database initialization failed", "error", err)
	}
	log.Info("database initialization complete")

	sessions := auth.NewSessionStore(cfg.SessionTTL)

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn, sessions, log)

	addr := ":" + cfg.Port
	log.Infow("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalw("server start error", "error", err)
	}
}
