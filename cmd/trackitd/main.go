package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/jask/trackit/internal/auth"
	"github.com/jask/trackit/internal/config"
	"github.com/jask/trackit/internal/database"
	"github.com/jask/trackit/internal/database/repository"
	"github.com/jask/trackit/internal/logging"
	"github.com/jask/trackit/internal/server"
)

func main() {
	mint := flag.String("mint", "", "print a bearer token for the given user id and exit")
	seed := flag.String("seed", "", "give the user id a few starter habits if they have none")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	secret := resolveSecret(cfg)
	issuer, err := auth.NewIssuer(secret)
	if err != nil {
		log.Fatalf("auth: %v (set %s)", err, cfg.Server.JWTSecretEnv)
	}

	if *mint != "" {
		tok, err := issuer.Issue(*mint, cfg.Server.TokenTTL)
		if err != nil {
			log.Fatalf("mint: %v", err)
		}
		fmt.Println(tok)
		return
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Server.DatabasePath), 0o755); err != nil {
		logger.Fatal("mkdir db dir", zap.Error(err))
	}
	if err := database.RunMigrations(cfg.Server.DatabasePath); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	db, err := database.Open(cfg.Server.DatabasePath)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	if *seed != "" {
		n, err := database.SeedDemo(ctx, db, *seed)
		if err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
		logger.Info("seeded habits", zap.String("user", *seed), zap.Int("count", n))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := server.New(server.Deps{
		Habits:   repository.NewHabitRepo(db),
		Tokens:   issuer,
		DB:       db,
		Log:      logger,
		Registry: reg,
	})
	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

func resolveSecret(cfg config.Config) string {
	if env := strings.TrimSpace(cfg.Server.JWTSecretEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return cfg.Server.JWTSecret
}
