package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/trackit/internal/api"
	"github.com/jask/trackit/internal/config"
	"github.com/jask/trackit/internal/habit"
	"github.com/jask/trackit/internal/logging"
	"github.com/jask/trackit/internal/secrets"
	"github.com/jask/trackit/internal/tui"
)

func main() {
	saveToken := flag.String("save-token", "", "store a session token for the configured API and exit")
	forgetToken := flag.Bool("forget-token", false, "remove the stored session token and exit")
	writeConfig := flag.Bool("write-config", false, "write the effective settings to the config file and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	switch {
	case *saveToken != "":
		if err := secrets.StoreToken(cfg.API.BaseURL, *saveToken); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Printf("token saved for %s\n", cfg.API.BaseURL)
		return
	case *forgetToken:
		if err := secrets.DeleteToken(cfg.API.BaseURL); err != nil {
			log.Fatalf("forget token: %v", err)
		}
		fmt.Printf("token removed for %s\n", cfg.API.BaseURL)
		return
	case *writeConfig:
		if err := config.Save(cfg); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Println("config written")
		return
	}

	logger, err := logging.NewFile(cfg.Log.Path, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	token := resolveToken(cfg)
	if token == "" {
		log.Fatalf("no session token: set %s, run trackit -save-token <token>, or set session.token", cfg.Session.TokenEnv)
	}

	weekDays, err := habit.ParseWeekLabels(cfg.UI.WeekLabels)
	if err != nil {
		logger.Warn("using default week labels", zap.Error(err))
		weekDays = habit.WeekDays()
	}

	client := api.New(cfg.API.BaseURL, token,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger.Named("api")),
	)

	session := tui.Session{Name: cfg.Session.Name}
	p := tea.NewProgram(tui.New(ctx, client, tui.Options{
		Session:  session,
		WeekDays: weekDays,
		Log:      logger.Named("tui"),
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// resolveToken prefers the env var, then the secrets store, then the config file.
func resolveToken(cfg config.Config) string {
	env := strings.TrimSpace(cfg.Session.TokenEnv)
	if env == "" {
		env = "TRACKIT_TOKEN"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if t, err := secrets.FetchToken(cfg.API.BaseURL); err == nil {
		return t
	} else if !errors.Is(err, secrets.ErrNotFound) {
		log.Printf("warn: token store: %v", err)
	}
	return strings.TrimSpace(cfg.Session.Token)
}
