package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/canaworld/cana/internal/application/handlers"
	"github.com/canaworld/cana/internal/infrastructure/config"
	llm "github.com/canaworld/cana/internal/infrastructure/llm/openai"
	"github.com/canaworld/cana/internal/infrastructure/storage/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - the store and services are internal.
type Deps struct {
	Config *config.Config
	Bible  *handlers.BibleHandler
	Log    *zap.Logger
}

// withDeps loads config, opens the store, and loads the bible, then calls
// the provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if err := config.WriteDefault(cwd); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := buildLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is harmless

	store, err := sqlite.NewStore(cfg.DataPath(cwd))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	bible := handlers.NewBibleHandler(store, log)
	if err := bible.Load(ctx); err != nil {
		return fmt.Errorf("loading story bible: %w", err)
	}

	return fn(&Deps{
		Config: cfg,
		Bible:  bible,
		Log:    log,
	})
}

// withChat additionally builds the LLM transport and chat handler. Commands
// that never talk to the model use withDeps and need no API key.
func withChat(ctx context.Context, fn func(*Deps, *handlers.ChatHandler) error) error {
	return withDeps(ctx, func(d *Deps) error {
		client, err := llm.NewClient(d.Config.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}
		return fn(d, handlers.NewChatHandler(d.Bible, client, d.Log))
	})
}

func buildLogger() (*zap.Logger, error) {
	if globalVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
