package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/pokedex/internal/config"
	"github.com/jwebster45206/pokedex/internal/logger"
	"github.com/jwebster45206/pokedex/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.OpenFile(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	log := logger.Setup(cfg, logFile)
	log.Info("Starting pokedex", "environment", cfg.Environment, "api", cfg.APIBaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := services.OpenCache(ctx, cfg.RedisURL, log)
	defer func() {
		_ = cache.Close()
	}()

	client := services.NewPokeAPIClient(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.RateLimitRPS, log)
	fetcher := services.NewCachingFetcher(client, cache, cfg.CacheTTL, log)

	p := tea.NewProgram(NewPokedexUI(ctx, cfg, fetcher, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
