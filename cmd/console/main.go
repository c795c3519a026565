package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/questline/questline/internal/config"
	"github.com/questline/questline/internal/logger"
	"github.com/questline/questline/internal/storage"
	"github.com/questline/questline/pkg/engine"
	"github.com/questline/questline/pkg/state"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Saving is optional; an unreachable Redis disables it but the session
	// can still be played.
	if cfg.RedisURL != "" {
		if err := store.WaitForConnection(ctx); err != nil {
			log.Warn("Redis unavailable, /save and /load will not work", "error", err)
		}
	}

	worldFile := cfg.DefaultWorld
	if worldFile == "" {
		var err error
		worldFile, err = pickWorld(ctx, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	w, err := store.GetWorld(ctx, worldFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}

	gameState := state.NewStore(w)
	gameState.AddPlayer(state.DefaultPlayerID, w.StartLocation)
	eng := engine.New(w, gameState, log)

	sessionID := uuid.New()
	log = logger.WithSession(log, sessionID.String())
	log.Info("Session started", "world", w.ID)

	p := tea.NewProgram(NewConsoleUI(eng, store, sessionID, w),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func pickWorld(ctx context.Context, store storage.Storage) (string, error) {
	worlds, err := store.ListWorlds(ctx)
	if err != nil || len(worlds) == 0 {
		return "", fmt.Errorf("no worlds found: %v", err)
	}

	names := make([]string, 0, len(worlds))
	for name := range worlds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available Worlds:")
	for i, name := range names {
		fmt.Printf("  %d - %s (%s)\n", i+1, name, worlds[name])
	}
	fmt.Print("\nSelect a world by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(names) {
		return "", fmt.Errorf("invalid selection")
	}
	return worlds[names[choice-1]], nil
}
