package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tasklist/internal/config"
	"tasklist/internal/logging"
	"tasklist/internal/render"
	"tasklist/internal/session"
	"tasklist/internal/storage"
	"tasklist/internal/task"
	"tasklist/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	tui := useTUI(cfg.Interface)
	logger, logCloser, err := logging.New(cfg.LogDestination(configPath, tui), cfg.LogLevel)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	backend, err := storage.Open(cfg.Storage, cfg.DataPath)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	records, err := backend.Load()
	if err != nil {
		fmt.Printf("failed to load tasks: %v\n", err)
		os.Exit(1)
	}
	logger.Info("loaded tasks", "count", len(records), "storage", cfg.Storage, "path", cfg.DataPath)

	sess := session.New(task.NewList(records), backend, session.Options{
		Table:  newTable(cfg.Color),
		Now:    time.Now,
		Logger: logger,
	})

	if tui {
		err = ui.Run(sess)
	} else {
		err = ui.RunPlain(sess, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newTable honours color = "always" even when stdout is a pipe, where
// lipgloss would otherwise detect a plain ASCII profile.
func newTable(mode string) render.Table {
	renderer := lipgloss.NewRenderer(os.Stdout)
	switch mode {
	case "always":
		renderer.SetColorProfile(termenv.ANSI256)
		return render.Table{Color: true, Renderer: renderer}
	case "never":
		return render.Table{Renderer: renderer}
	default:
		return render.Table{Color: isTerminal(os.Stdout), Renderer: renderer}
	}
}

func useTUI(mode string) bool {
	switch mode {
	case "tui":
		return true
	case "plain":
		return false
	default:
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}
}
