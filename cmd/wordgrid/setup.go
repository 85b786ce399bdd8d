package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wordgrid/internal/config"
	"github.com/vovakirdan/wordgrid/internal/core"
	"github.com/vovakirdan/wordgrid/internal/games/wordgrid"
)

var (
	logger  *log.Logger
	logSink io.Closer
)

// setup configures logging and registers puzzles from the puzzle directory.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		logSink = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	if flagLogFile != "" || cmd.Name() == serveCmd.Name() {
		wordgrid.SetLogger(logger.WithPrefix("engine"))
	}

	loadPuzzleDir()
	return nil
}

// uiLogger returns the logger for full-screen commands. Without a log file
// logging is off so it does not draw over the terminal UI.
func uiLogger() *log.Logger {
	if flagLogFile == "" {
		return log.New(io.Discard)
	}
	return logger
}

func closeLog() {
	if logSink != nil {
		logSink.Close()
	}
}

// loadPuzzleDir registers every valid puzzle found in --puzzle-dir.
// Puzzles whose id is already taken are skipped.
func loadPuzzleDir() {
	if flagPuzzleDir == "" {
		return
	}
	if _, err := os.Stat(flagPuzzleDir); err != nil {
		return
	}

	puzzles, problems, err := config.NewPuzzleLoader(flagPuzzleDir).LoadAll()
	if err != nil {
		logger.Warn("cannot read puzzle directory", "dir", flagPuzzleDir, "error", err)
		return
	}
	for _, p := range problems {
		logger.Warn("skipping puzzle file", "error", p)
	}
	for _, p := range puzzles {
		if err := wordgrid.Register(p); err != nil {
			logger.Warn("skipping puzzle", "puzzle", p.ID, "error", err)
			continue
		}
		logger.Debug("puzzle loaded", "puzzle", p.ID, "dir", flagPuzzleDir)
	}
}

// runtimeConfig builds a config from the terminal size and --fps.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}
