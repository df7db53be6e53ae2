// asoscope TUI - App Store metrics dashboard with a conversational
// insights sidebar.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/asoscope/asoscope-tui/internal/chat"
	"github.com/asoscope/asoscope-tui/internal/config"
	"github.com/asoscope/asoscope-tui/internal/insights"
	"github.com/asoscope/asoscope-tui/internal/metrics"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/panel"
	"github.com/asoscope/asoscope-tui/internal/storage"
	"github.com/asoscope/asoscope-tui/internal/ui/sidebar"
	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// defaultWindowDays is the filter window applied until a dashboard filter
// selection is persisted.
const defaultWindowDays = 28

func main() {
	configPath := flag.String("config", "", "path to the config file (default ~/.asoscope/config.toml)")
	exportDir := flag.String("export-dir", ".", "directory for conversation exports")
	noMouse := flag.Bool("no-mouse", false, "disable mouse support")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("asoscope %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// The alternate screen needs a real terminal on both ends.
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "asoscope requires an interactive terminal")
		os.Exit(1)
	}

	// Log lines would corrupt the alternate screen, so they go to a file
	// next to the config.
	setupLogging()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runTUI(cfg, *configPath, *exportDir, *noMouse); err != nil {
		fmt.Fprintf(os.Stderr, "Error running asoscope: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging redirects the standard logger to ~/.asoscope/asoscope.log.
func setupLogging() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "asoscope.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(f)
}

// runTUI wires the storage, metrics, insight client and panel state into
// the sidebar model and runs the program.
func runTUI(cfg *config.Config, configPath, exportDir string, noMouse bool) error {
	theme := styles.NewTheme()

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data dir: %w", err)
	}
	port, err := storage.NewFilePort(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	convStore := storage.NewConversationStore(port)

	// The metrics database is optional; without it the dashboard shows no
	// numbers and the freshness badge reads "no data". An open failure is
	// different: the database exists but cannot be read, so insights are
	// switched off rather than answering against a broken dashboard.
	var metricsStore *metrics.Store
	metricsBroken := false
	if dbPath, err := cfg.MetricsDBPath(); err == nil {
		if ms, err := metrics.Open(dbPath); err != nil {
			log.Printf("main: metrics database unavailable: %v", err)
			metricsBroken = true
		} else {
			metricsStore = ms
			defer metricsStore.Close()
		}
	}

	filters := defaultFilters(metricsStore)

	client := insights.NewClient(cfg.Insights.APIKey).
		WithOrganization(cfg.Organization).
		WithMaxRetries(cfg.Insights.MaxRetries)
	if cfg.Insights.BaseURL != "" {
		client = client.WithBaseURL(cfg.Insights.BaseURL)
	}

	engine := chat.NewEngine(convStore, client.Generator(filters), filters)
	machine := panel.NewMachine(panel.NewOwnedPort(port, cfg.Organization))

	m := sidebar.New(theme, cfg, engine, machine, metricsStore, filters, exportDir)
	if metricsBroken {
		m = m.WithoutInsights()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled && !noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	// Edits to the config file apply without a restart.
	if watchPath := resolveWatchPath(configPath); watchPath != "" {
		if w, err := config.NewWatcher(watchPath, func(c *config.Config) {
			p.Send(sidebar.ConfigReloadedMsg{Config: c})
		}); err == nil {
			if err := w.Watch(); err != nil {
				log.Printf("main: config watch failed: %v", err)
			} else {
				defer w.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		return err
	}

	// Persist the active conversation on the way out.
	if engine.Active() != nil {
		if err := engine.SaveConversation(); err != nil {
			log.Printf("main: failed to save conversation on exit: %v", err)
		}
	}
	return nil
}

// resolveWatchPath picks the config file to watch for hot reload.
func resolveWatchPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// defaultFilters builds the dashboard scope: the trailing four weeks
// across every app and traffic source known to the metrics store.
func defaultFilters(store *metrics.Store) func() model.FilterContext {
	var apps []string
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if found, err := store.Apps(ctx); err == nil {
			apps = found
		}
	}

	return func() model.FilterContext {
		end := time.Now().Truncate(24 * time.Hour)
		return model.FilterContext{
			DateRange: model.DateRange{
				Start: end.AddDate(0, 0, -(defaultWindowDays - 1)),
				End:   end,
			},
			SelectedApps: apps,
		}
	}
}
