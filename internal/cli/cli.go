// Package cli implements the gantry command-line interface.
//
// This package provides commands for settling dependency-constrained
// timelines, inspecting their layout geometry, exporting dependency
// diagrams, browsing the timeline in the terminal, and serving the HTTP
// API. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Run the finish-to-start constraint solver over a timeline
//   - layout: Print row and bar geometry for a zoom preset
//   - graph: Export the dependency graph as DOT or SVG
//   - view: Render the timeline as a Gantt chart in the terminal
//   - serve: Run the timeline and game-room HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tmarsh/gantry/internal/config"
	"github.com/tmarsh/gantry/pkg/buildinfo"
	"github.com/tmarsh/gantry/pkg/plan"
	"github.com/tmarsh/gantry/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "gantry"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and the layered
// configuration resolved from the working directory.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.Load(".")
	if err != nil {
		cfg = config.Default()
	}
	return &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gantry schedules dependency-constrained project timelines",
		Long:         `Gantry is a timeline editor engine: it keeps finish-to-start dependencies satisfied as dates move, packs leave blocks into lanes, and maps the plan onto a zoomable day grid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// draftStore opens the file-backed draft store from configuration.
func (c *CLI) draftStore() (store.DraftStore, error) {
	return store.NewFileStore(c.Config.Storage.DataDir)
}

// loadDocument reads a timeline document from path, or from the draft
// store when path is empty. A missing draft falls back to the seed
// document so every command works out of the box.
func (c *CLI) loadDocument(cmd *cobra.Command, path string) (*plan.Document, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return plan.Decode(data)
	}

	drafts, err := c.draftStore()
	if err != nil {
		return nil, err
	}
	defer drafts.Close()

	doc, err := drafts.Load(cmd.Context())
	if errors.Is(err, store.ErrNotFound) {
		loggerFromContext(cmd.Context()).Debug("no draft found, using seed document")
		return plan.SeedDocument(), nil
	}
	return doc, err
}

// writeOutput writes data to path, or stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
