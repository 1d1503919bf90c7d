package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"logicdraw/config"
	"logicdraw/editor"
	"logicdraw/store"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg     *config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "logicdraw [file]",
	Short: "Terminal editor for logic gate diagrams",
	Long: `logicdraw edits diagrams of AND/OR gates, pins and wires.

Examples:
  logicdraw adder.ldr                   # Edit a diagram in the terminal
  logicdraw export adder.ldr -o a.png   # Render a diagram to PNG
  logicdraw info adder.ldr              # Show counts and check consistency
  logicdraw db put adder.ldr            # Store a diagram in the database`,
	Args: cobra.MaximumNArgs(1),
	PersistentPostRun: func(*cobra.Command, []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
	RunE:         runEdit,
	SilenceUsage: true,
}

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a diagram in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEdit,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the user config dir)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		var err error
		path, err = cfg.GetSavePath(withExt(args[0], diagramExt))
		if err != nil {
			return err
		}
	}
	return runEditor(cfg, path)
}

// setup loads the config and installs the loggers. The terminal editor
// owns the screen, so it only logs when a log file is configured.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	switch {
	case cfg.LogFile != "":
		logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = logFile
	case cmd == rootCmd || cmd == editCmd:
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	editor.SetLogger(logger.With("component", "editor"))
	store.SetLogger(logger.With("component", "store"))
	return nil
}
