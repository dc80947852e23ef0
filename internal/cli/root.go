// Package cli wires the taskboard session into a cobra command tree.
// Commands are thin consumers of the board API and hold no invariants
// of their own.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ptran/taskboard/internal/board"
	"github.com/ptran/taskboard/internal/config"
	"github.com/ptran/taskboard/internal/handle"
	"github.com/ptran/taskboard/internal/mirror"
	"github.com/ptran/taskboard/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "taskboard",
	Short:         "Local-first personal taskboard",
	Long:          "taskboard organizes work into sections of checklist tasks, persisted locally with an optional file mirror in a folder you grant.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/taskboard/config.yaml)")

	rootCmd.AddCommand(
		listCmd,
		progressCmd,
		sectionCmd,
		taskCmd,
		importCmd,
		exportCmd,
		folderCmd,
		undoCmd,
	)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env bundles everything a command needs for one invocation.
type env struct {
	cfg     *config.Config
	session *board.Session
	store   *store.SQLiteStore
}

// openEnv loads config, opens the store, restores the folder handle,
// and returns a ready session plus its teardown.
func openEnv(cmd *cobra.Command) (*env, func(), error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	st, err := store.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		return nil, nil, err
	}

	fsys := afero.NewOsFs()
	handles := handle.Open(cfg.KeyringDir(), fsys, logger.With("component", "handle"))
	mir := mirror.New(fsys, handles, logger.With("component", "mirror"))

	session := board.NewSession(board.Options{
		Store:          st,
		Handles:        handles,
		Mirror:         mir,
		Logger:         logger,
		NotifyDebounce: time.Duration(cfg.NotifyDebounceMS) * time.Millisecond,
	})
	session.Restore(cmd.Context())

	cleanup := func() {
		session.Close()
		st.Close()
	}
	return &env{cfg: cfg, session: session, store: st}, cleanup, nil
}
