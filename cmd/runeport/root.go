package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/runeport"
	"github.com/aretw0/runeport/internal/logging"
	"github.com/aretw0/runeport/pkg/adapters/file"
	"github.com/aretw0/runeport/pkg/blueprint"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runeport",
	Short: "Runeport checks how graph node ports can be linked",
	Long: `Runeport compiles blueprint documents (YAML or JSON) declaring value kinds and typed node
ports, then checks chains of nodes for incompatible or disabled links.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the blueprint documents")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	lvl, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(lvl)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}

// openEngine builds an engine over the --dir directory. Nothing is loaded yet.
func openEngine(cmd *cobra.Command) (*runeport.Engine, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	dir, _ := cmd.Flags().GetString("dir")
	return runeport.New(file.New(dir), runeport.WithLogger(logger))
}

// loadLenient loads the documents of eng, tolerating rejected documents.
// Store failures are still returned.
func loadLenient(ctx context.Context, eng *runeport.Engine, logger *slog.Logger) error {
	err := eng.Load(ctx)
	if err != nil && blueprint.ValidationErrors(err) != nil {
		logger.Warn("some documents were rejected", "err", err)
		return nil
	}
	return err
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
