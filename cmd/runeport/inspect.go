package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/runeport/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [document]",
	Short: "Describe the kinds and blueprints of the documents",
	Long:  `Prints the kinds, blueprint ports and chains of one or every document as markdown tables.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			err = eng.Load(cmdContext(cmd))
		} else {
			err = loadLenient(cmdContext(cmd), eng, logger)
		}
		if err != nil {
			return err
		}

		names := eng.Documents()
		if len(args) == 1 {
			names = args
		}

		var sections []string
		for _, name := range names {
			cat, err := eng.Catalog(name)
			if err != nil {
				return err
			}
			sections = append(sections, tui.CatalogMarkdown(name, cat))
		}
		out := strings.Join(sections, "\n---\n\n")

		if !plain {
			render, err := tui.NewRenderer()
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			if out, err = render(out); err != nil {
				return fmt.Errorf("failed to render: %w", err)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown instead of rendering it")
}
