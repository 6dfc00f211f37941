package main

import (
	"fmt"

	"github.com/aretw0/runeport/internal/presentation/graph"
	"github.com/aretw0/runeport/pkg/chain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document> <chain>",
	Short: "Export a chain as a Mermaid flowchart",
	Long:  `Checks a chain and outputs a Mermaid diagram (graph LR) whose links show the kinds they carry.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		focus, _ := cmd.Flags().GetStringSlice("focus")
		styled, _ := cmd.Flags().GetBool("styled")
		doc, name := args[0], args[1]

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		// Other documents may be broken; only the requested one matters.
		if err := loadLenient(cmdContext(cmd), eng, logger); err != nil {
			return err
		}

		cat, err := eng.Catalog(doc)
		if err != nil {
			return err
		}
		spec, ok := cat.Chain(name)
		if !ok {
			return fmt.Errorf("document %s has no chain %q", doc, name)
		}
		res, err := chain.Check(cat, spec)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if styled || len(focus) > 0 {
			overlay = &graph.GraphOverlay{Focus: focus}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(cat, res, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("focus", nil, "Node ids to highlight")
	graphCmd.Flags().Bool("styled", false, "Style nodes with disabled outputs")
}
