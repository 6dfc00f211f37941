package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compile every document and check its chains",
	Long: `Compiles every blueprint document of --dir and checks each chain for unknown ports,
cycles, disabled passthrough outputs and incompatible links.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		ctx := cmdContext(cmd)

		if err := eng.Load(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		results, err := eng.Check(ctx)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		chains := 0
		for _, res := range results {
			chains += len(res)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents, %d chains valid ✅\n", len(eng.Documents()), chains)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
