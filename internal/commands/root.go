package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/deposit-calculator-go/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "depositcalc",
		Short:   "Deposit return calculator",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newCalcCommand())
	rootCmd.AddCommand(newProductsCommand())

	return rootCmd
}
