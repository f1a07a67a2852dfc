package cmd

import (
	"fmt"

	"github.com/4elobrek9/repodoc-cli/internal/scan"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the extensions and languages the scanner recognizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := scan.DefaultTable()
		for _, ext := range table.Extensions() {
			fmt.Printf("%-12s %s\n", ext, table[ext])
		}
		fmt.Printf("\n%d extensions, %d languages. Everything else is classified as %s.\n",
			len(table), len(table.Languages()), scan.Unknown)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
