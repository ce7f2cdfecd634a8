package cmd

import "github.com/spf13/cobra"

// highlightCmd is a placeholder for the syntax-highlighting preview of a
// mutation spec against its source; the core mutate pipeline does not need
// it.
var highlightCmd = newHighlightCmd()

func newHighlightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "highlight",
		Short: "Preview a mutation spec highlighted against its source (not implemented)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("highlight: not implemented")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(highlightCmd)
}
