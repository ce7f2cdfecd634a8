package cmd

import "github.com/spf13/cobra"

// scoreCmd is a placeholder for scoring how many spec rows a source file
// could absorb without running the selector; the core mutate pipeline does
// not need it.
var scoreCmd = newScoreCmd()

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Report how many spec rows would match a source file (not implemented)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("score: not implemented")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
