package cmd

import "github.com/spf13/cobra"

// validateCmd is a placeholder for linting a mutation spec without applying
// it; the core mutate pipeline does not need it.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Lint a mutation spec without applying it (not implemented)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("validate: not implemented")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
