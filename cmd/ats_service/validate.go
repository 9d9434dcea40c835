package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <result.json>...",
	Short: "Validate saved scoring results against the result JSON schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, paths []string) error {
	failed := 0
	for _, path := range paths {
		err := schemas.ValidateResultFile(path)
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
			continue
		}
		failed++
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n%s", path, validationErr.Error())
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(paths))
	}
	return nil
}
