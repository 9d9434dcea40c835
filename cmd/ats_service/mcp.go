package main

import (
	"github.com/spf13/cobra"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve resume scoring as an MCP tool over stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.log.Info("serving MCP over stdio")
		return mcptool.RunStdio(cmd.Context(), a.pipeline, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
