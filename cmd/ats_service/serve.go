package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing POST /parse, POST /score-text, GET /model-info and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8000, "Port to listen on")
	if err := appViper.BindPFlag("server.port", serveCmd.Flags().Lookup("port")); err != nil {
		panic(fmt.Sprintf("failed to bind port flag: %v", err))
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rl := a.cfg.RateLimit
	srv, err := server.New(server.Options{
		Config:    a.cfg.Server,
		RateLimit: ratelimit.NewConfig(rl.Enabled, rl.RequestsPerMinute, rl.Burst),
		Pipeline:  a.pipeline,
		Fetcher:   a.newFetcher(),
		Logger:    a.log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
