// Package main provides the entry point for the ATS scoring service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile   string
	appViper  = config.NewViper()
	jsonLogs  bool
	debugLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "ats_service",
	Short: "ATS resume scoring service",
	Long: "ats_service scores resumes for applicant tracking system readiness: structure, contact " +
		"details and, given a job description, relevance. It runs as an HTTP API, an MCP tool " +
		"server or a batch CLI.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ats_service.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "JSON log format")

	if err := appViper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		panic(fmt.Sprintf("failed to bind debug flag: %v", err))
	}
	if err := appViper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		panic(fmt.Sprintf("failed to bind json flag: %v", err))
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
