package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "forgebridge",
	Short: "Expose GitHub pull request and repository operations as agent tools",
	Long: `forgebridge is a tool server for coding agents.

It exposes pull request operations (list, discuss, summarize, comment,
request reviewers, merge, close) and repository operations (create, delete)
over a line-delimited JSON-RPC protocol on stdin/stdout. Logs go to stderr.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (optional)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
