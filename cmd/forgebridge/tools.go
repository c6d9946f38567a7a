package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgebridge/forgebridge/pkg/github"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog",
	Long:  "List every exposed tool with its description. No token is required.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := github.NewClient(github.ClientOptions{})
		if err != nil {
			return err
		}
		for _, tool := range buildRegistry(client).List() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", tool.Name, tool.Description)
		}
		return nil
	},
}
