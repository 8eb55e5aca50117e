package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcdickinson/monofetch/internal/config"
	"github.com/jcdickinson/monofetch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol; everything else goes to stderr.
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		return mcp.NewServer(cfg).Run()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
