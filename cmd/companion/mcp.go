package main

import (
	"github.com/I-am-Milind/backend-ai/internal/transport/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the fact resolver as an MCP tool over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		return mcpserver.NewServer(a.agent).Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
