// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/dashkit/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running dashkit as an MCP server, exposing the loaded dashboards to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve [dashboard...]",
	Short: "Run the MCP server over stdio",
	Long: `Load the selected dashboards and start an MCP server on stdin/stdout
exposing:
  - list_dashboards: loaded dashboards, widget defaults and accepted values
  - build_figure:    rebuild a dashboard figure for given widget values
  - list_kinds:      registered dashboard kinds and their dataset columns

Logs go to stderr so they do not interfere with the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ds, err := loadSelected(cmd.Context(), nil, args)
		if err != nil {
			return err
		}
		return mcpserver.Run(cmd.Context(), Version, ds, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
