// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the loaded dashboards as tools, so agents can list them and build
// figures for arbitrary widget values.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/dashkit/internal/dashboard"
)

// New creates an MCP server with dashkit's tools registered against ds.
func New(version string, ds []*dashboard.Dashboard) (*mcp.Server, error) {
	c, err := newCatalog(ds)
	if err != nil {
		return nil, err
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dashkit",
		Title:   "Dashkit dashboards",
		Version: version,
	}, nil)

	c.registerTools(server)
	return server, nil
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, ds []*dashboard.Dashboard, transport mcp.Transport) error {
	server, err := New(version, ds)
	if err != nil {
		return err
	}
	return server.Run(ctx, transport)
}
