// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package server exposes the tool registry over the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"focusmcp/internal/tools"
)

// Name is the server name announced to clients.
const Name = "focusmcp"

const instructions = `Manage OmniFocus tasks, projects, tags, folders and perspectives.
Entities are addressed by name. When several share a name the first one in
OmniFocus order wins; use resolve_entity to see which one that is.
Dates are YYYY-MM-DD or YYYY-MM-DD HH:MM in local time; none clears a date.`

// Server registers the allowed tools of a registry with an MCP server.
type Server struct {
	registry *tools.Registry
	mcp      *server.MCPServer
	logger   zerolog.Logger
	tools    []mcp.Tool
}

// New builds the MCP server. Tools blocked by the registry policy are not
// advertised.
func New(registry *tools.Registry, version string, logger zerolog.Logger) (*Server, error) {
	s := &Server{
		registry: registry,
		logger:   logger,
		mcp: server.NewMCPServer(
			Name,
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions(instructions),
		),
	}
	for _, t := range registry.Tools() {
		def, err := Definition(t)
		if err != nil {
			return nil, err
		}
		s.tools = append(s.tools, def)
		s.mcp.AddTool(def, s.handler(t.Name))
	}
	return s, nil
}

// Definition converts a catalog tool into its MCP definition.
func Definition(t *tools.Tool) (mcp.Tool, error) {
	schema, err := json.Marshal(t.Parameters)
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("tool %s: invalid schema: %w", t.Name, err)
	}
	def := mcp.NewToolWithRawSchema(t.Name, t.Description, schema)
	def.Annotations = mcp.ToolAnnotation{
		Title:           title(t.Name),
		ReadOnlyHint:    mcp.ToBoolPtr(t.ReadOnly()),
		DestructiveHint: mcp.ToBoolPtr(t.Destructive),
		IdempotentHint:  mcp.ToBoolPtr(t.ReadOnly()),
		OpenWorldHint:   mcp.ToBoolPtr(false),
	}
	return def, nil
}

// title turns set_task_flag into "Set task flag".
func title(name string) string {
	words := strings.Split(name, "_")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}

// Tools returns the advertised definitions in catalog order.
func (s *Server) Tools() []mcp.Tool {
	return append([]mcp.Tool(nil), s.tools...)
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// handler runs a tool. Failures are tool results, never protocol errors.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := s.registry.Execute(ctx, name, req.GetArguments())
		if result.IsError {
			return mcp.NewToolResultError(result.Result), nil
		}
		return mcp.NewToolResultText(result.Result), nil
	}
}

// ServeStdio serves on stdin and stdout until ctx is done or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.logger, "", 0))
	s.logger.Info().Int("tools", len(s.tools)).Msg("serving MCP on stdio")
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// shutdownTimeout bounds the wait for in-flight HTTP requests.
const shutdownTimeout = 10 * time.Second

// ServeHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr, endpoint string) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(endpoint))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(addr)
	}()
	s.logger.Info().Str("addr", addr).Str("endpoint", endpoint).Int("tools", len(s.tools)).Msg("serving MCP over HTTP")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
