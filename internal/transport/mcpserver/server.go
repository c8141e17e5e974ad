package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/service/agent"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const sessionID = "mcp"

type Collector interface {
	Collect(ctx context.Context, sessionID, input string) (agent.Reply, error)
}

// Server exposes the resolution pipeline as MCP tools over stdio.
type Server struct {
	agent Collector
	tools *server.MCPServer
}

func NewServer(agent Collector) *Server {
	s := &Server{
		agent: agent,
		tools: server.NewMCPServer(core.AppName, core.AppVersion),
	}

	s.tools.AddTool(mcp.NewTool("resolve_fact",
		mcp.WithDescription("Answer a question. Questions about current events, prices or news are resolved from cached or live sources and returned as JSON with answer, sources, confidence and mode; anything else gets a conversational reply."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question to answer.")),
	), s.HandleResolveFact)

	return s
}

func (s *Server) HandleResolveFact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reply, err := s.agent.Collect(ctx, sessionID, query)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("resolve_fact failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
	}

	if reply.Envelope == nil {
		return mcp.NewToolResultText(reply.Text), nil
	}

	data, err := json.Marshal(reply.Envelope)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Serve blocks serving stdio until stdin closes or the process is signalled.
func (s *Server) Serve(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving mcp over stdio")
	return server.ServeStdio(s.tools)
}
