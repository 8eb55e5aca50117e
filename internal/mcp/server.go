package mcp

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcdickinson/monofetch/internal/config"
	"github.com/jcdickinson/monofetch/internal/fetch"
	"github.com/jcdickinson/monofetch/internal/inline"
	_ "github.com/jcdickinson/monofetch/internal/resource"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	inliner   *inline.Inliner
	rootMime  string
}

func NewServer(cfg *config.Config) *Server {
	client := fetch.New(fetch.Options{
		UserAgent:    cfg.HTTP.UserAgent,
		Timeout:      cfg.HTTP.Timeout,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})

	s := &Server{
		inliner: &inline.Inliner{
			Fetcher:     client,
			MaxParallel: cfg.Inline.MaxParallel,
		},
		rootMime: cfg.Inline.RootMime,
	}

	mcpServer := server.NewMCPServer(
		"monofetch",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("inline",
			mcp.WithDescription("Fetch a document over HTTP, recursively resolve every resource it references, and return it as a single text with each reference embedded as a base64 data URI."),
			mcp.WithString("url",
				mcp.Description("Absolute URL of the document to fetch"),
				mcp.Required(),
			),
			mcp.WithString("mime_hint",
				mcp.Description("Mime type of the root document (defaults to the configured root mime, normally \"text/plain\")"),
			),
		),
		s.handleInline,
	)
}

func (s *Server) handleInline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rawURL, _ := args["url"].(string)
	if rawURL == "" {
		return mcp.NewToolResultError("missing required parameter: url"), nil
	}

	mimeHint, _ := args["mime_hint"].(string)
	if mimeHint == "" {
		mimeHint = s.rootMime
	}

	text, err := s.inliner.ResolveAndRender(ctx, rawURL, mimeHint)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inlining %s failed: %v", rawURL, err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
