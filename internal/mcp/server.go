package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jcdickinson/notionvault/internal/db"
	"github.com/jcdickinson/notionvault/internal/notion"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/singleflight"
)

//go:embed instructions.md
var instructions string

const pageURIPrefix = "notion://pages/"

// Converter renders and migrates pages by id. *migrate.Migrator implements
// it.
type Converter interface {
	ConvertByID(ctx context.Context, id string) (*notion.Page, string, error)
	MigrateByID(ctx context.Context, id string) (string, error)
}

// Lister lists migrated pages. *db.DB implements it.
type Lister interface {
	ListPages() ([]db.Page, error)
}

type Server struct {
	mcpServer *server.MCPServer
	conv      Converter
	ledger    Lister

	renders singleflight.Group
}

// NewServer builds the MCP server. ledger may be nil, in which case
// list_migrated is not offered.
func NewServer(conv Converter, ledger Lister) *Server {
	s := &Server{conv: conv, ledger: ledger}

	mcpServer := server.NewMCPServer(
		"notionvault",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func pageIDParam() mcp.ToolOption {
	return mcp.WithString("page_id",
		mcp.Description("Notion page id (dashed or not) or page URL"),
		mcp.Required(),
	)
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("render_page",
			mcp.WithDescription("Render a Notion page as Obsidian Markdown, including frontmatter. Does not write to the vault."),
			pageIDParam(),
		),
		s.handleRenderPage,
	)

	mcpServer.AddTool(
		mcp.NewTool("migrate_page",
			mcp.WithDescription("Render a Notion page and write it into the vault as <title>.md, then run post-processing."),
			pageIDParam(),
		),
		s.handleMigratePage,
	)

	if s.ledger != nil {
		mcpServer.AddTool(
			mcp.NewTool("list_migrated",
				mcp.WithDescription("List pages already migrated into the vault, newest first."),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of pages (default all)"),
				),
			),
			s.handleListMigrated,
		)
	}
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			pageURIPrefix+"{page_id}",
			"Rendered Notion page",
			mcp.WithTemplateDescription("A Notion page rendered as Obsidian Markdown."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

// render converts a page, sharing the work between concurrent requests for
// the same page.
func (s *Server) render(ctx context.Context, raw string) (string, error) {
	id, err := notion.NormalizeID(raw)
	if err != nil {
		return "", err
	}
	// The shared call outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.renders.Do(id, func() (interface{}, error) {
		_, content, err := s.conv.ConvertByID(shared, id)
		return content, err
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Server) handleRenderPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := req.GetArguments()["page_id"].(string)
	if raw == "" {
		return mcp.NewToolResultError("missing required parameter: page_id"), nil
	}

	content, err := s.render(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) handleMigratePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := req.GetArguments()["page_id"].(string)
	if raw == "" {
		return mcp.NewToolResultError("missing required parameter: page_id"), nil
	}
	id, err := notion.NormalizeID(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := s.conv.MigrateByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("migration failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote %s", path)), nil
}

func (s *Server) handleListMigrated(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := s.ledger.ListPages()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing pages: %v", err)), nil
	}
	if limit, ok := req.GetArguments()["limit"].(float64); ok && limit > 0 && int(limit) < len(pages) {
		pages = pages[:int(limit)]
	}

	type entry struct {
		PageID     string `json:"page_id"`
		Title      string `json:"title"`
		Path       string `json:"path"`
		MigratedAt string `json:"migrated_at"`
	}
	entries := make([]entry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, entry{
			PageID:     p.PageID,
			Title:      p.Title,
			Path:       p.Path,
			MigratedAt: p.MigratedAt.Format("2006-01-02 15:04"),
		})
	}

	resultJSON, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	raw := strings.TrimPrefix(uri, pageURIPrefix)
	if raw == uri || raw == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}

	content, err := s.render(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
