// Package mcp provides the stdio MCP server exposing bookmark tools for coding agents.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/sebas/internal/buildinfo"
	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/service"
)

const listDescription = `List the shell commands bookmarked for the current directory tree. Entries are merged from every .sebas store root between the working directory and /, nearest first. Each entry carries a 1-based index and an 8-character hash; either can be passed to sebas_get.`

const getDescription = `Get one bookmarked command by index (e.g. "3") or hash prefix (e.g. "65fc"). Use this before suggesting a command the user has already bookmarked instead of reconstructing it.`

const searchDescription = `Search bookmarked commands by text and comment. Returns matches ranked by relevance, command-text matches first.`

const addDescription = `Bookmark a shell command in the nearest store root. Only save commands the user is likely to run again. Secrets in the comment are redacted; commands that look like they contain secrets are saved with warnings.`

// NewServer creates a server with every sebas tool registered and no
// transport attached.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("sebas", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
func Serve(_ context.Context, opts service.Options) error {
	svc, err := service.New(opts)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires all four MCP tools into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("sebas_list",
		mcp.WithDescription(listDescription),
		mcp.WithString("group",
			mcp.Description("Only list this group."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("sebas_get",
		mcp.WithDescription(getDescription),
		mcp.WithString("identifier",
			mcp.Description("Index from sebas_list or a hash prefix."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGet(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("sebas_search",
		mcp.WithDescription(searchDescription),
		mcp.WithString("query",
			mcp.Description("Search terms"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default 5)"),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearch(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("sebas_add",
		mcp.WithDescription(addDescription),
		mcp.WithString("command",
			mcp.Description("The exact shell command."),
			mcp.Required(),
		),
		mcp.WithString("group",
			mcp.Description("Group name (default: miscellaneous)."),
		),
		mcp.WithString("comment",
			mcp.Description("What the command does."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleList(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := svc.List(req.GetString("group", ""))
	if err != nil {
		return toolError(err), nil
	}
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryMap(e))
	}
	return jsonResult(map[string]any{
		"total":    len(out),
		"commands": out,
	})
}

func handleGet(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("identifier", "")
	if id == "" {
		return mcp.NewToolResultError("identifier is required"), nil
	}
	e, err := svc.Resolve(id)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(entryMap(e))
}

func handleSearch(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	limit := req.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	results, err := svc.Search(query, limit)
	if err != nil {
		return toolError(err), nil
	}
	clean := make([]map[string]any, 0, len(results))
	for _, r := range results {
		m := entryMap(r.Entry)
		m["score"] = roundTwo(r.Score)
		clean = append(clean, m)
	}
	return jsonResult(clean)
}

func handleAdd(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := svc.Add(service.AddInput{
		Command: req.GetString("command", ""),
		Group:   req.GetString("group", ""),
		Comment: req.GetString("comment", ""),
	})
	if err != nil {
		return toolError(err), nil
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = make([]string, 0)
	}
	return jsonResult(map[string]any{
		"hash":       res.Entry.Command.Hash,
		"group":      res.Entry.Group,
		"store_root": res.Entry.StoreRoot,
		"new_group":  res.NewGroup,
		"warnings":   warnings,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func entryMap(e models.ResolvedCommand) map[string]any {
	m := map[string]any{
		"command":    e.Command.Command,
		"hash":       e.Command.Hash,
		"group":      e.Group,
		"store_root": e.StoreRoot,
		"created_at": e.Command.CreatedAt,
	}
	if e.Index > 0 {
		m["index"] = e.Index
	}
	if e.Command.Comment != "" {
		m["comment"] = e.Command.Comment
	}
	return m
}

// toolError reports domain failures as tool errors so the agent can correct
// its call; the hint names what to try instead.
func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	switch {
	case errors.Is(err, models.ErrNotFound):
		msg += " (call sebas_list for valid identifiers)"
	case errors.Is(err, models.ErrNoStoreRoot):
		msg += " (ask the user to run 'sebas init')"
	}
	return mcp.NewToolResultError(msg)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// roundTwo rounds f to 2 decimal places.
func roundTwo(f float64) float64 {
	return math.Round(f*100) / 100
}
