package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// serverName is the key sebas registers under in agent MCP configs.
const serverName = "sebas"

// serverEntry launches `sebas mcp` over stdio.
func serverEntry() map[string]any {
	return map[string]any{
		"command": "sebas",
		"args":    []any{"mcp"},
		"type":    "stdio",
	}
}

// Agent is a coding agent whose JSON MCP config sebas can edit.
type Agent struct {
	Name       string // "claude-code" or "cursor"
	ConfigFile string // JSON file holding the mcpServers object
	Scope      string // how ConfigFile is shown in messages
}

// ClaudeCode targets ~/.claude.json, or <project>/.mcp.json next to
// claudeHome when project is set. claudeHome defaults to ~/.claude.
//
//revive:disable:flag-parameter
func ClaudeCode(claudeHome string, project bool) Agent {
	if claudeHome == "" {
		claudeHome = userDir(".claude")
	}
	if project {
		return Agent{
			Name:       "claude-code",
			ConfigFile: filepath.Join(filepath.Dir(claudeHome), ".mcp.json"),
			Scope:      ".mcp.json",
		}
	}
	return Agent{Name: "claude-code", ConfigFile: userDir(".claude.json"), Scope: "~/.claude.json"}
}

//revive:enable:flag-parameter

// Cursor targets <cursorHome>/mcp.json. cursorHome defaults to ~/.cursor.
func Cursor(cursorHome string) Agent {
	if cursorHome == "" {
		cursorHome = userDir(".cursor")
	}
	return Agent{Name: "cursor", ConfigFile: filepath.Join(cursorHome, "mcp.json"), Scope: "mcp.json"}
}

func userDir(name string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, name)
}

// Register adds the sebas server to the agent's config, keeping every other
// entry. An existing sebas entry is left as it is.
func Register(a Agent) (Result, error) {
	f, err := loadMCPFile(a.ConfigFile)
	if err != nil {
		return Result{}, fmt.Errorf("setup.Register %s: %w", a.Name, err)
	}
	servers := f.servers()
	if _, exists := servers[serverName]; exists {
		return ok("Already installed"), nil
	}
	servers[serverName] = serverEntry()
	if err := f.save(); err != nil {
		return Result{}, fmt.Errorf("setup.Register %s: %w", a.Name, err)
	}
	return okf("Installed: mcpServers in %s", a.Scope), nil
}

// Unregister removes the sebas server from the agent's config. A config left
// empty is deleted.
func Unregister(a Agent) (Result, error) {
	f, err := loadMCPFile(a.ConfigFile)
	if err != nil {
		return Result{}, fmt.Errorf("setup.Unregister %s: %w", a.Name, err)
	}
	servers := f.servers()
	if _, exists := servers[serverName]; !exists {
		return ok("Nothing to remove"), nil
	}
	delete(servers, serverName)
	if err := f.save(); err != nil {
		return Result{}, fmt.Errorf("setup.Unregister %s: %w", a.Name, err)
	}
	return okf("Removed: mcpServers from %s", a.Scope), nil
}

// ---------------------------------------------------------------------------
// MCP config file
// ---------------------------------------------------------------------------

// mcpFile is an agent config document. A missing file is an empty document;
// a file that is not a JSON object is an error and is never overwritten.
type mcpFile struct {
	path string
	doc  map[string]any
}

func loadMCPFile(path string) (*mcpFile, error) {
	f := &mcpFile{path: path, doc: make(map[string]any)}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.doc == nil {
		f.doc = make(map[string]any)
	}
	return f, nil
}

// servers returns the mcpServers object, creating it when absent.
func (f *mcpFile) servers() map[string]any {
	s, ok := f.doc["mcpServers"].(map[string]any)
	if !ok {
		s = make(map[string]any)
		f.doc["mcpServers"] = s
	}
	return s
}

// save writes the document, dropping an empty mcpServers object. Nothing
// left at all removes the file.
func (f *mcpFile) save() error {
	if s, ok := f.doc["mcpServers"].(map[string]any); ok && len(s) == 0 {
		delete(f.doc, "mcpServers")
	}
	if len(f.doc) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, append(b, '\n'), 0o644) // #nosec G306 -- agent config files (MCP server entries) do not contain secrets
}
