package mcp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/temirov/tocmd/internal/commands"
	"github.com/temirov/tocmd/internal/services/mcp"
	"github.com/temirov/tocmd/internal/types"
)

type recordingGenerator struct {
	output        string
	err           error
	scanDirectory string
	linkRoot      string
	options       types.TocOptions
}

func (generator *recordingGenerator) GetTocData(scanDirectory string, linkRootDirectory string, options types.TocOptions) (string, error) {
	generator.scanDirectory = scanDirectory
	generator.linkRoot = linkRootDirectory
	generator.options = options
	return generator.output, generator.err
}

func callGenerateToc(t *testing.T, server *mcp.Server, arguments map[string]any) *mcpgo.CallToolResult {
	t.Helper()
	request := mcpgo.CallToolRequest{}
	request.Params.Name = mcp.ToolNameGenerateToc
	request.Params.Arguments = arguments
	result, err := server.HandleGenerateToc(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatalf("result has no content")
	}
	textContent, ok := result.Content[0].(mcpgo.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return textContent.Text
}

func TestGenerateTocPassesArguments(t *testing.T) {
	directory := t.TempDir()
	generator := &recordingGenerator{output: "- [a](a.md)"}
	server := mcp.NewServer(mcp.Config{Generator: generator})

	result := callGenerateToc(t, server, map[string]any{
		"directory":  directory,
		"root":       "/links",
		"extract_h1": true,
		"format":     types.FormatObsidian,
		"numbered":   false,
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if text := resultText(t, result); text != "- [a](a.md)" {
		t.Fatalf("unexpected output %q", text)
	}
	expectedOptions := types.TocOptions{IncludeHeadings: true, Format: types.FormatObsidian, Numbered: false}
	if generator.options != expectedOptions {
		t.Fatalf("expected options %+v, got %+v", expectedOptions, generator.options)
	}
	if generator.scanDirectory != directory || generator.linkRoot != "/links" {
		t.Fatalf("unexpected paths %q %q", generator.scanDirectory, generator.linkRoot)
	}
}

func TestGenerateTocDefaults(t *testing.T) {
	generator := &recordingGenerator{output: "x"}
	server := mcp.NewServer(mcp.Config{Generator: generator})
	result := callGenerateToc(t, server, map[string]any{"directory": t.TempDir()})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if generator.options != types.DefaultTocOptions() {
		t.Fatalf("expected default options, got %+v", generator.options)
	}
}

func TestGenerateTocRejectsInvalidInput(t *testing.T) {
	existingFile := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(existingFile, []byte("# Note\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	testCases := []struct {
		name          string
		arguments     map[string]any
		expectMessage string
	}{
		{name: "missing_directory_argument", arguments: map[string]any{}, expectMessage: "directory is required"},
		{name: "absent_directory", arguments: map[string]any{"directory": filepath.Join(t.TempDir(), "absent")}, expectMessage: "does not exist"},
		{name: "file_instead_of_directory", arguments: map[string]any{"directory": existingFile}, expectMessage: "is not a directory"},
		{name: "unknown_format", arguments: map[string]any{"directory": t.TempDir(), "format": "html"}, expectMessage: "unsupported format"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := mcp.NewServer(mcp.Config{Generator: &recordingGenerator{}})
			result := callGenerateToc(t, server, testCase.arguments)
			if !result.IsError {
				t.Fatalf("expected tool error")
			}
			if text := resultText(t, result); !strings.Contains(text, testCase.expectMessage) {
				t.Fatalf("expected message containing %q, got %q", testCase.expectMessage, text)
			}
		})
	}
}

func TestGenerateTocGeneratorFailure(t *testing.T) {
	server := mcp.NewServer(mcp.Config{Generator: &recordingGenerator{err: errors.New("boom")}})
	result := callGenerateToc(t, server, map[string]any{"directory": t.TempDir()})
	if !result.IsError || resultText(t, result) != "boom" {
		t.Fatalf("expected generator error to surface, got %+v", result)
	}
}

func TestGenerateTocRendersDirectory(t *testing.T) {
	directory := t.TempDir()
	if err := os.WriteFile(filepath.Join(directory, "1. Intro.md"), []byte("# Welcome\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	server := mcp.NewServer(mcp.Config{Generator: &commands.TocBuilder{}})

	result := callGenerateToc(t, server, map[string]any{"directory": directory})
	if text := resultText(t, result); text != "1 [Intro](1.%20Intro.md)" {
		t.Fatalf("unexpected output %q", text)
	}

	emptyDirectory := t.TempDir()
	result = callGenerateToc(t, server, map[string]any{"directory": emptyDirectory})
	if result.IsError {
		t.Fatalf("empty directory should not be an error")
	}
	if text := resultText(t, result); text != "No Markdown files found." {
		t.Fatalf("unexpected output for empty directory %q", text)
	}
}
