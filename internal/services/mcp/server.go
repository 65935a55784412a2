// Package mcp exposes table of contents generation as a Model Context Protocol tool.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/temirov/tocmd/internal/types"
)

const (
	// ToolNameGenerateToc is the name clients use to invoke table of contents generation.
	ToolNameGenerateToc = "generate_toc"

	defaultServerName = "tocmd"

	argumentDirectory = "directory"
	argumentRoot      = "root"
	argumentExtractH1 = "extract_h1"
	argumentFormat    = "format"
	argumentNumbered  = "numbered"

	errorDirectoryRequired    = "directory is required"
	errorDirectoryMissingFmt  = "directory '%s' does not exist"
	errorNotDirectoryFmt      = "'%s' is not a directory"
	errorUnsupportedFormatFmt = "unsupported format '%s'"
	errorStatDirectoryFmt     = "stat failed for '%s': %w"
	emptyTocMessage           = "No Markdown files found."

	debugToolCallMessage = "generate_toc called"
)

// TocGenerator renders a table of contents for a directory.
type TocGenerator interface {
	GetTocData(scanDirectory string, linkRootDirectory string, options types.TocOptions) (string, error)
}

// Config defines runtime options for the MCP server.
type Config struct {
	Name      string
	Version   string
	Generator TocGenerator
	Logger    *zap.Logger
}

// Server wraps an MCP server with the table of contents tool registered.
type Server struct {
	config    Config
	mcpServer *server.MCPServer
}

// NewServer creates a Server with defaults applied and the generate_toc tool registered.
func NewServer(config Config) *Server {
	normalized := config
	if normalized.Name == "" {
		normalized.Name = defaultServerName
	}
	if normalized.Logger == nil {
		normalized.Logger = zap.NewNop()
	}
	mcpServer := server.NewMCPServer(
		normalized.Name,
		normalized.Version,
		server.WithToolCapabilities(true),
	)
	tocServer := &Server{config: normalized, mcpServer: mcpServer}
	mcpServer.AddTool(generateTocTool(), tocServer.HandleGenerateToc)
	return tocServer
}

// MCPServer returns the underlying protocol server.
func (tocServer *Server) MCPServer() *server.MCPServer {
	return tocServer.mcpServer
}

// ServeStdio serves requests over standard input and output until the input closes.
func (tocServer *Server) ServeStdio() error {
	return server.ServeStdio(tocServer.mcpServer)
}

func generateTocTool() mcp.Tool {
	return mcp.NewTool(ToolNameGenerateToc,
		mcp.WithDescription("Render a nested Markdown table of contents for every .md file beneath a directory."),
		mcp.WithString(argumentDirectory,
			mcp.Description("Directory to scan"),
			mcp.Required(),
		),
		mcp.WithString(argumentRoot,
			mcp.Description("Root directory for relative links. Defaults to the scanned directory."),
		),
		mcp.WithBoolean(argumentExtractH1,
			mcp.Description("Include the first level-one heading of each file"),
		),
		mcp.WithString(argumentFormat,
			mcp.Description("Output format"),
			mcp.Enum(types.FormatGitHub, types.FormatObsidian),
		),
		mcp.WithBoolean(argumentNumbered,
			mcp.Description("Emit numeric order prefixes in GitHub output"),
		),
	)
}

// HandleGenerateToc renders the requested directory. Invalid input is reported as a tool error result.
func (tocServer *Server) HandleGenerateToc(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := request.GetString(argumentDirectory, "")
	root := request.GetString(argumentRoot, "")
	format := request.GetString(argumentFormat, types.FormatGitHub)
	options := types.TocOptions{
		IncludeHeadings: request.GetBool(argumentExtractH1, false),
		Format:          format,
		Numbered:        request.GetBool(argumentNumbered, true),
	}
	tocServer.config.Logger.Debug(debugToolCallMessage,
		zap.String(argumentDirectory, directory),
		zap.String(argumentRoot, root),
		zap.String(argumentFormat, format),
	)

	if !types.IsSupportedFormat(format) {
		return toolError(fmt.Errorf(errorUnsupportedFormatFmt, format))
	}
	if validationError := validateDirectory(directory); validationError != nil {
		return toolError(validationError)
	}
	if tocServer.config.Generator == nil {
		return toolError(errors.New("table of contents generator is not configured"))
	}

	toc, generateError := tocServer.config.Generator.GetTocData(directory, root, options)
	if generateError != nil {
		return toolError(generateError)
	}
	if toc == "" {
		return mcp.NewToolResultText(emptyTocMessage), nil
	}
	return mcp.NewToolResultText(toc), nil
}

func validateDirectory(directory string) error {
	if directory == "" {
		return errors.New(errorDirectoryRequired)
	}
	info, statError := os.Stat(filepath.Clean(directory))
	if statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorDirectoryMissingFmt, directory)
		}
		return fmt.Errorf(errorStatDirectoryFmt, directory, statError)
	}
	if !info.IsDir() {
		return fmt.Errorf(errorNotDirectoryFmt, directory)
	}
	return nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
