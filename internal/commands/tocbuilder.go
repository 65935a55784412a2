package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/tocmd/internal/naming"
	"github.com/temirov/tocmd/internal/types"
)

// IndentStep is the indentation added for each nesting level.
const IndentStep = "  "

// TocBuilder renders Markdown tables of contents using configured options.
type TocBuilder struct {
	Logger    *zap.Logger
	MaxLength int
}

// RenderContext holds the parameters threaded through one render.
// Children receive a copy with Level increased by one.
type RenderContext struct {
	LinkRootPath    string
	IncludeHeadings bool
	Format          string
	Numbered        bool
	Level           int
}

// NewRenderContext builds a top-level context from caller options.
func NewRenderContext(linkRootPath string, options types.TocOptions) RenderContext {
	return RenderContext{
		LinkRootPath:    linkRootPath,
		IncludeHeadings: options.IncludeHeadings,
		Format:          options.Format,
		Numbered:        options.Numbered,
		Level:           0,
	}
}

func (renderContext RenderContext) child() RenderContext {
	childContext := renderContext
	childContext.Level++
	return childContext
}

func (renderContext RenderContext) isObsidian() bool {
	return renderContext.Format == types.FormatObsidian
}

func (tocBuilder *TocBuilder) logger() *zap.Logger {
	if tocBuilder == nil || tocBuilder.Logger == nil {
		return zap.NewNop()
	}
	return tocBuilder.Logger
}

func (tocBuilder *TocBuilder) maxLength() int {
	if tocBuilder == nil || tocBuilder.MaxLength <= 0 {
		return naming.DefaultMaxLength
	}
	return tocBuilder.MaxLength
}
