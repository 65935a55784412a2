// Package types defines every cross‑package data structure used by the tocmd CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatGitHub   = "github"
	FormatObsidian = "obsidian"

	MarkdownExtension = ".md"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// TocOptions carries the caller-selected rendering flags.
type TocOptions struct {
	IncludeHeadings bool
	Format          string
	Numbered        bool
}

// DefaultTocOptions returns the options used when nothing is configured.
func DefaultTocOptions() TocOptions {
	return TocOptions{
		IncludeHeadings: false,
		Format:          FormatGitHub,
		Numbered:        true,
	}
}

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatGitHub, FormatObsidian:
		return true
	default:
		return false
	}
}
