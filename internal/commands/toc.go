// Package commands contains the core logic for rendering a Markdown table of contents.
package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/tocmd/internal/naming"
	"github.com/temirov/tocmd/internal/types"
	"github.com/temirov/tocmd/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// debugSkipDirectoryMessage is logged when a directory cannot be listed.
	debugSkipDirectoryMessage = "skipping unreadable directory"
	// debugStatPathMessage is logged when a symlink target cannot be resolved.
	debugStatPathMessage = "skipping unresolvable entry"

	obsidianFileLineFormat  = "%s- [[%s|%s]]"
	githubFileLineFormat    = "%s- [%s](%s)"
	githubOrderedLineFormat = "%s%s [%s](%s)"
	directoryLineFormat     = "%s- %s"
	collapsedHeadingFormat  = "<details><summary>%s</summary>%s</details>"

	lineSeparator = "\n"
)

// directoryEntry is a Markdown file or subdirectory discovered by listing one directory.
type directoryEntry struct {
	Name    string
	Path    string
	Kind    string
	SortKey naming.SortKey
}

// GetTocData renders the table of contents for scanDirectory with links relative to linkRootDirectory.
// Both paths are resolved to absolute form first. An empty linkRootDirectory links relative to scanDirectory.
func (tocBuilder *TocBuilder) GetTocData(scanDirectory string, linkRootDirectory string, options types.TocOptions) (string, error) {
	absoluteScanDirectory, absolutePathError := filepath.Abs(scanDirectory)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, scanDirectory, absolutePathError)
	}
	absoluteLinkRoot := ""
	if linkRootDirectory != "" {
		absoluteLinkRoot, absolutePathError = filepath.Abs(linkRootDirectory)
		if absolutePathError != nil {
			return "", fmt.Errorf(errorAbsolutePathFormat, linkRootDirectory, absolutePathError)
		}
	}
	return tocBuilder.RenderToc(absoluteScanDirectory, NewRenderContext(absoluteLinkRoot, options)), nil
}

// RenderToc renders the nested Markdown list for directory.
// It returns an empty string when the directory holds no Markdown files anywhere beneath it
// or cannot be listed. Failures never propagate: an unreadable subtree simply contributes nothing.
func (tocBuilder *TocBuilder) RenderToc(directory string, renderContext RenderContext) string {
	if renderContext.LinkRootPath == "" {
		renderContext.LinkRootPath = directory
	}

	markdownFiles, subdirectories, listError := tocBuilder.listDirectory(directory)
	if listError != nil {
		tocBuilder.logger().Debug(debugSkipDirectoryMessage, zap.String("path", directory), zap.Error(listError))
		return ""
	}

	indent := strings.Repeat(IndentStep, renderContext.Level)
	var lines []string

	for _, markdownFile := range markdownFiles {
		lines = append(lines, tocBuilder.renderFileLine(markdownFile, indent, renderContext))
		if renderContext.IncludeHeadings {
			if headingLine, hasHeading := tocBuilder.renderHeadingLine(markdownFile, indent, renderContext); hasHeading {
				lines = append(lines, headingLine)
			}
		}
	}

	for _, subdirectory := range subdirectories {
		subtree := tocBuilder.RenderToc(subdirectory.Path, renderContext.child())
		if subtree == "" {
			continue
		}
		label := naming.Truncate(naming.DeriveDisplayName(subdirectory.Name).Text, tocBuilder.maxLength())
		if renderContext.isObsidian() {
			label = naming.EscapeForWikilink(label)
		}
		lines = append(lines, fmt.Sprintf(directoryLineFormat, indent, label), subtree)
	}

	return strings.Join(lines, lineSeparator)
}

// listDirectory returns the sorted Markdown files and visible subdirectories directly inside directory.
func (tocBuilder *TocBuilder) listDirectory(directory string) ([]directoryEntry, []directoryEntry, error) {
	entries, readDirectoryError := os.ReadDir(directory)
	if readDirectoryError != nil {
		return nil, nil, readDirectoryError
	}

	var markdownFiles []directoryEntry
	var subdirectories []directoryEntry
	for _, entry := range entries {
		entryName := entry.Name()
		entryPath := filepath.Join(directory, entryName)
		switch {
		case entry.IsDir():
			if utils.IsHiddenName(entryName) {
				continue
			}
			subdirectories = append(subdirectories, directoryEntry{
				Name:    entryName,
				Path:    entryPath,
				Kind:    types.NodeTypeDirectory,
				SortKey: naming.SiblingSortKey(entryName),
			})
		case strings.HasSuffix(entryName, types.MarkdownExtension):
			if !tocBuilder.isRegularFile(entry, entryPath) {
				continue
			}
			markdownFiles = append(markdownFiles, directoryEntry{
				Name:    entryName,
				Path:    entryPath,
				Kind:    types.NodeTypeFile,
				SortKey: naming.SiblingSortKey(fileStem(entryName)),
			})
		}
	}

	sortEntries(markdownFiles)
	sortEntries(subdirectories)
	return markdownFiles, subdirectories, nil
}

// isRegularFile reports whether the entry is a regular file, resolving file symlinks.
// Symlinked directories are not descended into.
func (tocBuilder *TocBuilder) isRegularFile(entry fs.DirEntry, entryPath string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(entryPath)
	if statError != nil {
		tocBuilder.logger().Debug(debugStatPathMessage, zap.String("path", entryPath), zap.Error(statError))
		return false
	}
	return targetInfo.Mode().IsRegular()
}

func (tocBuilder *TocBuilder) renderFileLine(markdownFile directoryEntry, indent string, renderContext RenderContext) string {
	relativePath := utils.RelativeLinkPath(markdownFile.Path, renderContext.LinkRootPath)
	displayName := naming.DeriveDisplayName(fileStem(markdownFile.Name))
	displayText := naming.Truncate(displayName.Text, tocBuilder.maxLength())

	if renderContext.isObsidian() {
		linkTarget := strings.TrimSuffix(relativePath, types.MarkdownExtension)
		return fmt.Sprintf(obsidianFileLineFormat, indent, linkTarget, naming.EscapeForWikilink(displayText))
	}

	encodedPath := naming.EncodeLinkTarget(relativePath)
	if renderContext.Numbered && displayName.HasOrder {
		return fmt.Sprintf(githubOrderedLineFormat, indent, strconv.Itoa(displayName.Order), displayText, encodedPath)
	}
	return fmt.Sprintf(githubFileLineFormat, indent, displayText, encodedPath)
}

// renderHeadingLine renders the file's first-level heading two levels deeper than the file line.
// Headings longer than the truncation length are kept whole inside a collapsible block.
func (tocBuilder *TocBuilder) renderHeadingLine(markdownFile directoryEntry, indent string, renderContext RenderContext) (string, bool) {
	heading := naming.ExtractFirstHeading(markdownFile.Path)
	if heading == "" {
		return "", false
	}
	headingContent := heading
	if utf8.RuneCountInString(heading) > tocBuilder.maxLength() {
		headingContent = fmt.Sprintf(collapsedHeadingFormat, naming.Truncate(heading, tocBuilder.maxLength()), heading)
	}
	if renderContext.isObsidian() {
		headingContent = naming.EscapeForWikilink(headingContent)
	}
	return indent + IndentStep + IndentStep + headingContent, true
}

func sortEntries(entries []directoryEntry) {
	slices.SortStableFunc(entries, func(left, right directoryEntry) int {
		return left.SortKey.Compare(right.SortKey)
	})
}

// fileStem strips the Markdown extension; a file named only ".md" keeps its full name.
func fileStem(fileName string) string {
	stem := strings.TrimSuffix(fileName, types.MarkdownExtension)
	if stem == "" {
		return fileName
	}
	return stem
}
