// Package utils contains general helper functions used across the tocmd tool.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// HiddenEntryPrefix marks directories that are never descended into.
	HiddenEntryPrefix = "."
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".tocmd.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".tocmd"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)

const (
	pathSegmentSeparator = "/"
	windowsSeparator     = "\\"
)

// RelativeLinkPath calculates the forward-slash path from root to fullPath for use in a link.
// Backslashes are normalized to forward slashes regardless of the host path convention.
// Returns the cleaned fullPath in slash form if a relative path cannot be computed.
func RelativeLinkPath(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	linkPath := cleanPath
	if root != "" {
		relativePath, relErr := filepath.Rel(filepath.Clean(root), cleanPath)
		if relErr == nil {
			linkPath = relativePath
		}
	}
	return strings.ReplaceAll(filepath.ToSlash(linkPath), windowsSeparator, pathSegmentSeparator)
}

// IsHiddenName reports whether a directory entry name starts with a dot.
func IsHiddenName(entryName string) bool {
	return strings.HasPrefix(entryName, HiddenEntryPrefix)
}
