package utils_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/temirov/tocmd/internal/utils"
)

// TestRelativeLinkPath verifies relative link path calculations.
func TestRelativeLinkPath(testingInstance *testing.T) {
	temporaryRoot := testingInstance.TempDir()
	nestedFile := filepath.Join(temporaryRoot, "docs", "1. Intro.md")
	siblingRoot := filepath.Join(temporaryRoot, "other")

	testCases := []struct {
		testName string
		fullPath string
		root     string
		expected string
	}{
		{
			testName: "nested file below root",
			fullPath: nestedFile,
			root:     temporaryRoot,
			expected: "docs/1. Intro.md",
		},
		{
			testName: "file outside root climbs with parent segments",
			fullPath: nestedFile,
			root:     siblingRoot,
			expected: "../docs/1. Intro.md",
		},
		{
			testName: "root with trailing separator",
			fullPath: nestedFile,
			root:     temporaryRoot + string(filepath.Separator),
			expected: "docs/1. Intro.md",
		},
		{
			testName: "empty root keeps full path",
			fullPath: nestedFile,
			root:     "",
			expected: filepath.ToSlash(nestedFile),
		},
	}
	for index, testCase := range testCases {
		actual := utils.RelativeLinkPath(testCase.fullPath, testCase.root)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %s, got %s", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestRelativeLinkPathNormalizesBackslashes verifies that backslashes never reach a link target.
func TestRelativeLinkPathNormalizesBackslashes(testingInstance *testing.T) {
	if runtime.GOOS == "windows" {
		testingInstance.Skip("backslash is the path separator on windows")
	}
	temporaryRoot := testingInstance.TempDir()
	fullPath := filepath.Join(temporaryRoot, `odd\name.md`)
	actual := utils.RelativeLinkPath(fullPath, temporaryRoot)
	if actual != "odd/name.md" {
		testingInstance.Fatalf("expected odd/name.md, got %s", actual)
	}
}

// TestIsHiddenName verifies dot-prefixed names are treated as hidden.
func TestIsHiddenName(testingInstance *testing.T) {
	testCases := map[string]bool{
		".git":      true,
		".obsidian": true,
		"docs":      false,
		"a.hidden":  false,
	}
	for entryName, expected := range testCases {
		if actual := utils.IsHiddenName(entryName); actual != expected {
			testingInstance.Errorf("IsHiddenName(%q) = %t, expected %t", entryName, actual, expected)
		}
	}
}

// TestGetApplicationVersionPrefersInjectedVersion verifies the ldflags override wins.
func TestGetApplicationVersionPrefersInjectedVersion(testingInstance *testing.T) {
	previousVersion := utils.Version
	utils.Version = "v9.9.9"
	testingInstance.Cleanup(func() { utils.Version = previousVersion })
	if actual := utils.GetApplicationVersion(); actual != "v9.9.9" {
		testingInstance.Fatalf("expected injected version, got %s", actual)
	}
}
