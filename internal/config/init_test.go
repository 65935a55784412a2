package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/tocmd/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "toc:") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, HomeDirectory: homeDirectory})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
}

func TestInitializeConfigurationRefusesOverwrite(t *testing.T) {
	workingDirectory := t.TempDir()
	existingPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if err := os.WriteFile(existingPath, []byte("toc:\n  format: obsidian\n"), 0o644); err != nil {
		t.Fatalf("write existing config: %v", err)
	}
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected error when configuration already exists")
	}
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Force: true}); err != nil {
		t.Fatalf("forced initialization failed: %v", err)
	}
}

func TestInitializedConfigurationLoads(t *testing.T) {
	workingDirectory := t.TempDir()
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	config, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, HomeDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("load initialized configuration: %v", err)
	}
	if config.Toc.Format != "github" {
		t.Fatalf("expected github format, got %q", config.Toc.Format)
	}
	assertBoolPointer(t, "numbered", boolPointer(true), config.Toc.Numbered)
	assertBoolPointer(t, "extract_h1", boolPointer(false), config.Toc.ExtractH1)
	if config.Toc.MaxLength == nil || *config.Toc.MaxLength != 60 {
		t.Fatalf("expected max_length 60, got %v", config.Toc.MaxLength)
	}
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: InitTarget("remote"), WorkingDirectory: t.TempDir()}); err == nil {
		t.Fatalf("expected error for unknown target")
	}
}
