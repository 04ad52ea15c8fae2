package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/xorscan/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != configFileName {
			t.Errorf("expected default %q, got %q", configFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates a loadable config file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "nested", ".xorscan")

		out, err := executeCommand(t, NewInitCmd(), "", "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, outputPath) {
			t.Errorf("expected output to mention %s, got %q", outputPath, out)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("expected config file: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
		}

		if _, err := config.LoadConfigFile(outputPath); err != nil {
			t.Errorf("generated config does not load: %v", err)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".xorscan")
		if err := os.WriteFile(outputPath, []byte("keep"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := executeCommand(t, NewInitCmd(), "", "-o", outputPath)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Fatalf("expected already exists error, got %v", err)
		}

		data, err := os.ReadFile(outputPath) //nolint:gosec // test file
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "keep" {
			t.Error("existing file was modified")
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), ".xorscan")
		if err := os.WriteFile(outputPath, []byte("old"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := executeCommand(t, NewInitCmd(), "", "-o", outputPath, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath) //nolint:gosec // test file
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "old" {
			t.Error("expected file to be overwritten")
		}
	})
}
