package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/xorscan/internal/config"
	"github.com/nao1215/xorscan/internal/database"
	"github.com/nao1215/xorscan/internal/report"
	"github.com/nao1215/xorscan/internal/source"
)

func TestNewDetectCmd(t *testing.T) {
	t.Parallel()

	cmd := NewDetectCmd()

	if cmd.Use != "detect [file...]" {
		t.Errorf("unexpected Use: got %q", cmd.Use)
	}

	flagsWithShort := map[string]string{
		"encoding":   "e",
		"sample":     "s",
		"batch":      "b",
		"line-batch": "l",
		"config":     "c",
		"profile":    "p",
		"top":        "n",
		"json":       "j",
		"markdown":   "m",
		"output":     "o",
	}
	for flag, shorthand := range flagsWithShort {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag %q to exist", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
		}
	}

	for _, flag := range []string{"plain", "save", "db-dir"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q to exist", flag)
		}
	}
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults read stdin", func(t *testing.T) {
		t.Parallel()
		cmd := NewDetectCmd()
		configPath := filepath.Join(t.TempDir(), ".xorscan")
		if err := os.WriteFile(configPath, []byte("defaults: {}\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := cmd.ParseFlags([]string{"-c", configPath}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Sources) != 1 || cfg.Sources[0] != source.StdinName {
			t.Errorf("expected stdin source, got %v", cfg.Sources)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", config.DefaultConcurrency, cfg.Concurrency)
		}
		if cfg.Encoding != config.DefaultEncoding {
			t.Errorf("expected encoding %q, got %q", config.DefaultEncoding, cfg.Encoding)
		}
	})

	t.Run("flags override profile", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), ".xorscan")
		content := `defaults:
  concurrency: 2
profiles:
  fast:
    concurrency: 16
    lineConcurrency: 32
    top: 3
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{"-c", configPath, "-p", "fast", "-n", "7"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"a.txt"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Concurrency != 16 {
			t.Errorf("expected profile concurrency 16, got %d", cfg.Concurrency)
		}
		if cfg.LineConcurrency != 32 {
			t.Errorf("expected profile line concurrency 32, got %d", cfg.LineConcurrency)
		}
		if cfg.TopN != 7 {
			t.Errorf("expected flag top 7, got %d", cfg.TopN)
		}
		if len(cfg.Sources) != 1 || cfg.Sources[0] != "a.txt" {
			t.Errorf("unexpected sources %v", cfg.Sources)
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), ".xorscan")
		if err := os.WriteFile(configPath, []byte("defaults: {}\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{"-c", configPath, "-p", "missing"}); err != nil {
			t.Fatal(err)
		}
		if _, err := buildConfig(cmd, nil); !errors.Is(err, config.ErrUnknownProfile) {
			t.Errorf("expected ErrUnknownProfile, got %v", err)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()
		cmd := NewDetectCmd()
		if err := cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "none.yaml")}); err != nil {
			t.Fatal(err)
		}
		if _, err := buildConfig(cmd, nil); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestNewCracker(t *testing.T) {
	t.Parallel()

	t.Run("language scorer by default", func(t *testing.T) {
		t.Parallel()
		c, name, err := newCracker(config.DefaultEncoding, "", discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "language" {
			t.Errorf("expected language scorer, got %q", name)
		}
		best, err := c.Crack(cookingHex)
		if err != nil {
			t.Fatal(err)
		}
		if best.Text != cookingTxt {
			t.Errorf("expected %q, got %q", cookingTxt, best.Text)
		}
	})

	t.Run("frequency scorer with sample", func(t *testing.T) {
		t.Parallel()
		sample := filepath.Join(t.TempDir(), "sample.txt")
		text := "the quick brown fox jumps over the lazy dog and the cook likes bacon\n"
		if err := os.WriteFile(sample, []byte(strings.Repeat(text, 10)), 0600); err != nil {
			t.Fatal(err)
		}

		_, name, err := newCracker(config.DefaultEncoding, sample, discardLogger())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "frequency" {
			t.Errorf("expected frequency scorer, got %q", name)
		}
	})

	t.Run("missing sample", func(t *testing.T) {
		t.Parallel()
		if _, _, err := newCracker(config.DefaultEncoding, filepath.Join(t.TempDir(), "none"), discardLogger()); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown encoding", func(t *testing.T) {
		t.Parallel()
		if _, _, err := newCracker("no-such-encoding", "", discardLogger()); err == nil {
			t.Error("expected error")
		}
	})
}

// detectArgs returns args prefixed with an empty config file so a user's
// own configuration never affects the test.
func detectArgs(t *testing.T, args ...string) []string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".xorscan")
	if err := os.WriteFile(configPath, []byte("defaults: {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return append([]string{"-c", configPath}, args...)
}

func TestRunDetectCmd(t *testing.T) {
	t.Parallel()

	t.Run("plain prints the best plaintext", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", "00", cookingHex)

		out, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, "--plain", path)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != cookingTxt {
			t.Errorf("expected %q, got %q", cookingTxt, out)
		}
	})

	t.Run("reads stdin without arguments", func(t *testing.T) {
		t.Parallel()
		out, err := executeCommand(t, NewDetectCmd(), "00\n"+cookingHex+"\n", detectArgs(t, "--plain")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != cookingTxt {
			t.Errorf("expected %q, got %q", cookingTxt, out)
		}
	})

	t.Run("repeated dash scans stdin once for every source", func(t *testing.T) {
		t.Parallel()
		out, err := executeCommand(t, NewDetectCmd(), "00\n"+cookingHex+"\n",
			detectArgs(t, "--plain", "-b", "2", "-", "-")...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != cookingTxt+cookingTxt {
			t.Errorf("expected %q, got %q", cookingTxt+cookingTxt, out)
		}
	})

	t.Run("text report", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", "00", cookingHex)

		out, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, path)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"XORSCAN REPORT", "BEST CANDIDATE", cookingTxt, "0x58"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", "00", cookingHex)

		out, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, "--json", path)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got report.JSONReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if got.Summary == nil || got.Summary.BestLine != 2 || got.Summary.BestKey != 88 {
			t.Errorf("unexpected summary %+v", got.Summary)
		}
		if got.Version == "" {
			t.Error("expected version")
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", "00", cookingHex)
		outPath := filepath.Join(t.TempDir(), "reports", "report.md")

		out, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, "--markdown", "-o", outPath, path)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected nothing on stdout, got %q", out)
		}

		data, err := os.ReadFile(outPath) //nolint:gosec // test file
		if err != nil {
			t.Fatalf("expected report file: %v", err)
		}
		if !strings.Contains(string(data), "# xorscan Report") {
			t.Error("expected markdown header")
		}
		info, err := os.Stat(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
		}
	})

	t.Run("reports of several files keep argument order", func(t *testing.T) {
		t.Parallel()
		first := writeCipherFile(t, "first.txt", cookingHex)
		second := writeCipherFile(t, "second.txt", "00")

		out, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, "--plain", "-b", "2", first, second)...)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != cookingTxt+" " {
			t.Errorf("expected %q, got %q", cookingTxt+" ", out)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", cookingHex)
		_, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, "--json", "--plain", path)...)
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("malformed line fails the scan", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", cookingHex, "zz")
		_, err := executeCommand(t, NewDetectCmd(), "", detectArgs(t, "--plain", path)...)
		if err == nil || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("expected line 2 error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := executeCommand(t, NewDetectCmd(), "",
			detectArgs(t, "--plain", filepath.Join(t.TempDir(), "none.txt"))...)
		if !errors.Is(err, source.ErrRead) {
			t.Errorf("expected ErrRead, got %v", err)
		}
	})

	t.Run("save stores the report", func(t *testing.T) {
		t.Parallel()
		path := writeCipherFile(t, "cipher.txt", "00", cookingHex)
		dbDir := t.TempDir()

		if _, err := executeCommand(t, NewDetectCmd(), "",
			detectArgs(t, "--plain", "--save", "--db-dir", dbDir, path)...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(dbDir, database.ReadOnlyOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		saved, err := db.GetLatestScanReport(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}
		if saved == nil {
			t.Fatal("expected saved report")
		}
		if saved.Plaintext() != cookingTxt {
			t.Errorf("expected %q, got %q", cookingTxt, saved.Plaintext())
		}
	})
}
