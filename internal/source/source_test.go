package source

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"golang.org/x/crypto/sha3"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "trailing newline", input: "aa\nbb\n", want: []string{"aa", "bb"}},
		{name: "no trailing newline", input: "aa\nbb", want: []string{"aa", "bb"}},
		{name: "crlf terminators", input: "aa\r\nbb\r\n", want: []string{"aa", "bb"}},
		{name: "blank line kept", input: "aa\n\nbb\n", want: []string{"aa", "", "bb"}},
		{name: "empty input", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Load("test", strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(src.Lines, tt.want) {
				t.Errorf("got lines %q, want %q", src.Lines, tt.want)
			}
			if src.Size != len(tt.input) {
				t.Errorf("expected size %d, got %d", len(tt.input), src.Size)
			}
		})
	}
}

func TestLoadDigest(t *testing.T) {
	t.Parallel()

	input := "0e3647e8592d35514a081243582536ed3de6734059001e3f535ce6271032\n"
	src, err := Load("test", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := sha3.Sum256([]byte(input))
	if want := hex.EncodeToString(sum[:]); src.Digest != want {
		t.Errorf("expected digest %s, got %s", want, src.Digest)
	}

	other, err := Load("test", strings.NewReader(input+"00\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.Digest == src.Digest {
		t.Error("expected different inputs to have different digests")
	}
}

func TestLoadReadError(t *testing.T) {
	t.Parallel()

	_, err := Load("broken", iotest.ErrReader(errors.New("disk on fire")))
	if !errors.Is(err, ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
}

func TestLoadLineTooLong(t *testing.T) {
	t.Parallel()

	_, err := Load("long", strings.NewReader(strings.Repeat("a", MaxLineLength+1)))
	if !errors.Is(err, ErrRead) {
		t.Errorf("expected ErrRead, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "lines.txt")
		if err := os.WriteFile(path, []byte("00ff\n1234\n"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		src, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if src.Name != path {
			t.Errorf("expected name %q, got %q", path, src.Name)
		}
		if !reflect.DeepEqual(src.Lines, []string{"00ff", "1234"}) {
			t.Errorf("unexpected lines %q", src.Lines)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
		if !errors.Is(err, ErrRead) {
			t.Errorf("expected ErrRead, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist to be wrapped, got %v", err)
		}
	})
}

func TestStdinLoadsOnce(t *testing.T) {
	t.Parallel()

	in := NewStdin(strings.NewReader("aa\nbb\n"))

	const readers = 8
	got := make([]*Source, readers)
	var wg sync.WaitGroup
	for i := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src, err := in.Load()
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			got[i] = src
		}()
	}
	wg.Wait()

	for i, src := range got {
		if src == nil {
			continue
		}
		if src.Name != StdinName {
			t.Errorf("reader %d: expected name %q, got %q", i, StdinName, src.Name)
		}
		if !reflect.DeepEqual(src.Lines, []string{"aa", "bb"}) {
			t.Errorf("reader %d: got lines %q", i, src.Lines)
		}
	}
}

func TestStdinKeepsReadError(t *testing.T) {
	t.Parallel()

	in := NewStdin(iotest.ErrReader(errors.New("boom")))
	for range 2 {
		if _, err := in.Load(); !errors.Is(err, ErrRead) {
			t.Errorf("expected ErrRead, got %v", err)
		}
	}
}
