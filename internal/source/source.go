package source

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/sha3"
)

// StdinName is the source name used for standard input.
const StdinName = "-"

// MaxLineLength is the longest line Load accepts.
const MaxLineLength = 1024 * 1024

// ErrRead is returned when a source cannot be opened or read.
var ErrRead = errors.New("cannot read source")

// Source is the content of one input, split into lines.
type Source struct {
	// Name is the file path, or StdinName.
	Name string

	// Lines are the input lines without their line terminators.
	// "\r\n" terminators are accepted.
	Lines []string

	// Digest is the hex SHA3-256 digest of the raw input.
	Digest string

	// Size is the raw input size in bytes.
	Size int
}

// Load reads r to the end and splits it into lines.
func Load(name string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, name, err)
	}

	sum := sha3.Sum256(data)
	src := &Source{
		Name:   name,
		Digest: hex.EncodeToString(sum[:]),
		Size:   len(data),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for scanner.Scan() {
		src.Lines = append(src.Lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, name, err)
	}

	return src, nil
}

// Open loads the file at path. The file is closed before Open returns.
func Open(path string) (*Source, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	return Load(path, f)
}
