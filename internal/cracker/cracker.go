package cracker

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/xorscan/internal/codec"
	"github.com/nao1215/xorscan/internal/model"
	"github.com/nao1215/xorscan/internal/score"
	"github.com/nao1215/xorscan/internal/source"
	"github.com/nao1215/xorscan/internal/textenc"
	"github.com/nao1215/xorscan/internal/xor"
)

// KeySpace is the number of single-byte keys tried per ciphertext.
// Only 7-bit keys (0-127) are searched; keys 128-255 are never tried.
const KeySpace = 128

// ErrNoCandidates is returned when a batch contains no lines to crack.
var ErrNoCandidates = errors.New("no ciphertext lines to crack")

// Cracker runs the single-byte key search.
// It holds no per-call state and is safe for concurrent use.
type Cracker struct {
	scorer  score.Func
	decoder textenc.Decoder
	logger  *slog.Logger
}

// Option configures a Cracker.
type Option func(*Cracker)

// WithScorer sets the scoring function. Default is score.Language.
func WithScorer(f score.Func) Option {
	return func(c *Cracker) {
		if f != nil {
			c.scorer = f
		}
	}
}

// WithDecoder sets how decrypted bytes are read as text.
// Default is strict UTF-8.
func WithDecoder(d textenc.Decoder) Option {
	return func(c *Cracker) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cracker) {
		c.logger = logger
	}
}

// New creates a Cracker.
func New(opts ...Option) *Cracker {
	c := &Cracker{
		scorer:  score.Language,
		decoder: textenc.UTF8{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Encoding returns the name of the text encoding candidates are read with.
func (c *Cracker) Encoding() string {
	return c.decoder.Name()
}

// Crack decodes hex ciphertext and returns the score and plaintext of the
// best candidate, using the default scorer and strict UTF-8.
func Crack(cipherHex string) (int, string, error) {
	best, err := New().Crack(cipherHex)
	if err != nil {
		return 0, "", err
	}
	return best.Score, best.Text, nil
}

// Crack decodes hex ciphertext and returns the best candidate.
// Malformed hex yields an error wrapping codec.ErrDecode.
func (c *Cracker) Crack(cipherHex string) (model.Candidate, error) {
	ciphertext, err := codec.DecodeHex(cipherHex)
	if err != nil {
		return model.Candidate{}, err
	}
	return c.CrackBytes(ciphertext), nil
}

// CrackBytes tries every key in [0, KeySpace) and returns the best
// candidate. The first key reaching the maximum score wins.
func (c *Cracker) CrackBytes(ciphertext []byte) model.Candidate {
	best := c.Candidate(ciphertext, 0)
	for k := 1; k < KeySpace; k++ {
		if cand := c.Candidate(ciphertext, byte(k)); cand.Beats(best) {
			best = cand
		}
	}
	return best
}

// Candidate decrypts ciphertext with key and scores the result.
func (c *Cracker) Candidate(ciphertext []byte, key byte) model.Candidate {
	text, err := c.decoder.Decode(xor.RepeatedByte(ciphertext, key))
	if err != nil {
		return model.InvalidCandidate(key)
	}
	return model.Candidate{
		Key:   key,
		Score: c.scorer(text),
		Text:  text,
		Valid: true,
	}
}

// CrackLine cracks one hex line. lineNo is 1-based and only used to label
// the result and any error.
func (c *Cracker) CrackLine(lineNo int, line string) (model.LineResult, error) {
	best, err := c.Crack(line)
	if err != nil {
		return model.LineResult{}, fmt.Errorf("line %d: %w", lineNo, err)
	}
	return model.LineResult{
		Line:       lineNo,
		Ciphertext: line,
		Candidate:  best,
	}, nil
}

// CrackLines cracks every line and returns the results in line order.
// The first malformed line stops the scan.
func (c *Cracker) CrackLines(lines []string) ([]model.LineResult, error) {
	results := make([]model.LineResult, 0, len(lines))
	for i, line := range lines {
		r, err := c.CrackLine(i+1, line)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// CrackSource cracks every line of src and returns the overall best line.
func (c *Cracker) CrackSource(src *source.Source) (model.LineResult, error) {
	results, err := c.CrackLines(src.Lines)
	if err != nil {
		return model.LineResult{}, fmt.Errorf("%s: %w", src.Name, err)
	}

	best, ok := model.BestLine(results)
	if !ok {
		return model.LineResult{}, fmt.Errorf("%s: %w", src.Name, ErrNoCandidates)
	}

	c.logger.Debug("source cracked",
		"source", src.Name,
		"lines", len(results),
		"best_line", best.Line,
		"score", best.Score,
		"key", best.Key,
	)

	return best, nil
}

// CrackFile reads the hex lines of the file at path and returns the
// plaintext of the best line exactly as decrypted, including any trailing
// newline it encodes.
func (c *Cracker) CrackFile(path string) (string, error) {
	src, err := source.Open(path)
	if err != nil {
		return "", err
	}

	best, err := c.CrackSource(src)
	if err != nil {
		return "", err
	}
	return best.Text, nil
}

// CrackFile is CrackFile on a Cracker with default options.
func CrackFile(path string) (string, error) {
	return New().CrackFile(path)
}
