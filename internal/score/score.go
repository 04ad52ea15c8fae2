package score

import (
	"errors"
	"fmt"
	"io"
)

// Func assigns a plausibility score to a candidate text.
// Higher is more plausible.
type Func func(text string) int

// ErrEmptySample is returned when a frequency sample contains no text.
var ErrEmptySample = errors.New("sample text is empty")

// Language scores text by adding 1 for every character in 'A'..'Y',
// 'a'..'y' or the space, and subtracting 1 for every other character.
//
// The letter ranges are half-open, so 'Z' and 'z' count against the text.
// Existing fixtures are calibrated to this behavior.
func Language(text string) int {
	var n int
	for _, c := range text {
		if ('A' <= c && c < 'Z') || ('a' <= c && c < 'z') || c == ' ' {
			n++
		} else {
			n--
		}
	}
	return n
}

// SymbolCounts reads sample text and returns the count of every rune in it.
func SymbolCounts(r io.Reader) (map[rune]int, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample: %w", err)
	}
	m := make(map[rune]int)
	for _, c := range string(buf) {
		m[c]++
	}
	return m, nil
}

// Frequency reads sample text and returns a scorer that sums the sample
// count of every rune in the candidate text. Runes absent from the sample
// contribute nothing.
func Frequency(r io.Reader) (Func, error) {
	m, err := SymbolCounts(r)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, ErrEmptySample
	}
	return func(text string) int {
		var n int
		for _, c := range text {
			n += m[c]
		}
		return n
	}, nil
}
