package model

// Candidate is the outcome of trying one single-byte key against a
// ciphertext.
type Candidate struct {
	// Key is the XOR key byte that produced Text.
	Key byte `json:"key"`

	// Score is the plausibility score of Text. Candidates whose bytes are
	// not valid text carry -1.
	Score int `json:"score"`

	// Text is the decrypted text. Empty when Valid is false.
	Text string `json:"text"`

	// Valid reports whether the decrypted bytes could be read as text.
	Valid bool `json:"valid"`
}

// InvalidCandidate returns the candidate recorded for a key whose output is
// not readable text. Its score of -1 keeps it from beating any readable
// candidate with a non-negative score.
func InvalidCandidate(key byte) Candidate {
	return Candidate{Key: key, Score: -1}
}

// Beats reports whether c strictly outscores other.
// Equal scores never beat each other, so the first of two tied candidates
// is the one kept by a running maximum.
func (c Candidate) Beats(other Candidate) bool {
	return c.Score > other.Score
}

// LineResult is the best candidate found for a single ciphertext line.
type LineResult struct {
	// Line is the 1-based line number within the source.
	Line int `json:"line"`

	// Ciphertext is the hex text of the line as read.
	Ciphertext string `json:"ciphertext"`

	Candidate
}

// BestLine returns the result with the highest score.
// On equal scores the earliest result in the slice wins.
// The boolean is false when results is empty.
func BestLine(results []LineResult) (LineResult, bool) {
	if len(results) == 0 {
		return LineResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Beats(best.Candidate) {
			best = r
		}
	}
	return best, true
}
