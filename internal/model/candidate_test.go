package model

import "testing"

func TestInvalidCandidate(t *testing.T) {
	t.Parallel()

	c := InvalidCandidate(42)
	if c.Key != 42 {
		t.Errorf("expected key 42, got %d", c.Key)
	}
	if c.Score != -1 {
		t.Errorf("expected score -1, got %d", c.Score)
	}
	if c.Text != "" {
		t.Errorf("expected empty text, got %q", c.Text)
	}
	if c.Valid {
		t.Error("expected Valid to be false")
	}
}

func TestCandidateBeats(t *testing.T) {
	t.Parallel()

	low := Candidate{Key: 1, Score: 1, Valid: true}
	high := Candidate{Key: 2, Score: 5, Valid: true}
	tie := Candidate{Key: 3, Score: 5, Valid: true}

	if !high.Beats(low) {
		t.Error("expected higher score to beat lower score")
	}
	if low.Beats(high) {
		t.Error("expected lower score not to beat higher score")
	}
	if tie.Beats(high) || high.Beats(tie) {
		t.Error("expected equal scores not to beat each other")
	}
	if InvalidCandidate(0).Beats(Candidate{Score: 0, Valid: true}) {
		t.Error("expected invalid candidate not to beat a zero score")
	}
}

func TestBestLine(t *testing.T) {
	t.Parallel()

	t.Run("empty results", func(t *testing.T) {
		t.Parallel()

		if _, ok := BestLine(nil); ok {
			t.Error("expected ok to be false for empty results")
		}
	})

	t.Run("picks maximum score", func(t *testing.T) {
		t.Parallel()

		results := []LineResult{
			{Line: 1, Candidate: Candidate{Score: -3}},
			{Line: 2, Candidate: Candidate{Score: 27, Text: "Now that the party is jumping\n"}},
			{Line: 3, Candidate: Candidate{Score: 4}},
		}
		best, ok := BestLine(results)
		if !ok {
			t.Fatal("expected a result")
		}
		if best.Line != 2 {
			t.Errorf("expected line 2, got %d", best.Line)
		}
	})

	t.Run("earliest line wins ties", func(t *testing.T) {
		t.Parallel()

		results := []LineResult{
			{Line: 1, Candidate: Candidate{Score: 2}},
			{Line: 2, Candidate: Candidate{Score: 9, Text: "first"}},
			{Line: 3, Candidate: Candidate{Score: 9, Text: "second"}},
		}
		best, _ := BestLine(results)
		if best.Text != "first" {
			t.Errorf("expected first tied line to win, got %q", best.Text)
		}
	})

	t.Run("all negative scores", func(t *testing.T) {
		t.Parallel()

		results := []LineResult{
			{Line: 1, Candidate: Candidate{Score: -5}},
			{Line: 2, Candidate: Candidate{Score: -1}},
		}
		best, _ := BestLine(results)
		if best.Line != 2 {
			t.Errorf("expected line 2, got %d", best.Line)
		}
	})
}
