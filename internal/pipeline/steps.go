package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/xorscan/internal/cracker"
	"github.com/nao1215/xorscan/internal/model"
	"github.com/nao1215/xorscan/internal/source"
	"golang.org/x/sync/errgroup"
)

// Step names as recorded in ScanReport.PerformedSteps.
const (
	ReadStepName  = "read"
	CrackStepName = "crack"
	RankStepName  = "rank"
)

// stdin is shared by every step that reads the process standard input,
// which can only be consumed once.
var stdin = source.NewStdin(os.Stdin)

// ReadStep loads the source named by the report into memory.
type ReadStep struct {
	stdin *source.Stdin
}

// ReadStepOption configures a ReadStep.
type ReadStepOption func(*ReadStep)

// WithStdin sets the reader used for the "-" source. Default is os.Stdin.
// The reader is consumed at most once by this step.
func WithStdin(r io.Reader) ReadStepOption {
	return func(s *ReadStep) {
		if r != nil {
			s.stdin = source.NewStdin(r)
		}
	}
}

// WithStdinSource sets a Stdin that several steps share, so that scans of "-"
// running in parallel all see the same lines.
func WithStdinSource(in *source.Stdin) ReadStepOption {
	return func(s *ReadStep) {
		if in != nil {
			s.stdin = in
		}
	}
}

// NewReadStep creates a ReadStep.
func NewReadStep(opts ...ReadStepOption) *ReadStep {
	s := &ReadStep{stdin: stdin}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Step.
func (s *ReadStep) Name() string {
	return ReadStepName
}

// Do implements Step.
func (s *ReadStep) Do(_ context.Context, report *model.ScanReport) error {
	var (
		src *source.Source
		err error
	)
	if report.Source == source.StdinName {
		src, err = s.stdin.Load()
	} else {
		src, err = source.Open(report.Source)
	}
	if err != nil {
		return err
	}

	report.Lines = src.Lines
	report.LineCount = len(src.Lines)
	report.SourceDigest = src.Digest
	return nil
}

// CrackStep cracks every loaded line, several lines at a time.
type CrackStep struct {
	cracker     *cracker.Cracker
	concurrency int
	scorerName  string
	logger      *slog.Logger
}

// CrackStepOption configures a CrackStep.
type CrackStepOption func(*CrackStep)

// WithLineConcurrency sets how many lines are cracked at once.
// Non-positive values are ignored.
func WithLineConcurrency(n int) CrackStepOption {
	return func(s *CrackStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithScorerName sets the scorer name recorded in the report.
func WithScorerName(name string) CrackStepOption {
	return func(s *CrackStep) {
		if name != "" {
			s.scorerName = name
		}
	}
}

// WithCrackLogger sets the logger.
func WithCrackLogger(logger *slog.Logger) CrackStepOption {
	return func(s *CrackStep) {
		s.logger = logger
	}
}

// NewCrackStep creates a CrackStep that uses c for every line.
func NewCrackStep(c *cracker.Cracker, opts ...CrackStepOption) *CrackStep {
	s := &CrackStep{
		cracker:     c,
		concurrency: 8,
		scorerName:  "language",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name implements Step.
func (s *CrackStep) Name() string {
	return CrackStepName
}

// Do implements Step. Results keep line order whatever order the lines
// finish in. The first malformed line cancels the remaining work.
func (s *CrackStep) Do(ctx context.Context, report *model.ScanReport) error {
	report.Encoding = s.cracker.Encoding()
	report.Scorer = s.scorerName

	results := make([]model.LineResult, len(report.Lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, line := range report.Lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := s.cracker.CrackLine(i+1, line)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s: %w", report.Source, err)
	}

	s.logger.Debug("lines cracked",
		"source", report.Source,
		"lines", len(results),
	)

	report.Results = results
	return nil
}

// RankStep picks the overall best line.
type RankStep struct{}

// NewRankStep creates a RankStep.
func NewRankStep() *RankStep {
	return &RankStep{}
}

// Name implements Step.
func (s *RankStep) Name() string {
	return RankStepName
}

// Do implements Step. A source without lines yields cracker.ErrNoCandidates.
func (s *RankStep) Do(_ context.Context, report *model.ScanReport) error {
	best, ok := model.BestLine(report.Results)
	if !ok {
		return fmt.Errorf("%s: %w", report.Source, cracker.ErrNoCandidates)
	}
	report.Best = &best
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Stdin is read for the "-" source. Pipelines built with the same Stdin
	// read it once between them.
	Stdin *source.Stdin

	// LineConcurrency is the number of lines cracked at once.
	LineConcurrency int

	// ScorerName is recorded in every report.
	ScorerName string
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineStdin sets the input used for the "-" source.
func WithPipelineStdin(in *source.Stdin) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Stdin = in
	}
}

// WithPipelineLineConcurrency sets the number of lines cracked at once.
func WithPipelineLineConcurrency(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.LineConcurrency = n
	}
}

// WithPipelineScorerName sets the scorer name recorded in reports.
func WithPipelineScorerName(name string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ScorerName = name
	}
}

// DefaultPipeline creates the read, crack and rank pipeline around c.
func DefaultPipeline(c *cracker.Cracker, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Stdin:           stdin,
		LineConcurrency: 8,
		ScorerName:      "language",
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewReadStep(WithStdinSource(cfg.Stdin)),
		NewCrackStep(c,
			WithLineConcurrency(cfg.LineConcurrency),
			WithScorerName(cfg.ScorerName),
			WithCrackLogger(p.logger),
		),
		NewRankStep(),
	)

	return p
}
