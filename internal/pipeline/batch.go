package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/xorscan/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor scans multiple sources concurrently.
// Each source gets a fresh pipeline from the factory.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each scan.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans every source and returns the reports in source order.
// A failed scan does not stop the others; its error is kept in its report.
// The returned error is non-nil only when ctx is cancelled, and reports of
// sources never started are nil in that case.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string) ([]*model.ScanReport, error) {
	bp.logger.Info("starting batch processing",
		"total_sources", len(sources),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	results := make([]*model.ScanReport, len(sources))

	err := bp.run(ctx, sources, func(report *model.ScanReport, index int) {
		results[index] = report
	})

	bp.logger.Info("batch processing complete",
		"total_sources", len(sources),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessBatchWithCallback scans every source and calls callback as each
// scan completes. The callback runs on the scanning goroutine, so it must
// be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	sources []string,
	callback func(report *model.ScanReport, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_sources", len(sources),
		"concurrency", bp.concurrency,
	)
	return bp.run(ctx, sources, callback)
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	sources []string,
	done func(report *model.ScanReport, index int),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bp.logger.Info("scanning source",
				"source", src,
				"index", i+1,
				"total", len(sources),
			)

			report := model.NewScanReport(src)
			if err := bp.pipelineFactory().Execute(gctx, report); err != nil {
				bp.logger.Warn("scan failed",
					"source", src,
					"error", err,
				)
			} else {
				bp.logger.Info("scan completed",
					"source", src,
					"lines", report.LineCount,
				)
			}

			done(report, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
