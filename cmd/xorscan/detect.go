package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/nao1215/xorscan/internal/config"
	"github.com/nao1215/xorscan/internal/cracker"
	"github.com/nao1215/xorscan/internal/database"
	xlog "github.com/nao1215/xorscan/internal/log"
	"github.com/nao1215/xorscan/internal/model"
	"github.com/nao1215/xorscan/internal/pipeline"
	"github.com/nao1215/xorscan/internal/report"
	"github.com/nao1215/xorscan/internal/score"
	"github.com/nao1215/xorscan/internal/source"
	"github.com/nao1215/xorscan/internal/textenc"
	"github.com/spf13/cobra"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [file...]",
		Short: "Find the single-byte XOR encrypted line in files",
		Long: `Detect reads files of hex ciphertexts, one per line, cracks every line,
and reports the line whose best candidate looks most like English.

Standard input is read when no file is given or a file is "-".

Examples:
  # Find the encrypted line in a file
  xorscan detect 4.txt

  # Print only the recovered plaintext
  xorscan detect --plain 4.txt

  # Scan several files and save the results to history
  xorscan detect --save a.txt b.txt c.txt

  # Output a Markdown report with the ten best lines
  xorscan detect --markdown --top 10 -o report.md 4.txt

  # Use a named profile from the configuration file
  xorscan detect --profile english 4.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runDetectCmd,
	}

	// Cracking flags
	cmd.Flags().StringP("encoding", "e", config.DefaultEncoding,
		"Text encoding used to read candidates (e.g. utf-8, windows-1252)")
	cmd.Flags().StringP("sample", "s", "",
		"Score by symbol frequency in this sample text instead of the letter heuristic")

	// Concurrency flags
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of files scanned at once")
	cmd.Flags().IntP("line-batch", "l", config.DefaultLineConcurrency,
		"Number of lines cracked at once per file")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .xorscan in current or home directory)")
	cmd.Flags().StringP("profile", "p", "",
		"Named profile from the configuration file")

	// Report flags
	cmd.Flags().IntP("top", "n", config.DefaultTopN,
		"Number of ranked lines in the report (0 shows all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --plain)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --plain)")
	cmd.Flags().Bool("plain", false,
		"Print only the recovered plaintext of each file")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("save", false,
		"Save scan reports to the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runDetectCmd executes the detect command.
func runDetectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runDetect(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger that masks recovered plaintext
// and keys.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return xlog.NewSecureLogger(w, verbose)
}

// buildConfig creates a Config from the configuration file and cobra flags.
// Flags set on the command line override the selected profile, which
// overrides the defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.Profile, err = cmd.Flags().GetString("profile")
	if err != nil {
		return nil, err
	}

	// An explicit config path or profile must resolve; otherwise a missing
	// file just means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		profile, err := file.GetProfile(cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
		cfg.ApplyProfile(profile)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	case cfg.Profile != "":
		return nil, fmt.Errorf("configuration error: %w: %q (no configuration file found)",
			config.ErrUnknownProfile, cfg.Profile)
	}

	flags := cmd.Flags()
	if flags.Changed("encoding") {
		if cfg.Encoding, err = flags.GetString("encoding"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("sample") {
		if cfg.SamplePath, err = flags.GetString("sample"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("batch") {
		if cfg.Concurrency, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("line-batch") {
		if cfg.LineConcurrency, err = flags.GetInt("line-batch"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("top") {
		if cfg.TopN, err = flags.GetInt("top"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.PlainOutput, err = flags.GetBool("plain"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}

	cfg.Sources = args
	if len(cfg.Sources) == 0 {
		cfg.Sources = []string{source.StdinName}
	}

	return cfg, nil
}

// newCracker creates a Cracker for the encoding label and optional
// frequency sample, and returns the name of the scorer it uses.
func newCracker(encoding, samplePath string, logger *slog.Logger) (*cracker.Cracker, string, error) {
	decoder, err := textenc.Lookup(encoding)
	if err != nil {
		return nil, "", err
	}

	scorer, scorerName := score.Func(score.Language), "language"
	if samplePath != "" {
		f, err := os.Open(samplePath) //nolint:gosec // User-provided sample path is intentional
		if err != nil {
			return nil, "", fmt.Errorf("failed to open sample: %w", err)
		}
		defer f.Close()

		scorer, err = score.Frequency(f)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", samplePath, err)
		}
		scorerName = "frequency"
	}

	return cracker.New(
		cracker.WithDecoder(decoder),
		cracker.WithScorer(scorer),
		cracker.WithLogger(logger),
	), scorerName, nil
}

// runDetect scans every source and writes the reports in source order.
// It returns the errors of all failed scans joined together.
func runDetect(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	c, scorerName, err := newCracker(cfg.Encoding, cfg.SamplePath, logger)
	if err != nil {
		return err
	}

	logger.Info("starting detection",
		"sources", cfg.Sources,
		"encoding", c.Encoding(),
		"scorer", scorerName,
		"concurrency", cfg.Concurrency,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
	}

	// Every "-" source scans the same standard input, read once.
	stdin := source.NewStdin(cmd.InOrStdin())
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.DefaultPipeline(c,
				[]pipeline.Option{pipeline.WithLogger(logger)},
				pipeline.WithPipelineStdin(stdin),
				pipeline.WithPipelineLineConcurrency(cfg.LineConcurrency),
				pipeline.WithPipelineScorerName(scorerName),
			)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	reports := make([]*model.ScanReport, len(cfg.Sources))
	var mu sync.Mutex
	batchErr := bp.ProcessBatchWithCallback(ctx, cfg.Sources, func(r *model.ScanReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		reports[index] = r
		if err := saveScanReport(ctx, db, r, logger); err != nil {
			logger.Error("failed to save scan report", "source", r.Source, "error", err)
		}
	})

	if err := outputReports(cmd, cfg, reports); err != nil {
		return err
	}

	errs := []error{batchErr}
	for _, r := range reports {
		if r != nil && r.Error != nil {
			errs = append(errs, r.Error)
		}
	}
	return errors.Join(errs...)
}

// outputReports writes every finished report in the requested format.
func outputReports(cmd *cobra.Command, cfg *config.Config, reports []*model.ScanReport) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain recovered plaintext, so only the owner may read them.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(cfg, output)
	for _, r := range reports {
		if r == nil {
			continue
		}
		if cfg.PlainOutput {
			if _, err := io.WriteString(output, r.Plaintext()); err != nil {
				return err
			}
			continue
		}
		if _, err := writer.Write(r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// newReportWriter returns the writer for the configured report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output, report.WithMarkdownTopN(cfg.TopN))
	default:
		return report.NewSimpleWriter(output,
			report.WithTopN(cfg.TopN),
			report.WithVerbose(cfg.Verbose),
		)
	}
}

// saveScanReport saves the scan report to the database if enabled.
// If db is nil, this function is a no-op.
func saveScanReport(ctx context.Context, db *database.HistoryDB, r *model.ScanReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// A cancelled scan still gets saved; ctx may already be done.
	if err := db.SaveScanReport(context.WithoutCancel(ctx), r); err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	logger.Info("scan report saved to database", "source", r.Source, "id", r.ID)
	return nil
}
