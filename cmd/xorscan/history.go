package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nao1215/xorscan/internal/config"
	"github.com/nao1215/xorscan/internal/database"
	"github.com/nao1215/xorscan/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of scans listed when --limit is not set.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved scan reports",
		Long: `History shows scans saved with "xorscan detect --save".

Without flags, the most recent scans of all sources are listed.

Examples:
  # List recent scans
  xorscan history

  # List scans of one source
  xorscan history --source 4.txt

  # List scans of the same input under any file name, by SHA3-256 digest
  xorscan history --digest 1f0c...

  # List every scanned source
  xorscan history --list-sources

  # Show a full saved report
  xorscan history --id 0f6f3d1e-8f8b-4f0e-9a52-3f1f3c1d2b7a`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("source", "s", "", "Show only scans of this source")
	cmd.Flags().StringP("digest", "d", "", "Show only scans whose input had this SHA3-256 digest")
	cmd.Flags().BoolP("list-sources", "L", false, "List scanned sources")
	cmd.Flags().StringP("id", "i", "", "Show the full report of the scan with this ID")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of scans to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false, "Output in Markdown format")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	src, err := flags.GetString("source")
	if err != nil {
		return err
	}
	digest, err := flags.GetString("digest")
	if err != nil {
		return err
	}
	listSources, err := flags.GetBool("list-sources")
	if err != nil {
		return err
	}
	id, err := flags.GetString("id")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}

	db, err := database.Open(dbDir, database.ReadOnlyOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case listSources:
		sources, err := db.ListSources(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			if sources == nil {
				sources = []string{}
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(sources)
		}
		for _, s := range sources {
			fmt.Fprintln(out, s)
		}
		return nil

	case id != "":
		r, err := db.GetScanReportByID(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("scan %s not found", id)
		}
		_, err = historyWriter(cmd, asJSON, asMarkdown).Write(r)
		return err

	case digest != "":
		summaries, err := db.FindByDigest(ctx, strings.ToLower(digest))
		if err != nil {
			return err
		}
		_, err = historyWriter(cmd, asJSON, asMarkdown).WriteHistory(summaries)
		return err

	default:
		summaries, err := db.GetScanHistory(ctx, src, limit)
		if err != nil {
			return err
		}
		_, err = historyWriter(cmd, asJSON, asMarkdown).WriteHistory(summaries)
		return err
	}
}

// historyWriter returns the report writer for the history output format.
func historyWriter(cmd *cobra.Command, asJSON, asMarkdown bool) report.Writer {
	cfg := &config.Config{
		JSONReport:     asJSON,
		MarkdownReport: asMarkdown,
		TopN:           config.DefaultTopN,
		Verbose:        getVerboseFlag(cmd),
	}
	return newReportWriter(cfg, cmd.OutOrStdout())
}

