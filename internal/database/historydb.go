package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/xorscan/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "xorscan.db"

// timestampLayout is fixed width so that text ordering matches time ordering.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// HistoryDB provides SQLite-based storage for scan reports.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ReadOnlyOptions returns options for reading an existing history.
// Open fails when the database does not exist yet.
func ReadOnlyOptions() Options {
	return Options{}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a scan with --save first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scan_reports (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		source_digest TEXT,
		timestamp TEXT NOT NULL,
		report_json TEXT NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_source ON scan_reports(source);
	CREATE INDEX IF NOT EXISTS idx_reports_digest ON scan_reports(source_digest);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON scan_reports(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScanReport stores report and its summary.
// Saving a report with an ID that is already stored fails.
func (hdb *HistoryDB) SaveScanReport(ctx context.Context, report *model.ScanReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	summaryJSON, err := json.Marshal(model.NewSummary(report))
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	query := `
	INSERT INTO scan_reports (id, source, source_digest, timestamp, report_json, summary_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		report.ID,
		report.Source,
		report.SourceDigest,
		report.DateScanned.UTC().Format(timestampLayout),
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	return nil
}

// GetScanReportByID retrieves a scan report by its run ID.
// It returns nil without an error when no report has that ID.
func (hdb *HistoryDB) GetScanReportByID(ctx context.Context, id string) (*model.ScanReport, error) {
	query := `SELECT report_json FROM scan_reports WHERE id = ?`
	return hdb.queryReport(ctx, query, id)
}

// GetLatestScanReport retrieves the most recent scan report for a source.
// It returns nil without an error when the source was never saved.
func (hdb *HistoryDB) GetLatestScanReport(ctx context.Context, source string) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scan_reports
	WHERE source = ?
	ORDER BY timestamp DESC
	LIMIT 1
	`
	return hdb.queryReport(ctx, query, source)
}

func (hdb *HistoryDB) queryReport(ctx context.Context, query string, arg any) (*model.ScanReport, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, arg).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListSources returns every source with at least one saved scan.
func (hdb *HistoryDB) ListSources(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT source FROM scan_reports
	ORDER BY source
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// GetScanHistory returns the summaries of saved scans, newest first.
// An empty source lists every scan. limit <= 0 means no limit.
func (hdb *HistoryDB) GetScanHistory(ctx context.Context, source string, limit int) ([]*model.Summary, error) {
	query := `SELECT summary_json, timestamp FROM scan_reports`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY timestamp DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return hdb.querySummaries(ctx, query, args...)
}

// FindByDigest returns the summaries of saved scans whose input had the
// given digest, newest first. The same input scanned under different file
// names is found this way.
func (hdb *HistoryDB) FindByDigest(ctx context.Context, digest string) ([]*model.Summary, error) {
	query := `
	SELECT summary_json, timestamp FROM scan_reports
	WHERE source_digest = ?
	ORDER BY timestamp DESC
	`
	return hdb.querySummaries(ctx, query, digest)
}

func (hdb *HistoryDB) querySummaries(ctx context.Context, query string, args ...any) ([]*model.Summary, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var summaries []*model.Summary
	for rows.Next() {
		var summaryJSON, timestamp string
		if err := rows.Scan(&summaryJSON, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}

		var s model.Summary
		if err := json.Unmarshal([]byte(summaryJSON), &s); err != nil {
			continue // Skip malformed rows
		}
		if s.DateScanned.IsZero() {
			s.DateScanned = parseTimestamp(timestamp)
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",  // SQLite default datetime format
	"2006-01-02T15:04:05Z", // ISO 8601 with Z suffix
	time.RFC3339Nano,
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
