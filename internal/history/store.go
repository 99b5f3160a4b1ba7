// Package history persists conversion outcomes in DuckDB.
package history

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/marcboeker/go-duckdb"
	"github.com/tmlemon/opi2edl/internal/models"
)

const skippedSep = "\n"

// Store records every converted file. An empty path keeps the history in
// memory for the life of the process.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serialises appenders
}

// SkippedCount is how often a widget type was left out of a conversion.
type SkippedCount struct {
	WidgetType string `json:"widgetType"`
	Files      int    `json:"files"`
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	connector, err := duckdb.NewConnector(path, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			job_id       VARCHAR NOT NULL,
			input        VARCHAR NOT NULL,
			output       VARCHAR,
			status       VARCHAR NOT NULL,
			widgets      INTEGER NOT NULL,
			rendered     INTEGER NOT NULL,
			skipped      VARCHAR NOT NULL,
			diagnostics  INTEGER NOT NULL,
			converted_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one row per report. Pending reports are not recorded.
func (s *Store) Record(ctx context.Context, jobID string, reports []models.ConversionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	now := time.Now().UTC()
	return conn.Raw(func(driverConn any) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("failed to cast to duckdb.Conn")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "conversions")
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		defer appender.Close()

		for i, r := range reports {
			if r.Status == models.ConversionPending {
				continue
			}
			err := appender.AppendRow(
				jobID,
				r.Input,
				r.Output,
				string(r.Status),
				int32(r.Widgets),
				int32(r.Rendered),
				strings.Join(r.Skipped, skippedSep),
				int32(len(r.Diagnostics)),
				now,
			)
			if err != nil {
				return fmt.Errorf("failed to append row %d: %w", i, err)
			}
		}
		return appender.Flush()
	})
}

// Recent returns the newest records first. A non-positive limit returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	query := `
		SELECT job_id, input, output, status, widgets, rendered, skipped, diagnostics, converted_at
		FROM conversions
		ORDER BY converted_at DESC, input`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := make([]models.HistoryRecord, 0, max(limit, 0))
	for rows.Next() {
		var (
			rec     models.HistoryRecord
			output  sql.NullString
			status  string
			skipped string
		)
		if err := rows.Scan(&rec.JobID, &rec.Input, &output, &status, &rec.Widgets,
			&rec.Rendered, &skipped, &rec.Diagnostics, &rec.ConvertedAt); err != nil {
			return nil, err
		}
		rec.Output = output.String
		rec.Status = models.ConversionStatus(status)
		if skipped != "" {
			rec.Skipped = strings.Split(skipped, skippedSep)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SkippedTypes ranks unsupported widget types by the number of converted
// files that contained them.
func (s *Store) SkippedTypes(ctx context.Context) ([]SkippedCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT widget_type, COUNT(*) AS files
		FROM (
			SELECT UNNEST(string_split(skipped, ?)) AS widget_type
			FROM conversions
			WHERE skipped <> ''
		)
		GROUP BY widget_type
		ORDER BY files DESC, widget_type`, skippedSep)
	if err != nil {
		return nil, fmt.Errorf("query skipped types: %w", err)
	}
	defer rows.Close()

	var counts []SkippedCount
	for rows.Next() {
		var c SkippedCount
		if err := rows.Scan(&c.WidgetType, &c.Files); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
