package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/hdrmap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hdrmap.Emitter = (*Emitter)(nil)

// Emitter stores crawl results: one row per run, per page and per
// (header, identifier) pair.
type Emitter struct {
	db *DB
}

// NewEmitter creates a new Emitter.
func NewEmitter(db *DB) *Emitter {
	return &Emitter{db: db}
}

// Emit stores the result in a single transaction. A result without RunID is
// given a fresh one.
func (e *Emitter) Emit(ctx context.Context, result *hdrmap.Result) error {
	if result.RunID == "" {
		result.RunID = uuid.NewString()
	}

	tx, err := e.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, index_url, started_at, finished_at)
		VALUES (?, ?, ?, ?)
	`, result.RunID, result.IndexURL,
		result.StartedAt.UTC().Format(time.RFC3339),
		result.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if err := insertPages(ctx, tx, result.RunID, result.Pages); err != nil {
		return err
	}

	if err := insertSymbols(ctx, tx, result.RunID, result.Headers); err != nil {
		return err
	}

	return tx.Commit()
}

func insertPages(ctx context.Context, tx *sql.Tx, runID string, pages []*hdrmap.PageRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (run_id, url, status, header, reconciled_from, index_identifiers, page_identifiers, content_hash, bytes, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, runID, p.URL, string(p.Status), p.Header, p.ReconciledFrom,
			strings.Join(p.IndexIdentifiers, " "), strings.Join(p.PageIdentifiers, " "),
			p.ContentHash, p.Bytes, p.Error); err != nil {
			return err
		}
	}
	return nil
}

func insertSymbols(ctx context.Context, tx *sql.Tx, runID string, headers hdrmap.HeaderMap) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO symbols (run_id, header, identifier) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, header := range headers.Headers() {
		for _, id := range headers[header].Sorted() {
			if _, err := stmt.ExecContext(ctx, runID, header, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindHeaderMap loads the header map stored for a run.
func (e *Emitter) FindHeaderMap(ctx context.Context, runID string) (hdrmap.HeaderMap, error) {
	var exists int
	err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, hdrmap.Errorf(hdrmap.ENOTFOUND, "run %q not found", runID)
	}

	rows, err := e.db.QueryContext(ctx, `
		SELECT header, identifier FROM symbols WHERE run_id = ? ORDER BY header, identifier
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	headers := make(hdrmap.HeaderMap)
	for rows.Next() {
		var header, id string
		if err := rows.Scan(&header, &id); err != nil {
			return nil, err
		}
		headers.Add(header, id)
	}
	return headers, rows.Err()
}

// FindPages loads the page records stored for a run, ordered by URL.
func (e *Emitter) FindPages(ctx context.Context, runID string) ([]*hdrmap.PageRecord, error) {
	rows, err := e.db.QueryContext(ctx, `
		SELECT url, status, header, reconciled_from, index_identifiers, page_identifiers, content_hash, bytes, error
		FROM pages WHERE run_id = ? ORDER BY url
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*hdrmap.PageRecord
	for rows.Next() {
		var p hdrmap.PageRecord
		var status, indexIDs, pageIDs string
		if err := rows.Scan(&p.URL, &status, &p.Header, &p.ReconciledFrom, &indexIDs, &pageIDs,
			&p.ContentHash, &p.Bytes, &p.Error); err != nil {
			return nil, err
		}
		p.Status = hdrmap.PageStatus(status)
		p.IndexIdentifiers = strings.Fields(indexIDs)
		p.PageIdentifiers = strings.Fields(pageIDs)
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}

// FindRuns lists stored runs, newest first. Headers and pages are not loaded.
// A limit or offset of zero is ignored.
func (e *Emitter) FindRuns(ctx context.Context, limit, offset int) ([]*hdrmap.Result, error) {
	var query strings.Builder
	query.WriteString(`SELECT id, index_url, started_at, finished_at FROM runs ORDER BY started_at DESC, id`)
	var args []any
	appendPagination(&query, &args, limit, offset)

	rows, err := e.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*hdrmap.Result
	for rows.Next() {
		var r hdrmap.Result
		var started, finished string
		if err := rows.Scan(&r.RunID, &r.IndexURL, &started, &finished); err != nil {
			return nil, err
		}
		if r.StartedAt, err = parseRFC3339(started, "started_at"); err != nil {
			return nil, err
		}
		if r.FinishedAt, err = parseRFC3339(finished, "finished_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}
