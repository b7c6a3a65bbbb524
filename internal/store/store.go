// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists collected publications and citation edges in a
// SQLite database so repeated runs accumulate instead of overwrite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citegraph/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "citegraph.db"
)

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the run database at dataDir/index/citegraph.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			id TEXT PRIMARY KEY,
			doi TEXT,
			title TEXT,
			sub_area TEXT,
			subfield TEXT,
			cited_by_count INTEGER,
			referenced_works TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_sub_area ON publications(sub_area)`,
		`CREATE TABLE IF NOT EXISTS edges (
			origin_doi TEXT NOT NULL,
			target_doi TEXT NOT NULL,
			origin_sub_area TEXT NOT NULL,
			target_sub_area TEXT NOT NULL,
			UNIQUE(origin_doi, target_doi, origin_sub_area, target_sub_area)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_origin ON edges(origin_doi)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SavePublications upserts publications and returns the number written.
func (s *Store) SavePublications(ctx context.Context, pubs []types.Publication) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (id, doi, title, sub_area, subfield, cited_by_count, referenced_works)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			doi=excluded.doi, title=excluded.title, sub_area=excluded.sub_area,
			subfield=excluded.subfield, cited_by_count=excluded.cited_by_count,
			referenced_works=excluded.referenced_works`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, pub := range pubs {
		_, err := stmt.ExecContext(ctx,
			pub.ID, pub.DOI, pub.Title, string(pub.SubArea), pub.Subfield,
			pub.CitedByCount, strings.Join(pub.ReferencedWorks, "|"),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting publication %s: %w", pub.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(pubs), nil
}

// SaveEdges inserts edges, ignoring tuples already present. It returns the
// number of new rows.
func (s *Store) SaveEdges(ctx context.Context, edges []types.CitationEdge) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO edges (origin_doi, target_doi, origin_sub_area, target_sub_area)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range edges {
		res, err := stmt.ExecContext(ctx,
			e.OriginDOI, e.TargetDOI, string(e.OriginSubArea), string(e.TargetSubArea),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting edge %s -> %s: %w", e.OriginDOI, e.TargetDOI, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("reading insert result: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Edges returns every stored edge.
func (s *Store) Edges(ctx context.Context) ([]types.CitationEdge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT origin_doi, target_doi, origin_sub_area, target_sub_area FROM edges`)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []types.CitationEdge
	for rows.Next() {
		var e types.CitationEdge
		var origin, target string
		if err := rows.Scan(&e.OriginDOI, &e.TargetDOI, &origin, &target); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		e.OriginSubArea = types.SubArea(origin)
		e.TargetSubArea = types.SubArea(target)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Summary holds run-database totals.
type Summary struct {
	Publications int
	Edges        int
	EdgesByArea  map[types.SubArea]int
}

// Summarize reports publication and edge counts, edges grouped by the origin
// sub-area.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	sum := Summary{EdgesByArea: make(map[types.SubArea]int)}

	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM publications`).Scan(&sum.Publications); err != nil {
		return Summary{}, fmt.Errorf("counting publications: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM edges`).Scan(&sum.Edges); err != nil {
		return Summary{}, fmt.Errorf("counting edges: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT origin_sub_area, count(*) FROM edges GROUP BY origin_sub_area`)
	if err != nil {
		return Summary{}, fmt.Errorf("grouping edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var area string
		var n int
		if err := rows.Scan(&area, &n); err != nil {
			return Summary{}, fmt.Errorf("scanning edge count: %w", err)
		}
		sum.EdgesByArea[types.SubArea(area)] = n
	}
	return sum, rows.Err()
}
