// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps finalized documents in a local SQLite database with
// full-text search over titles, parties, and content.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lexdraft/pkg/types"
)

// ErrNotFound is returned when no document has the requested reference.
var ErrNotFound = errors.New("document not found")

const defaultLimit = 20

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Record is one archived document.
type Record struct {
	Reference    string                  `json:"reference" yaml:"reference"`
	DocumentType types.DocumentType      `json:"document_type" yaml:"document_type"`
	Language     types.Language          `json:"language" yaml:"language"`
	Title        string                  `json:"title" yaml:"title"`
	Country      string                  `json:"country" yaml:"country"`
	PartyA       string                  `json:"party_a" yaml:"party_a"`
	PartyB       string                  `json:"party_b" yaml:"party_b"`
	Content      string                  `json:"content" yaml:"content"`
	Request      types.GenerationRequest `json:"request" yaml:"request"`
	CreatedAt    time.Time               `json:"created_at" yaml:"created_at"`
}

// Store manages the archive database.
type Store struct {
	db *sql.DB
	// fts is false when the SQLite build lacks FTS5; Search then falls back
	// to substring matching.
	fts bool
}

// Open opens or creates the archive database at path and its schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL UNIQUE,
			document_type TEXT NOT NULL,
			language TEXT NOT NULL,
			title TEXT,
			country TEXT,
			party_a TEXT,
			party_b TEXT,
			content TEXT NOT NULL,
			request TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(document_type)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	if _, err := s.db.Exec(`CREATE VIRTUAL TABLE documents_fts USING fts5(
		title, party_a, party_b, content, content=documents, content_rowid=rowid)`); err != nil {
		if strings.Contains(err.Error(), "no such module") {
			return nil
		}
		return fmt.Errorf("creating FTS table: %w", err)
	}
	triggers := []string{
		`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
			INSERT INTO documents_fts(rowid, title, party_a, party_b, content)
			VALUES (new.rowid, new.title, new.party_a, new.party_b, new.content);
		END`,
		`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
			INSERT INTO documents_fts(documents_fts, rowid, title, party_a, party_b, content)
			VALUES ('delete', old.rowid, old.title, old.party_a, old.party_b, old.content);
		END`,
		`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
			INSERT INTO documents_fts(documents_fts, rowid, title, party_a, party_b, content)
			VALUES ('delete', old.rowid, old.title, old.party_a, old.party_b, old.content);
			INSERT INTO documents_fts(rowid, title, party_a, party_b, content)
			VALUES (new.rowid, new.title, new.party_a, new.party_b, new.content);
		END`,
	}
	for _, stmt := range triggers {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.fts = true
	return nil
}

// Save stores rec, replacing any document with the same reference. Party
// names and country are taken from the request when not set.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.Reference == "" {
		return errors.New("archive record has no reference")
	}
	if rec.PartyA == "" {
		rec.PartyA = rec.Request.Parties[0].Name
	}
	if rec.PartyB == "" {
		rec.PartyB = rec.Request.Parties[1].Name
	}
	if rec.Country == "" {
		rec.Country = rec.Request.Jurisdiction.Country
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	reqJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (reference, document_type, language, title, country, party_a, party_b, content, request, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(reference) DO UPDATE SET
			document_type=excluded.document_type, language=excluded.language,
			title=excluded.title, country=excluded.country,
			party_a=excluded.party_a, party_b=excluded.party_b,
			content=excluded.content, request=excluded.request,
			created_at=excluded.created_at`,
		rec.Reference, string(rec.DocumentType), string(rec.Language), rec.Title, rec.Country,
		rec.PartyA, rec.PartyB, rec.Content, string(reqJSON),
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", rec.Reference, err)
	}
	return tx.Commit()
}

const selectColumns = `d.reference, d.document_type, d.language, d.title, d.country,
	d.party_a, d.party_b, d.content, d.request, d.created_at`

// Get returns the document with the given reference.
func (s *Store) Get(ctx context.Context, reference string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM documents d WHERE d.reference = ?`, reference)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, reference)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, reference string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE reference = ?`, reference)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", reference, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, reference)
	}
	return nil
}

// ListOptions filters List. Zero values match everything.
type ListOptions struct {
	DocumentType types.DocumentType
	Country      string
	Limit        int
}

// List returns documents newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + selectColumns + ` FROM documents d WHERE 1=1`)
	if opts.DocumentType != "" {
		qb.WriteString(` AND d.document_type = ?`)
		args = append(args, string(opts.DocumentType))
	}
	if opts.Country != "" {
		qb.WriteString(` AND d.country = ?`)
		args = append(args, strings.ToUpper(opts.Country))
	}
	qb.WriteString(` ORDER BY d.created_at DESC, d.rowid DESC LIMIT ?`)
	args = append(args, limitOrDefault(opts.Limit))
	return s.query(ctx, qb.String(), args...)
}

// Search returns documents matching query, best match first. The query
// uses FTS5 syntax when available.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if !s.fts {
		like := "%" + query + "%"
		return s.query(ctx,
			`SELECT `+selectColumns+` FROM documents d
			 WHERE d.title LIKE ? OR d.party_a LIKE ? OR d.party_b LIKE ? OR d.content LIKE ?
			 ORDER BY d.created_at DESC LIMIT ?`,
			like, like, like, like, limitOrDefault(limit))
	}
	return s.query(ctx,
		`SELECT `+selectColumns+` FROM documents_fts
		 JOIN documents d ON d.rowid = documents_fts.rowid
		 WHERE documents_fts MATCH ?
		 ORDER BY documents_fts.rank LIMIT ?`,
		query, limitOrDefault(limit))
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archive rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec                    Record
		docType, lang          string
		title, country, pa, pb sql.NullString
		reqJSON                sql.NullString
		created                string
	)
	err := sc.Scan(&rec.Reference, &docType, &lang, &title, &country, &pa, &pb, &rec.Content, &reqJSON, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning archive row: %w", err)
	}
	rec.DocumentType = types.DocumentType(docType)
	rec.Language = types.Language(lang)
	rec.Title, rec.Country, rec.PartyA, rec.PartyB = title.String, country.String, pa.String, pb.String
	if reqJSON.Valid && reqJSON.String != "" {
		if err := json.Unmarshal([]byte(reqJSON.String), &rec.Request); err != nil {
			return nil, fmt.Errorf("decoding stored request for %s: %w", rec.Reference, err)
		}
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("parsing created_at for %s: %w", rec.Reference, err)
	}
	return &rec, nil
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	return n
}
