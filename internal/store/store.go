// Package store persists resume snapshots and the global profile. Metadata
// and parse results live in SQLite; the original uploaded document is kept
// on disk next to the database so it can be re-extracted or served back.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one parsed upload.
type Snapshot struct {
	ID            string   `json:"id"`
	Filename      string   `json:"filename"`
	UploadedAt    string   `json:"uploaded_at"`
	ParserVersion string   `json:"parser_version"`
	Experience    []string `json:"experience"`
	Projects      []string `json:"projects"`
	DocPath       string   `json:"-"`
}

// SnapshotSummary is the listing shape: parse results elided, counts kept.
type SnapshotSummary struct {
	ID              string `json:"id"`
	Filename        string `json:"filename"`
	UploadedAt      string `json:"uploaded_at"`
	ParserVersion   string `json:"parser_version"`
	ExperienceCount int    `json:"experience_count"`
	ProjectCount    int    `json:"project_count"`
	Current         bool   `json:"current"`
}

// Profile is the global profile record, independent of any snapshot.
type Profile struct {
	Name     string   `json:"name"`
	Headline string   `json:"headline"`
	Summary  string   `json:"summary"`
	Email    string   `json:"email"`
	Links    []string `json:"links"`
	Skills   []string `json:"skills"`
}

// Store wraps the SQLite database and the snapshot blob directory.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open opens (or creates) the store rooted at dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "snapshots"), 0750); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", dataDir, err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dataDir, "resumes.db"))
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db, dataDir: dataDir}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id             TEXT PRIMARY KEY,
		filename       TEXT NOT NULL,
		uploaded_at    TEXT NOT NULL,
		parser_version TEXT NOT NULL,
		experience     TEXT NOT NULL,
		projects       TEXT NOT NULL,
		doc_path       TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS current (
		id          INTEGER PRIMARY KEY CHECK (id = 1),
		snapshot_id TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS profile (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a snapshot, writes the original document next to the
// database, and makes the new snapshot current.
func (s *Store) Save(ctx context.Context, snap *Snapshot, document []byte) error {
	dir := filepath.Join(s.dataDir, "snapshots", snap.ID)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("store: mkdir snapshot dir: %w", err)
	}
	snap.DocPath = filepath.Join(dir, "document"+filepath.Ext(snap.Filename))
	if err := os.WriteFile(snap.DocPath, document, 0640); err != nil {
		return fmt.Errorf("store: write document: %w", err)
	}
	if snap.UploadedAt == "" {
		snap.UploadedAt = time.Now().UTC().Format(time.RFC3339)
	}

	exp, err := json.Marshal(emptyAsList(snap.Experience))
	if err != nil {
		return err
	}
	proj, err := json.Marshal(emptyAsList(snap.Projects))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, filename, uploaded_at, parser_version, experience, projects, doc_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Filename, snap.UploadedAt, snap.ParserVersion, string(exp), string(proj), snap.DocPath)
	if err != nil {
		return fmt.Errorf("store: insert snapshot: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO current (id, snapshot_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET snapshot_id = excluded.snapshot_id`,
		snap.ID)
	if err != nil {
		return fmt.Errorf("store: set current: %w", err)
	}
	return tx.Commit()
}

// List returns snapshot summaries, newest first.
func (s *Store) List(ctx context.Context) ([]SnapshotSummary, error) {
	currentID, err := s.CurrentID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, uploaded_at, parser_version, experience, projects
		 FROM snapshots ORDER BY uploaded_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	defer rows.Close()

	summaries := make([]SnapshotSummary, 0, 8)
	for rows.Next() {
		var sum SnapshotSummary
		var exp, proj string
		if err := rows.Scan(&sum.ID, &sum.Filename, &sum.UploadedAt, &sum.ParserVersion, &exp, &proj); err != nil {
			return nil, err
		}
		sum.ExperienceCount = jsonListLen(exp)
		sum.ProjectCount = jsonListLen(proj)
		sum.Current = sum.ID == currentID
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get returns a full snapshot by id.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, uploaded_at, parser_version, experience, projects, doc_path
		 FROM snapshots WHERE id = ?`, id)

	var snap Snapshot
	var exp, proj string
	err := row.Scan(&snap.ID, &snap.Filename, &snap.UploadedAt, &snap.ParserVersion, &exp, &proj, &snap.DocPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exp), &snap.Experience); err != nil {
		return nil, fmt.Errorf("store: decode experience: %w", err)
	}
	if err := json.Unmarshal([]byte(proj), &snap.Projects); err != nil {
		return nil, fmt.Errorf("store: decode projects: %w", err)
	}
	return &snap, nil
}

// SetCurrent marks an existing snapshot as the active one.
func (s *Store) SetCurrent(ctx context.Context, id string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM snapshots WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO current (id, snapshot_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET snapshot_id = excluded.snapshot_id`, id)
	return err
}

// CurrentID returns the active snapshot id, or "" when nothing is stored.
func (s *Store) CurrentID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot_id FROM current WHERE id = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// UpdateParse replaces a snapshot's parse results after re-segmentation.
func (s *Store) UpdateParse(ctx context.Context, id, parserVersion string, experience, projects []string) error {
	exp, err := json.Marshal(emptyAsList(experience))
	if err != nil {
		return err
	}
	proj, err := json.Marshal(emptyAsList(projects))
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE snapshots SET parser_version = ?, experience = ?, projects = ? WHERE id = ?`,
		parserVersion, string(exp), string(proj), id)
	if err != nil {
		return fmt.Errorf("store: update parse: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DocumentPath returns the on-disk path of the stored original document.
func (s *Store) DocumentPath(ctx context.Context, id string) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx, `SELECT doc_path FROM snapshots WHERE id = ?`, id).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return path, err
}

// Profile returns the global profile, or an empty one if never saved.
func (s *Store) Profile(ctx context.Context) (*Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return &Profile{Links: []string{}, Skills: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("store: decode profile: %w", err)
	}
	if p.Links == nil {
		p.Links = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

// SaveProfile replaces the global profile.
func (s *Store) SaveProfile(ctx context.Context, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profile (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

// ProfileData is the merged payload served to the portfolio frontend.
type ProfileData struct {
	Profile    *Profile          `json:"profile"`
	ResumeID   string            `json:"resume_id"`
	Experience []string          `json:"experience"`
	Projects   []string          `json:"projects"`
	Resumes    []SnapshotSummary `json:"resumes"`
}

// LoadProfileData merges the global profile with the chosen snapshot's parse
// results. An empty resumeID selects the current snapshot; if nothing is
// stored yet the lists come back empty rather than failing.
func (s *Store) LoadProfileData(ctx context.Context, resumeID string) (*ProfileData, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	data := &ProfileData{
		Profile:    profile,
		Experience: []string{},
		Projects:   []string{},
		Resumes:    summaries,
	}

	id := resumeID
	if id == "" {
		if id, err = s.CurrentID(ctx); err != nil {
			return nil, err
		}
	}
	if id == "" {
		return data, nil
	}

	snap, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data.ResumeID = snap.ID
	data.Experience = snap.Experience
	data.Projects = snap.Projects
	return data, nil
}

func emptyAsList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func jsonListLen(raw string) int {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return 0
	}
	return len(items)
}
