package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/JairAlexey/AnalisisDeMallas/internal/models"
)

// CurriculaStore persists universities, careers, and their curricula in a
// SQLite database. Safe for concurrent use.
type CurriculaStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Open opens (creating if necessary) the curricula database at dbPath and
// initializes its schema.
func Open(dbPath string) (*CurriculaStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &CurriculaStore{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *CurriculaStore) Close() error {
	return s.db.Close()
}

// ImportCareers stores the given careers, replacing any existing curriculum
// for the same (university, career) pair. The whole import is one
// transaction: either every career lands or none does.
func (s *CurriculaStore) ImportCareers(ctx context.Context, careers []models.Career) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range careers {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range careers {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO universities (name) VALUES (?)`, c.University); err != nil {
			return fmt.Errorf("failed to insert university %q: %w", c.University, err)
		}

		// Replace any previous version of this career.
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM careers WHERE university = ? AND name = ?`, c.University, c.Name); err != nil {
			return fmt.Errorf("failed to replace career %q: %w", c.Name, err)
		}

		careerID := uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO careers (id, university, name, created_at) VALUES (?, ?, ?, ?)`,
			careerID, c.University, c.Name, now); err != nil {
			return fmt.Errorf("failed to insert career %q: %w", c.Name, err)
		}

		for _, sem := range c.Semesters {
			for pos, subject := range sem.Subjects {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO subjects (career_id, semester, position, name) VALUES (?, ?, ?, ?)`,
					careerID, sem.Index, pos, subject); err != nil {
					return fmt.Errorf("failed to insert subject %q: %w", subject, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// ListUniversities returns all stored university names, sorted ascending.
func (s *CurriculaStore) ListUniversities(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM universities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan university: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListCareers returns all stored careers with their full curricula, ordered
// by university then career name. An empty university filter returns all.
func (s *CurriculaStore) ListCareers(ctx context.Context, university string) ([]models.Career, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, university, name FROM careers ORDER BY university, name`
	args := []any{}
	if university != "" {
		query = `SELECT id, university, name FROM careers WHERE university = ? ORDER BY university, name`
		args = append(args, university)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	defer rows.Close()

	type row struct {
		id     string
		career models.Career
	}
	var entries []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.career.University, &r.career.Name); err != nil {
			return nil, fmt.Errorf("failed to scan career: %w", err)
		}
		entries = append(entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	careers := make([]models.Career, 0, len(entries))
	for _, e := range entries {
		semesters, err := s.loadSemesters(ctx, e.id)
		if err != nil {
			return nil, fmt.Errorf("failed to load curriculum for %q: %w", e.career.Name, err)
		}
		e.career.Semesters = semesters
		careers = append(careers, e.career)
	}
	return careers, nil
}

// loadSemesters reads one career's subjects grouped into ordered semesters.
func (s *CurriculaStore) loadSemesters(ctx context.Context, careerID string) ([]models.Semester, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT semester, name FROM subjects WHERE career_id = ? ORDER BY semester, position`,
		careerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []models.Semester
	for rows.Next() {
		var index int
		var name string
		if err := rows.Scan(&index, &name); err != nil {
			return nil, err
		}
		if n := len(semesters); n == 0 || semesters[n-1].Index != index {
			semesters = append(semesters, models.Semester{Index: index})
		}
		last := &semesters[len(semesters)-1]
		last.Subjects = append(last.Subjects, name)
	}
	return semesters, rows.Err()
}

// Counts returns the number of stored universities, careers, and subject
// entries, for status output.
func (s *CurriculaStore) Counts(ctx context.Context) (universities, careers, subjects int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM universities`).Scan(&universities); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count universities: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM careers`).Scan(&careers); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count careers: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&subjects); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count subjects: %w", err)
	}
	return universities, careers, subjects, nil
}
