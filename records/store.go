package records

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"motioncam/pipeline"
	"motioncam/tracking"
)

// Store persists detection runs to SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the detection database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open detection db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			source TEXT,
			started_at INTEGER,
			finished_at INTEGER,
			frame_count INTEGER
		);
		CREATE TABLE IF NOT EXISTS detections (
			run_id TEXT,
			frame INTEGER,
			area INTEGER,
			x INTEGER,
			y INTEGER,
			width INTEGER,
			height INTEGER,
			speed REAL,
			direction TEXT,
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_detections_run ON detections(run_id, frame);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// BeginRun registers a new processing run and returns its ID.
func (s *Store) BeginRun(source string) (string, error) {
	runID := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, source, started_at) VALUES (?, ?, ?)`,
		runID, source, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return runID, nil
}

// RecordFrame persists the detection records for one frame of a run.
func (s *Store) RecordFrame(runID string, frame int, recs []pipeline.DetectionRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("record frame: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO detections (run_id, frame, area, x, y, width, height, speed, direction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("record frame: %w", err)
	}
	defer stmt.Close()

	for _, r := range recs {
		_, err := stmt.Exec(runID, frame, r.Area,
			r.Position.X, r.Position.Y, r.Position.Width, r.Position.Height,
			r.Speed, string(r.Direction))
		if err != nil {
			return fmt.Errorf("record frame: %w", err)
		}
	}
	return tx.Commit()
}

// FinishRun marks a run complete with its total frame count.
func (s *Store) FinishRun(runID string, frameCount int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, frame_count = ? WHERE run_id = ?`,
		time.Now().UnixNano(), frameCount, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRun returns all detections of a run in frame order.
func (s *Store) ListRun(runID string) ([]pipeline.DetectionRecord, error) {
	rows, err := s.db.Query(`
		SELECT area, x, y, width, height, speed, direction
		FROM detections WHERE run_id = ? ORDER BY frame`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run: %w", err)
	}
	defer rows.Close()

	var recs []pipeline.DetectionRecord
	for rows.Next() {
		var r pipeline.DetectionRecord
		var dir string
		if err := rows.Scan(&r.Area, &r.Position.X, &r.Position.Y,
			&r.Position.Width, &r.Position.Height, &r.Speed, &dir); err != nil {
			return nil, fmt.Errorf("list run: %w", err)
		}
		r.Direction = tracking.Direction(dir)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
