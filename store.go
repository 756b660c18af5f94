package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Privacy-conscious visitor record
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ParticleSessionRecord is written once a particle stream has ended.
type ParticleSessionRecord struct {
	ID        string    `json:"id"`
	Count     int       `json:"count"`
	Color     string    `json:"color"`
	Size      float64   `json:"size"`
	RotateX   float64   `json:"rotate_x"`
	RotateY   float64   `json:"rotate_y"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Frames    uint64    `json:"frames"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

func (r ParticleSessionRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalVisitors    int64                   `json:"total_visitors"`
	UniqueVisitors   int64                   `json:"unique_visitors"`
	VisitorsToday    int64                   `json:"visitors_today"`
	VisitorsThisWeek int64                   `json:"visitors_this_week"`
	ParticleSessions int64                   `json:"particle_sessions"`
	FramesRendered   int64                   `json:"frames_rendered"`
	ActiveStreams    int                     `json:"active_streams"`
	ContactMessages  int64                   `json:"contact_messages"`
	RecentVisitors   []VisitorMetric         `json:"recent_visitors"`
	RecentSessions   []ParticleSessionRecord `json:"recent_sessions"`
}

// Store wraps the sqlite database. Timestamps are stored as unix seconds.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
		user_agent TEXT,
		path TEXT,
		at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS visitors_at ON visitors(at)`,
	`CREATE TABLE IF NOT EXISTS particle_sessions (
		id TEXT PRIMARY KEY,
		count INTEGER NOT NULL,
		color TEXT NOT NULL,
		size REAL NOT NULL,
		rotate_x REAL NOT NULL,
		rotate_y REAL NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		frames INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		delivered INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
}

func openStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// one writer; visitor tracking runs in background goroutines
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, at)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.Unix())
	return err
}

// CleanupVisitors deletes visitor rows recorded before cutoff.
func (s *Store) CleanupVisitors(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visitors WHERE at < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) RecordParticleSession(r ParticleSessionRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO particle_sessions
			(id, count, color, size, rotate_x, rotate_y, width, height, frames, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Count, r.Color, r.Size, r.RotateX, r.RotateY, r.Width, r.Height, int64(r.Frames),
		r.StartedAt.Unix(), r.EndedAt.Unix())
	return err
}

func (s *Store) SaveContactMessage(m ContactMessage) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO contact_messages (name, email, message, delivered, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, m.Email, m.Message, m.Delivered, m.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) MarkContactDelivered(id int64) error {
	_, err := s.db.Exec(`UPDATE contact_messages SET delivered = 1 WHERE id = ?`, id)
	return err
}

// Stats gathers the dashboard counters; "today" starts at local midnight of now.
func (s *Store) Stats(now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counters := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{"SELECT COUNT(*) FROM visitors", nil, &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil, &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM visitors WHERE at >= ?", []any{midnight.Unix()}, &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE at >= ?", []any{now.AddDate(0, 0, -7).Unix()}, &stats.VisitorsThisWeek},
		{"SELECT COUNT(*) FROM particle_sessions", nil, &stats.ParticleSessions},
		{"SELECT COALESCE(SUM(frames), 0) FROM particle_sessions", nil, &stats.FramesRendered},
		{"SELECT COUNT(*) FROM contact_messages", nil, &stats.ContactMessages},
	}
	for _, c := range counters {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("%s: %w", c.query, err)
		}
	}

	var err error
	if stats.RecentVisitors, err = s.RecentVisitors(50); err != nil {
		return nil, err
	}
	if stats.RecentSessions, err = s.RecentParticleSessions(10); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) RecentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), at
		FROM visitors
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, err
		}
		v.Timestamp = time.Unix(at, 0)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *Store) RecentParticleSessions(limit int) ([]ParticleSessionRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, count, color, size, rotate_x, rotate_y, width, height, frames, started_at, ended_at
		FROM particle_sessions
		ORDER BY ended_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ParticleSessionRecord
	for rows.Next() {
		var r ParticleSessionRecord
		var frames, started, ended int64
		if err := rows.Scan(&r.ID, &r.Count, &r.Color, &r.Size, &r.RotateX, &r.RotateY,
			&r.Width, &r.Height, &frames, &started, &ended); err != nil {
			return nil, err
		}
		r.Frames = uint64(frames)
		r.StartedAt, r.EndedAt = time.Unix(started, 0), time.Unix(ended, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) RecentContactMessages(limit int) ([]ContactMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, message, delivered, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactMessage
	for rows.Next() {
		var m ContactMessage
		var created int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Delivered, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(created, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}
