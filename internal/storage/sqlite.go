// Package storage provides the SQLite session journal.
// Every effect dispatched during a session is recorded so a run can be
// summarized afterwards. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/starcatch/internal/core"
)

// MemoryDSN keeps the journal in memory; it is discarded on Close.
const MemoryDSN = ":memory:"

// ErrUnknownSession is returned for a session ID that was never started.
var ErrUnknownSession = errors.New("storage: unknown session")

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db *sql.DB
}

// SessionInfo describes a session when it starts.
type SessionInfo struct {
	GameID  string
	Seed    int64
	Width   float64
	Height  float64
	Stars   int
	Enemies int
}

// Session is a journaled session.
type Session struct {
	ID string
	SessionInfo
	StartedAt time.Time
	EndedTick uint64
	EndReason string // "quit", "player_removed", "restart", "ticks"
	Ended     bool
}

// Summary aggregates the effects of one session.
type Summary struct {
	Session  Session
	Effects  int
	Sounds   map[string]int // by category
	Despawns map[string]int // by entity kind
	LastTick uint64
}

// Open creates or opens a journal. An empty path or MemoryDSN keeps the
// journal in memory; otherwise parent directories are created as needed.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = MemoryDSN
	}

	if dbPath != MemoryDSN {
		// Expand ~ to home directory
		if dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width REAL NOT NULL,
			height REAL NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			enemies INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_tick INTEGER,
			end_reason TEXT
		);

		CREATE TABLE IF NOT EXISTS effects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			variant INTEGER NOT NULL DEFAULT 0,
			sound TEXT NOT NULL DEFAULT '',
			entity INTEGER NOT NULL DEFAULT 0,
			entity_kind TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_effects_session ON effects(session_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records a new session and returns its ID.
func (s *Store) StartSession(info SessionInfo) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, game_id, seed, width, height, stars, enemies)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, info.GameID, info.Seed, info.Width, info.Height, info.Stars, info.Enemies,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	return id, nil
}

// RecordEffects appends the effects of one tick in a single transaction.
func (s *Store) RecordEffects(sessionID string, effects []core.Effect) error {
	if len(effects) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(
		`INSERT INTO effects (session_id, tick, kind, category, variant, sound, entity, entity_kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range effects {
		if _, err := stmt.Exec(
			sessionID, int64(e.Tick), e.Kind.String(), e.Category, e.Variant, e.Sound, int64(e.Entity), e.EntityKind,
		); err != nil {
			return fmt.Errorf("storage: cannot record effect: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit effects: %w", err)
	}
	return nil
}

// EndSession marks a session as finished at the given tick.
func (s *Store) EndSession(sessionID string, tick uint64, reason string) error {
	res, err := s.db.Exec(
		"UPDATE sessions SET ended_tick = ?, end_reason = ? WHERE id = ?",
		int64(tick), reason, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return nil
}

// Session retrieves a session by ID.
func (s *Store) Session(sessionID string) (*Session, error) {
	var sess Session
	var startedAt any
	var endedTick sql.NullInt64
	var endReason sql.NullString

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, width, height, stars, enemies, started_at, ended_tick, end_reason
		 FROM sessions
		 WHERE id = ?`,
		sessionID,
	).Scan(
		&sess.ID,
		&sess.GameID,
		&sess.Seed,
		&sess.Width,
		&sess.Height,
		&sess.Stars,
		&sess.Enemies,
		&startedAt,
		&endedTick,
		&endReason,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sess.StartedAt = parseTime(startedAt)
	if endedTick.Valid {
		sess.Ended = true
		sess.EndedTick = uint64(endedTick.Int64)
	}
	if endReason.Valid {
		sess.EndReason = endReason.String
	}
	return &sess, nil
}

// Summary aggregates the recorded effects of a session.
func (s *Store) Summary(sessionID string) (*Summary, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Session:  *sess,
		Sounds:   make(map[string]int),
		Despawns: make(map[string]int),
	}

	rows, err := s.db.Query(
		`SELECT kind, category, entity_kind, COUNT(*), MAX(tick)
		 FROM effects
		 WHERE session_id = ?
		 GROUP BY kind, category, entity_kind`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize session: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, category, entityKind string
		var count int
		var lastTick int64
		if err := rows.Scan(&kind, &category, &entityKind, &count, &lastTick); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}

		sum.Effects += count
		if uint64(lastTick) > sum.LastTick {
			sum.LastTick = uint64(lastTick)
		}
		switch kind {
		case core.EffectSound.String():
			sum.Sounds[category] += count
		case core.EffectDespawn.String():
			sum.Despawns[entityKind] += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sum, nil
}

// Effects retrieves recorded effects of a session in emission order.
// A non-positive limit returns all of them.
func (s *Store) Effects(sessionID string, limit int) ([]core.Effect, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT tick, kind, category, variant, sound, entity, entity_kind
		 FROM effects
		 WHERE session_id = ?
		 ORDER BY id
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query effects: %w", err)
	}
	defer rows.Close()

	var effects []core.Effect
	for rows.Next() {
		var e core.Effect
		var tick, entity int64
		var kind string
		if err := rows.Scan(&tick, &kind, &e.Category, &e.Variant, &e.Sound, &entity, &e.EntityKind); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Tick = uint64(tick)
		e.Entity = uint64(entity)
		e.Kind = core.ParseEffectKind(kind)
		effects = append(effects, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return effects, nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
