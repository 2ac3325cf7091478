package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"templatebot/internal/entities"

	_ "modernc.org/sqlite"
)

// SQLiteProfileStore is the embedded-database backend: same contract as the
// file store, but each mutation is a single row upsert instead of a whole
// file rewrite.
type SQLiteProfileStore struct {
	db *sql.DB
}

// NewSQLiteProfileStore opens (or creates) the database at path.
func NewSQLiteProfileStore(path string) (*SQLiteProfileStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// The store is written from one event loop plus the admin reader.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			user_id         TEXT PRIMARY KEY,
			authorized      INTEGER NOT NULL DEFAULT 0,
			unlocks         TEXT NOT NULL DEFAULT '{}',
			rep_names       TEXT NOT NULL DEFAULT '[]',
			generated_count INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}
	return &SQLiteProfileStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteProfileStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteProfileStore) Get(userID int64) (*entities.UserProfile, error) {
	var (
		p        entities.UserProfile
		unlocks  string
		repNames string
	)
	err := s.db.QueryRow(
		"SELECT authorized, unlocks, rep_names, generated_count FROM profiles WHERE user_id = ?",
		userKey(userID)).Scan(&p.Authorized, &unlocks, &repNames, &p.GeneratedCount)
	if err == sql.ErrNoRows {
		return &entities.UserProfile{Unlocks: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := json.Unmarshal([]byte(unlocks), &p.Unlocks); err != nil {
		return nil, fmt.Errorf("decode unlocks: %w", err)
	}
	if err := json.Unmarshal([]byte(repNames), &p.RepNames); err != nil {
		return nil, fmt.Errorf("decode rep names: %w", err)
	}
	return &p, nil
}

// ensure creates the row for a user if it does not exist yet.
func (s *SQLiteProfileStore) ensure(userID int64) error {
	_, err := s.db.Exec(
		"INSERT INTO profiles (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING",
		userKey(userID))
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) SetAuthorized(userID int64, authorized bool) error {
	if err := s.ensure(userID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"UPDATE profiles SET authorized = ? WHERE user_id = ?",
		authorized, userKey(userID))
	if err != nil {
		return fmt.Errorf("persist authorized: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) SetUnlocked(userID int64, template string) error {
	p, err := s.Get(userID)
	if err != nil {
		return err
	}
	if p.Unlocks == nil {
		p.Unlocks = make(map[string]bool)
	}
	p.Unlocks[template] = true
	data, err := json.Marshal(p.Unlocks)
	if err != nil {
		return fmt.Errorf("encode unlocks: %w", err)
	}
	if err := s.ensure(userID); err != nil {
		return err
	}
	_, err = s.db.Exec(
		"UPDATE profiles SET unlocks = ? WHERE user_id = ?",
		string(data), userKey(userID))
	if err != nil {
		return fmt.Errorf("persist unlocks: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) SetRepNames(userID int64, names []string) error {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode rep names: %w", err)
	}
	if err := s.ensure(userID); err != nil {
		return err
	}
	_, err = s.db.Exec(
		"UPDATE profiles SET rep_names = ? WHERE user_id = ?",
		string(data), userKey(userID))
	if err != nil {
		return fmt.Errorf("persist rep names: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) IncrementGenerated(userID int64) (int, error) {
	if err := s.ensure(userID); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRow(
		"UPDATE profiles SET generated_count = generated_count + 1 WHERE user_id = ? RETURNING generated_count",
		userKey(userID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("persist generated count: %w", err)
	}
	return count, nil
}

func (s *SQLiteProfileStore) Stats() (int, int, error) {
	var users, generated int
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(generated_count), 0) FROM profiles").Scan(&users, &generated)
	if err != nil {
		return 0, 0, fmt.Errorf("load stats: %w", err)
	}
	return users, generated, nil
}
