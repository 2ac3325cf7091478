package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"templatebot/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProfileStore is the server-database backend, for deployments that
// already run Postgres.
type PostgresProfileStore struct {
	db *pgxpool.Pool
}

func NewPostgresProfileStore(db *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

func (s *PostgresProfileStore) Get(userID int64) (*entities.UserProfile, error) {
	var (
		p        entities.UserProfile
		unlocks  []byte
		repNames []byte
	)
	err := s.db.QueryRow(context.Background(),
		"SELECT authorized, unlocks, rep_names, generated_count FROM profiles WHERE user_id = $1",
		userKey(userID)).Scan(&p.Authorized, &unlocks, &repNames, &p.GeneratedCount)
	if err == pgx.ErrNoRows {
		return &entities.UserProfile{Unlocks: map[string]bool{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := json.Unmarshal(unlocks, &p.Unlocks); err != nil {
		return nil, fmt.Errorf("decode unlocks: %w", err)
	}
	if err := json.Unmarshal(repNames, &p.RepNames); err != nil {
		return nil, fmt.Errorf("decode rep names: %w", err)
	}
	return &p, nil
}

func (s *PostgresProfileStore) ensure(userID int64) error {
	_, err := s.db.Exec(context.Background(),
		"INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING",
		userKey(userID))
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) SetAuthorized(userID int64, authorized bool) error {
	if err := s.ensure(userID); err != nil {
		return err
	}
	_, err := s.db.Exec(context.Background(),
		"UPDATE profiles SET authorized = $1 WHERE user_id = $2",
		authorized, userKey(userID))
	if err != nil {
		return fmt.Errorf("persist authorized: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) SetUnlocked(userID int64, template string) error {
	if err := s.ensure(userID); err != nil {
		return err
	}
	_, err := s.db.Exec(context.Background(),
		"UPDATE profiles SET unlocks = unlocks || jsonb_build_object($1::text, true) WHERE user_id = $2",
		template, userKey(userID))
	if err != nil {
		return fmt.Errorf("persist unlocks: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) SetRepNames(userID int64, names []string) error {
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
	_, err = s.db.Exec(context.Background(),
		"UPDATE profiles SET rep_names = $1 WHERE user_id = $2",
		data, userKey(userID))
	if err != nil {
		return fmt.Errorf("persist rep names: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) IncrementGenerated(userID int64) (int, error) {
	if err := s.ensure(userID); err != nil {
		return 0, err
	}
	var count int
	err := s.db.QueryRow(context.Background(),
		"UPDATE profiles SET generated_count = generated_count + 1 WHERE user_id = $1 RETURNING generated_count",
		userKey(userID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("persist generated count: %w", err)
	}
	return count, nil
}

func (s *PostgresProfileStore) Stats() (int, int, error) {
	var users, generated int
	err := s.db.QueryRow(context.Background(),
		"SELECT COUNT(*), COALESCE(SUM(generated_count), 0) FROM profiles").Scan(&users, &generated)
	if err != nil {
		return 0, 0, fmt.Errorf("load stats: %w", err)
	}
	return users, generated, nil
}
