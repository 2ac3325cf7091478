package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"templatebot/internal/entities"
)

// FileProfileStore keeps all profiles in a single JSON file keyed by user id,
// rewritten on every mutation. Writes go to a temporary file first and are
// renamed into place, so a crash mid-write cannot corrupt the store.
type FileProfileStore struct {
	path     string
	mu       sync.Mutex
	profiles map[string]*entities.UserProfile
}

// NewFileProfileStore opens (or initializes) the store at path.
func NewFileProfileStore(path string) (*FileProfileStore, error) {
	s := &FileProfileStore{
		path:     path,
		profiles: make(map[string]*entities.UserProfile),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile store: %w", err)
	}
	if err := json.Unmarshal(data, &s.profiles); err != nil {
		return nil, fmt.Errorf("parse profile store %s: %w", path, err)
	}
	return s, nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// entry returns the live record for a user, creating it lazily.
// Caller must hold s.mu.
func (s *FileProfileStore) entry(userID int64) *entities.UserProfile {
	key := userKey(userID)
	p, ok := s.profiles[key]
	if !ok {
		p = &entities.UserProfile{}
		s.profiles[key] = p
	}
	return p
}

// persist rewrites the whole file atomically. Caller must hold s.mu.
func (s *FileProfileStore) persist() error {
	data, err := json.MarshalIndent(s.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace profile store: %w", err)
	}
	return nil
}

func (s *FileProfileStore) Get(userID int64) (*entities.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.entry(userID)
	out := *p
	out.RepNames = append([]string(nil), p.RepNames...)
	out.Unlocks = make(map[string]bool, len(p.Unlocks))
	for k, v := range p.Unlocks {
		out.Unlocks[k] = v
	}
	return &out, nil
}

func (s *FileProfileStore) SetAuthorized(userID int64, authorized bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(userID).Authorized = authorized
	return s.persist()
}

func (s *FileProfileStore) SetUnlocked(userID int64, template string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.entry(userID)
	if p.Unlocks == nil {
		p.Unlocks = make(map[string]bool)
	}
	p.Unlocks[template] = true
	return s.persist()
}

func (s *FileProfileStore) SetRepNames(userID int64, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(userID).RepNames = append([]string(nil), names...)
	return s.persist()
}

func (s *FileProfileStore) IncrementGenerated(userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.entry(userID)
	p.GeneratedCount++
	if err := s.persist(); err != nil {
		return 0, err
	}
	return p.GeneratedCount, nil
}

func (s *FileProfileStore) Stats() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	generated := 0
	for _, p := range s.profiles {
		generated += p.GeneratedCount
	}
	return len(s.profiles), generated, nil
}
