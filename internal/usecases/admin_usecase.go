package usecases

import (
	"errors"
	"fmt"
	"time"

	"templatebot/internal/infrastructure"
	"templatebot/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminUsecase backs the operator HTTP API: password login and read-only
// stats over the profile store and session table.
type AdminUsecase struct {
	profiles     repository.ProfileStore
	sessions     *infrastructure.SessionTable
	catalog      *repository.TemplateCatalog
	passwordHash []byte
	jwtSecret    []byte
}

type AdminStats struct {
	Users          int      `json:"users"`
	Generated      int      `json:"documents_generated"`
	ActiveSessions int      `json:"active_sessions"`
	Templates      []string `json:"templates"`
}

func NewAdminUsecase(
	profiles repository.ProfileStore,
	sessions *infrastructure.SessionTable,
	catalog *repository.TemplateCatalog,
	adminPassword, jwtSecret string,
) (*AdminUsecase, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminUsecase{
		profiles:     profiles,
		sessions:     sessions,
		catalog:      catalog,
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
	}, nil
}

// Login checks the admin password and returns a signed token.
func (uc *AdminUsecase) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return tokenString, nil
}

func (uc *AdminUsecase) Stats() (AdminStats, error) {
	users, generated, err := uc.profiles.Stats()
	if err != nil {
		return AdminStats{}, err
	}
	return AdminStats{
		Users:          users,
		Generated:      generated,
		ActiveSessions: uc.sessions.Len(),
		Templates:      uc.catalog.Names(),
	}, nil
}
