// Package session is the single seam over the persisted login state: the
// access token, the refresh token, and the pruned operator profile. Every
// consumer (upstream client, web console, CLI) goes through a Manager so the
// 401 teardown has exactly one implementation.
package session

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"orderdesk/internal/domain"
)

var ErrNoSession = errors.New("no active session")

// State is the persisted trio.
type State struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         *domain.Profile `json:"user,omitempty"`
}

// Store persists session state. Implementations: FileStore (CLI, single
// operator) and RedisStore (web console).
type Store interface {
	Load() (*State, error)
	Save(*State) error
	Clear() error
}

type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Token returns the access token, treating an expired JWT as absent. The
// expiry pre-check only reads the unverified exp claim; the server remains
// authoritative and will still 401 a forged token.
func (m *Manager) Token() (string, error) {
	state, err := m.store.Load()
	if err != nil {
		return "", err
	}
	if state == nil || state.Token == "" {
		return "", ErrNoSession
	}
	if expired(state.Token, m.now()) {
		return "", ErrNoSession
	}
	return state.Token, nil
}

func (m *Manager) CurrentUser() (*domain.Profile, error) {
	state, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if state == nil || state.User == nil {
		return nil, ErrNoSession
	}
	return state.User, nil
}

// SaveLogin prunes the login response down to what the console is allowed to
// keep: tokens plus the identity fields.
func (m *Manager) SaveLogin(user *domain.User) error {
	profile := user.Profile()
	return m.store.Save(&State{
		Token:        user.Tokens,
		RefreshToken: user.RefreshTokens,
		User:         &profile,
	})
}

func (m *Manager) Clear() error {
	return m.store.Clear()
}

// expired decodes the exp claim without verifying the signature. Opaque
// non-JWT tokens never count as expired.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return now.Unix() >= int64(exp)
}
