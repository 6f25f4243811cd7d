// Package auth ties login and logout together: credential exchange through
// the upstream API on one side, session persistence on the other.
package auth

import (
	"context"
	"log"

	"orderdesk/internal/domain"
	"orderdesk/internal/session"
	"orderdesk/internal/upstream"
)

type Service struct {
	client   *upstream.Client
	sessions *session.Manager
}

func NewService(client *upstream.Client, sessions *session.Manager) *Service {
	return &Service{client: client, sessions: sessions}
}

// Login exchanges credentials for tokens and persists the pruned profile.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Profile, error) {
	user, err := s.client.Login(ctx, upstream.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SaveLogin(user); err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// Logout notifies the server best-effort, then clears the local session
// unconditionally. Logout is client-authoritative.
func (s *Service) Logout(ctx context.Context) error {
	if user, err := s.sessions.CurrentUser(); err == nil {
		if err := s.client.Logout(ctx, user.ID); err != nil {
			log.Printf("[auth] server logout failed (ignored): %v", err)
		}
	}
	return s.sessions.Clear()
}

// CurrentUser reports the persisted operator identity, if any.
func (s *Service) CurrentUser() (*domain.Profile, error) {
	return s.sessions.CurrentUser()
}

// IsAdmin gates which navigation the console renders. Presentation only; the
// server enforces real authorization.
func (s *Service) IsAdmin() bool {
	user, err := s.sessions.CurrentUser()
	return err == nil && user.Role == domain.RoleAdmin
}
