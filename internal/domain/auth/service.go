package auth

import (
	"strings"
	"time"
)

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service checks the single admin password and issues admin tokens.
type Service struct {
	secret       string
	passwordHash string
	ttl          time.Duration
	now          func() time.Time
}

func NewService(secret, passwordHash string, ttl time.Duration) *Service {
	return &Service{secret: secret, passwordHash: strings.TrimSpace(passwordHash), ttl: ttl, now: time.Now}
}

func (s *Service) Enabled() bool {
	return s.passwordHash != "" && s.secret != ""
}

func (s *Service) Login(password string) (Session, error) {
	if !s.Enabled() {
		return Session{}, ErrAdminDisabled
	}
	if password == "" || CheckPassword(s.passwordHash, password) != nil {
		return Session{}, ErrInvalidCredentials
	}
	now := s.now()
	token, err := GenerateToken(s.secret, true, now, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: now.Add(s.ttl)}, nil
}

// Authorize returns nil only for a valid token carrying the admin flag.
func (s *Service) Authorize(token string) error {
	if s.secret == "" {
		return ErrAdminDisabled
	}
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return err
	}
	if !claims.Admin {
		return ErrNotAdmin
	}
	return nil
}
