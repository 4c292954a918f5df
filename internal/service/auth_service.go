package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 32
)

// AuthService registers and logs in players.
type AuthService struct {
	users  UserStore
	engine *game.Engine
	clock  clock.Clock
	audit  *AuditService
	cost   int
}

func NewAuthService(users UserStore, engine *game.Engine, clk clock.Clock, audit *AuditService) *AuthService {
	return &AuthService{users: users, engine: engine, clock: clk, audit: audit, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// RequestInfo carries client details for the audit log.
type RequestInfo struct {
	IP        string
	UserAgent string
}

type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, email, username, password string, req RequestInfo) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return nil, ErrInvalidInput
	}
	if len(password) < MinPasswordLength {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	u := s.engine.NewUser(email, username, string(hash), s.clock.Now())
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return nil, err
	}

	s.audit.Record(WithRequestInfo(ctx, req), u.ID, domain.AuditActionRegister, nil)
	return s.session(&u)
}

func (s *AuthService) Login(ctx context.Context, email, password string, req RequestInfo) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, game.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.audit.Record(WithRequestInfo(ctx, req), u.ID, domain.AuditActionLogin, nil)
	return s.session(u)
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}
