package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/repository/contract"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "alkulous.sid"
	SessionTTL        = 7 * 24 * time.Hour
	// PrincipalTTL bounds how long a login stays valid inside its session.
	PrincipalTTL = time.Hour
)

type ISessionService interface {
	// Create stores a new session and returns the signed cookie value.
	Create(ctx context.Context, principal entity.SessionPrincipal) (string, error)
	// Authenticate returns ErrUnauthorized for a missing or unknown session
	// and ErrSessionExpired when the principal's login has lapsed.
	Authenticate(ctx context.Context, cookie string) (*entity.SessionPrincipal, error)
	Destroy(ctx context.Context, cookie string) error
}

type sessionClaims struct {
	Sid string `json:"sid"`
	jwt.RegisteredClaims
}

type sessionService struct {
	repo   contract.SessionRepository
	secret []byte
	now    func() time.Time
}

func NewSessionService(repo contract.SessionRepository, secret string) ISessionService {
	return &sessionService{
		repo:   repo,
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, principal entity.SessionPrincipal) (string, error) {
	now := s.now()
	session := &entity.Session{
		Id:        uuid.New(),
		Principal: principal,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.repo.Save(ctx, session, SessionTTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Sid: session.Id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

func (s *sessionService) Authenticate(ctx context.Context, cookie string) (*entity.SessionPrincipal, error) {
	session, err := s.lookup(ctx, cookie)
	if err != nil {
		return nil, err
	}

	if session.Principal.Expired(s.now()) {
		return nil, ErrSessionExpired
	}
	return &session.Principal, nil
}

func (s *sessionService) Destroy(ctx context.Context, cookie string) error {
	id, err := s.parse(cookie)
	if err != nil {
		return nil
	}
	return s.repo.Delete(ctx, id)
}

func (s *sessionService) lookup(ctx context.Context, cookie string) (*entity.Session, error) {
	id, err := s.parse(cookie)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrUnauthorized
	}
	return session, nil
}

func (s *sessionService) parse(cookie string) (uuid.UUID, error) {
	if cookie == "" {
		return uuid.Nil, ErrUnauthorized
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return uuid.Nil, errors.Join(ErrUnauthorized, err)
	}

	id, err := uuid.Parse(claims.Sid)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}
