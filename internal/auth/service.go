// Package auth gates the API behind a single operator login with
// Redis-backed sessions.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/arcadia-pos/arcadia-pos/internal/platform/httpx"
)

const sessionPrefix = "session:"

// Service verifies credentials and manages session tokens.
type Service struct {
	email      string
	passHash   []byte
	client     *redis.Client
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewService hashes the configured password once and keeps only the
// hash in memory.
func NewService(email, password string, client *redis.Client, sessionTTL time.Duration, logger *slog.Logger) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	return &Service{
		email:      strings.ToLower(email),
		passHash:   hash,
		client:     client,
		sessionTTL: sessionTTL,
		logger:     logger,
	}, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != s.email {
		return "", httpx.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passHash, []byte(password)); err != nil {
		return "", httpx.ErrUnauthorized
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionPrefix+token, s.email, s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("auth: store session: %w", err)
	}

	s.logger.Info("session opened", "email", s.email)
	return token, nil
}

// Verify checks a session token and extends its lifetime.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", httpx.ErrUnauthorized
	}
	email, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if err == redis.Nil {
		return "", httpx.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("auth: read session: %w", err)
	}

	s.client.Expire(ctx, sessionPrefix+token, s.sessionTTL)
	return email, nil
}

// Logout drops the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("auth: drop session: %w", err)
	}
	return nil
}
