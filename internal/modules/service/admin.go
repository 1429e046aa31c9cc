package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tonelab-collective/booking/internal/config"
	"github.com/tonelab-collective/booking/internal/pkg/utils/secrets"
	"github.com/tonelab-collective/booking/internal/pkg/utils/tokens"
	"go.uber.org/zap"
)

const adminSessionPrefix = "admin:session:"

type AdminService interface {
	Login(ctx context.Context, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (bool, error)
	SessionTTL() time.Duration
}

type adminService struct {
	rdb          *redis.Client
	pepper       string
	passwordHash string
	ttl          time.Duration
	log          *zap.Logger
}

// NewAdminService hashes the configured password once so the plaintext is not
// kept in memory beyond config.
func NewAdminService(rdb *redis.Client, cfg config.AdminCfg, log *zap.Logger) (AdminService, error) {
	phc, err := secrets.HashSecret(cfg.Password, cfg.SecretPepper)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &adminService{rdb: rdb, pepper: cfg.SecretPepper, passwordHash: phc, ttl: ttl, log: log}, nil
}

func (s *adminService) sessionKey(token string) string {
	return adminSessionPrefix + tokens.HMAC256Hex(s.pepper, token)
}

func (s *adminService) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	ok, err := secrets.VerifySecret(password, s.pepper, s.passwordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		s.log.Warn("admin login rejected")
		return "", ErrInvalidPassword
	}

	token, err := tokens.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.sessionKey(token), time.Now().UTC().Format(time.RFC3339), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store admin session: %w", err)
	}
	return token, nil
}

func (s *adminService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, s.sessionKey(token)).Err()
}

func (s *adminService) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := s.rdb.Get(ctx, s.sessionKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *adminService) SessionTTL() time.Duration { return s.ttl }
