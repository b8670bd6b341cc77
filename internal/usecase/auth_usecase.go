package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/ports"
	"github.com/taskboard/taskboard/internal/service/logger"
	"github.com/taskboard/taskboard/internal/service/ratelimit"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// TokenService issues session tokens for authenticated usernames.
type TokenService interface {
	Generate(username string) (string, error)
}

// AuthUseCase verifies credentials and issues session tokens. Login
// failures count against a per-origin rate limit and are logged on the
// technical channel; they never touch the persisted audit trail.
type AuthUseCase struct {
	users   ports.UserRepository
	tokens  TokenService
	limiter ratelimit.Service
	log     logger.Logger
}

func NewAuthUseCase(users ports.UserRepository, tokens TokenService, limiter ratelimit.Service, techLog logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:   users,
		tokens:  tokens,
		limiter: limiter,
		log:     techLog,
	}
}

// Login checks the credentials and returns a signed session token.
func (uc *AuthUseCase) Login(ctx context.Context, username, password, originIP string) (string, error) {
	allowed, err := uc.limiter.Allow(ctx, originIP)
	if err != nil {
		return "", fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		uc.log.Warn(ctx, "Login blocked by rate limit", map[string]interface{}{
			"user": username,
			"ip":   originIP,
		})
		return "", ErrTooManyAttempts
	}

	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return "", uc.failLogin(ctx, username, originIP)
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", uc.failLogin(ctx, username, originIP)
	}

	token, err := uc.tokens.Generate(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := uc.limiter.Reset(ctx, originIP); err != nil {
		uc.log.Warn(ctx, "Failed to reset rate limit counter", map[string]interface{}{
			"ip": originIP,
		})
	}

	uc.log.Info(ctx, "Login succeeded", map[string]interface{}{
		"user": user.Username,
		"ip":   originIP,
	})

	return token, nil
}

func (uc *AuthUseCase) failLogin(ctx context.Context, username, originIP string) error {
	if err := uc.limiter.RecordAttempt(ctx, originIP); err != nil {
		uc.log.Warn(ctx, "Failed to record login attempt", map[string]interface{}{
			"ip": originIP,
		})
	}
	uc.log.Warn(ctx, "Login failed", map[string]interface{}{
		"user": username,
		"ip":   originIP,
	})
	return ErrInvalidCredentials
}
