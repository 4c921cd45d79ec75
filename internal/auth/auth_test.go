package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	assert.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:            "test-secret-key",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: time.Hour * 24,
		RefreshTokenEnabled:  true,
	}
}

// captureNotifier records every notice and can be forced to fail.
type captureNotifier struct {
	mu      sync.Mutex
	notices []LoginNotice
	err     error
}

func (n *captureNotifier) NotifyNewAddress(_ context.Context, notice LoginNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func newTestService(t *testing.T) (*Service, *mockRepository, *captureNotifier) {
	cfg := newTestConfig()
	repo := newMockRepository()
	notifier := &captureNotifier{}
	svc := NewService(cfg, newTestLogger(t), repo, NewTokenIssuer(cfg), notifier)
	return svc, repo, notifier
}

func newTestHandler(t *testing.T) *Handler {
	cfg := newTestConfig()
	svc := NewService(cfg, newTestLogger(t), newMockRepository(), NewTokenIssuer(cfg), &captureNotifier{})
	return NewHandler(svc, NewTokenIssuer(cfg), newTestLogger(t))
}
