package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesika/account-service/internal/config"
)

// LoginNotice describes a successful login from an address that differs
// from the user's recorded baseline.
type LoginNotice struct {
	Email     string
	FirstName string
	Address   string
	UserAgent string
	Time      time.Time
}

// LoginNotifier accepts a notice for asynchronous delivery. Enqueue failures
// are the caller's to tolerate: a login never fails because of them.
type LoginNotifier interface {
	NotifyNewAddress(ctx context.Context, notice LoginNotice) error
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Tokens  *TokenPair
	Profile Profile
}

type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
	tokens     *TokenIssuer
	notifier   LoginNotifier
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository, tokens *TokenIssuer, notifier LoginNotifier) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
		tokens:     tokens,
		notifier:   notifier,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *Service) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new account. The password has already passed the
// policy check at the handler; it is hashed here and never stored in clear.
// The request address becomes the user's initial baseline.
func (s *Service) Register(ctx context.Context, in RegisterInput, address string) (Profile, error) {
	if err := ValidatePassword(in.Password); err != nil {
		return Profile{}, err
	}

	hashedPassword, err := s.HashPassword(in.Password)
	if err != nil {
		return Profile{}, err
	}

	user := &User{
		Email:        normalizeEmail(in.Email),
		PasswordHash: hashedPassword,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
	}
	if address != "" {
		user.LastKnownAddr = &address
	}

	if err := s.repository.CreateUser(user); err != nil {
		return Profile{}, err
	}

	s.log.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))

	return user.Profile(), nil
}

// Login verifies credentials, runs the new-address decision and issues a
// token pair. Notification enqueue failures are logged and swallowed.
func (s *Service) Login(ctx context.Context, in LoginInput, address, userAgent string) (*LoginResult, error) {
	user, err := s.repository.GetUserByEmail(in.Email)
	if err != nil {
		if err == ErrUserNotFound {
			_, _ = s.HashPassword("dummy") // Prevent timing attacks
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !s.CheckPasswordHash(in.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	s.handleLoginAddress(ctx, user, address, userAgent)

	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Tokens:  tokens,
		Profile: user.Profile(),
	}, nil
}

// handleLoginAddress applies the baseline-address state machine:
// no baseline yet -> record it, no mail; same address -> nothing;
// different address -> enqueue a notification.
func (s *Service) handleLoginAddress(ctx context.Context, user *User, address, userAgent string) {
	if address == "" {
		return
	}

	if user.LastKnownAddr == nil {
		if err := s.repository.RecordAddress(user.ID, address); err != nil {
			s.log.Error("failed to record baseline address",
				zap.Uint("user_id", user.ID),
				zap.Error(err))
		}
		return
	}

	if *user.LastKnownAddr == address {
		return
	}

	notice := LoginNotice{
		Email:     user.Email,
		FirstName: user.FirstName,
		Address:   address,
		UserAgent: userAgent,
		Time:      time.Now(),
	}
	if err := s.notifier.NotifyNewAddress(ctx, notice); err != nil {
		s.log.Warn("failed to enqueue login notification",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}

	if s.config.AdvanceBaseline {
		if err := s.repository.UpdateAddress(user.ID, address); err != nil {
			s.log.Error("failed to advance baseline address",
				zap.Uint("user_id", user.ID),
				zap.Error(err))
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
