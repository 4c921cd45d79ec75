package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mesika/account-service/internal/config"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide repository
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			// Provide token issuer
			fx.Annotate(
				func(config *config.AppConfig) *TokenIssuer {
					return NewTokenIssuer(&config.Auth)
				},
			),
			// Provide service
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository, tokens *TokenIssuer, notifier LoginNotifier) *Service {
					return NewService(&config.Auth, log, repo, tokens, notifier)
				},
			),
			// Provide handler
			fx.Annotate(
				func(svc *Service, tokens *TokenIssuer, log *zap.Logger) *Handler {
					return NewHandler(svc, tokens, log)
				},
			),
		),
	)
}
