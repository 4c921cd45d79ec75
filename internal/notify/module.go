package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/auth"
	"github.com/mesika/account-service/internal/config"
	"github.com/mesika/account-service/internal/geo"
)

// NewModule returns the notification module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide queue
			fx.Annotate(
				func(config *config.AppConfig) (Queue, error) {
					return NewRedisQueue(&config.Notify)
				},
			),
			// Provide metrics
			fx.Annotate(
				func(reg *prometheus.Registry) *Metrics {
					return NewMetrics(reg)
				},
			),
			// Provide geolocation client
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger) Locator {
					return geo.NewLocator(&config.Geo, log)
				},
			),
			// Provide mailer
			fx.Annotate(
				func(config *config.AppConfig) Mailer {
					return NewSendGridMailer(&config.Mail)
				},
			),
			// Provide dispatcher as the auth notifier
			fx.Annotate(
				func(queue Queue, log *zap.Logger, metrics *Metrics) *Dispatcher {
					return NewDispatcher(queue, log, metrics)
				},
				fx.As(new(auth.LoginNotifier)),
			),
			// Provide worker
			fx.Annotate(
				func(config *config.AppConfig, queue Queue, locator Locator, mailer Mailer, log *zap.Logger, metrics *Metrics) *Worker {
					return NewWorker(queue, locator, mailer, &config.Mail, &config.Notify, log, metrics)
				},
			),
		),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(
	lifecycle fx.Lifecycle,
	worker *Worker,
	queue Queue,
	log *zap.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping notification worker")
			worker.Stop()
			return queue.Close()
		},
	})
}
