package notify

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/config"
)

const (
	mailSubject = "Login from a Different Location"

	// Mirrors the "Monday, January 02, 2006 at 03:04PM" style shown in the
	// notification mail.
	loginTimeFormat = "Monday, January 02, 2006 at 03:04PM"

	unknownLocation = "an unknown location"

	initialSendBackoff = time.Second
)

// Locator abstracts the geolocation client so the worker can run without
// the real third-party API.
type Locator interface {
	Locate(ctx context.Context, address string) (string, error)
}

// Worker consumes notification jobs from the queue, resolves the login
// location, renders the email and delivers it. All per-job failures are
// contained here; nothing propagates back to the login path.
type Worker struct {
	queue       Queue
	locator     Locator
	mailer      Mailer
	mailConfig  *config.MailConfig
	maxAttempts int
	log         *zap.Logger
	metrics     *Metrics

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(queue Queue, locator Locator, mailer Mailer, mailConfig *config.MailConfig, notifyConfig *config.NotifyConfig, log *zap.Logger, metrics *Metrics) *Worker {
	maxAttempts := notifyConfig.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Worker{
		queue:       queue,
		locator:     locator,
		mailer:      mailer,
		mailConfig:  mailConfig,
		maxAttempts: maxAttempts,
		log:         log,
		metrics:     metrics,
	}
}

func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	w.log.Info("notification worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("notification worker stopped")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.log.Error("failed to dequeue notification job", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}

		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *Job) {
	location := unknownLocation
	if loc, err := w.locator.Locate(ctx, job.Address); err != nil {
		w.log.Warn("location lookup failed",
			zap.String("job_id", job.ID),
			zap.String("address", job.Address),
			zap.Error(err))
	} else {
		location = loc
	}

	html, err := renderLoginNotification(mailContext{
		FirstName:          job.FirstName,
		Location:           location,
		Address:            job.Address,
		UserAgent:          job.UserAgent,
		FormattedTime:      job.LoginAt.Format(loginTimeFormat),
		ChangePasswordLink: w.changePasswordLink(job.Recipient),
	})
	if err != nil {
		w.log.Error("failed to render notification email",
			zap.String("job_id", job.ID),
			zap.Error(err))
		w.metrics.Failed.Inc()
		return
	}

	w.deliver(ctx, job, html)
}

func (w *Worker) deliver(ctx context.Context, job *Job, html string) {
	backoff := initialSendBackoff
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err := w.mailer.Send(ctx, job.Recipient, mailSubject, html)
		if err == nil {
			w.metrics.Delivered.Inc()
			w.log.Info("login notification delivered",
				zap.String("job_id", job.ID),
				zap.String("recipient", job.Recipient),
				zap.Int("attempt", attempt))
			return
		}

		w.log.Warn("failed to send login notification",
			zap.String("job_id", job.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < w.maxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	w.metrics.Failed.Inc()
	w.log.Error("giving up on login notification",
		zap.String("job_id", job.ID),
		zap.String("recipient", job.Recipient),
		zap.Int("attempts", w.maxAttempts))
}

func (w *Worker) changePasswordLink(email string) string {
	return fmt.Sprintf("%s?email=%s", w.mailConfig.ChangePasswordURL, url.QueryEscape(email))
}
