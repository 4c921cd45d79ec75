package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logger
}

func newTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// fakeQueue is an in-memory Queue for tests.
type fakeQueue struct {
	jobs       chan *Job
	enqueueErr error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: make(chan *Job, 16)}
}

func (q *fakeQueue) Enqueue(_ context.Context, job *Job) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.jobs <- job
	return nil
}

func (q *fakeQueue) Dequeue(ctx context.Context) (*Job, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case job := <-q.jobs:
		return job, nil
	}
}

func (q *fakeQueue) Close() error { return nil }

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

// fakeMailer records sends and fails the first failN attempts.
type fakeMailer struct {
	mu    sync.Mutex
	sent  []sentMail
	err   error
	calls int
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: htmlBody})
	return nil
}

func (m *fakeMailer) sentMails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type fakeLocator struct {
	location string
	err      error
}

func (l *fakeLocator) Locate(_ context.Context, _ string) (string, error) {
	return l.location, l.err
}

func testJob() *Job {
	return &Job{
		ID:        "test-job",
		Recipient: "test@example.com",
		FirstName: "Test",
		Address:   "9.9.9.9",
		UserAgent: "test-agent",
		LoginAt:   time.Date(2024, time.March, 4, 15, 4, 0, 0, time.UTC),
	}
}

func newTestWorker(queue Queue, locator Locator, mailer Mailer, metrics *Metrics, maxAttempts int, t *testing.T) *Worker {
	return NewWorker(
		queue,
		locator,
		mailer,
		&config.MailConfig{
			FromEmail:         "no-reply@example.com",
			ChangePasswordURL: "http://localhost:8080/forget-password/",
		},
		&config.NotifyConfig{MaxAttempts: maxAttempts},
		newTestLogger(t),
		metrics,
	)
}
