package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_ProcessDelivers(t *testing.T) {
	mailer := &fakeMailer{}
	metrics := newTestMetrics()
	w := newTestWorker(newFakeQueue(), &fakeLocator{location: "Lagos, Lagos, Nigeria"}, mailer, metrics, 3, t)

	w.process(context.Background(), testJob())

	sent := mailer.sentMails()
	require.Len(t, sent, 1)
	assert.Equal(t, "test@example.com", sent[0].To)
	assert.Equal(t, mailSubject, sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Lagos, Lagos, Nigeria")
	assert.Contains(t, sent[0].HTML, "9.9.9.9")
	assert.Contains(t, sent[0].HTML, "test-agent")
	assert.Contains(t, sent[0].HTML, "Monday, March 04, 2024")
	assert.Contains(t, sent[0].HTML, "forget-password")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Delivered))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.Failed))
}

func TestWorker_LocationFailureStillDelivers(t *testing.T) {
	mailer := &fakeMailer{}
	metrics := newTestMetrics()
	locator := &fakeLocator{err: errors.New("lookup timed out")}
	w := newTestWorker(newFakeQueue(), locator, mailer, metrics, 3, t)

	w.process(context.Background(), testJob())

	sent := mailer.sentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, unknownLocation)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Delivered))
}

func TestWorker_DeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("provider down")}
	metrics := newTestMetrics()
	w := newTestWorker(newFakeQueue(), &fakeLocator{location: "somewhere"}, mailer, metrics, 1, t)

	w.process(context.Background(), testJob())

	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.Delivered))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Failed))
}

func TestWorker_StartStop(t *testing.T) {
	queue := newFakeQueue()
	mailer := &fakeMailer{}
	metrics := newTestMetrics()
	w := newTestWorker(queue, &fakeLocator{location: "somewhere"}, mailer, metrics, 3, t)

	w.Start()
	require.NoError(t, queue.Enqueue(context.Background(), testJob()))

	assert.Eventually(t, func() bool {
		return len(mailer.sentMails()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	w.Stop()
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Delivered))
}

func TestRenderLoginNotification(t *testing.T) {
	html, err := renderLoginNotification(mailContext{
		FirstName:          "Test",
		Location:           "Lagos, Nigeria",
		Address:            "9.9.9.9",
		UserAgent:          "test-agent",
		FormattedTime:      "Monday, March 04, 2024 at 03:04PM",
		ChangePasswordLink: "http://localhost:8080/forget-password/?email=test%40example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Test,")
	assert.Contains(t, html, "Lagos, Nigeria")

	// The plain-text fallback keeps the words, drops the markup
	text := stripTags(html)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Lagos, Nigeria")
}
