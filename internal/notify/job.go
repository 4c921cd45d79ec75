package notify

import "time"

// Job is the queued record of a login from an unrecognized address. The
// worker owns it exclusively after enqueue: geolocation, rendering and mail
// delivery all happen there, never on the request path.
type Job struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	FirstName string    `json:"first_name"`
	Address   string    `json:"address"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
}
