package notify

import (
	"bytes"
	_ "embed"
	"html/template"
)

//go:embed templates/login_notification.html
var loginNotificationHTML string

var loginNotificationTmpl = template.Must(
	template.New("login_notification").Parse(loginNotificationHTML))

type mailContext struct {
	FirstName          string
	Location           string
	Address            string
	UserAgent          string
	FormattedTime      string
	ChangePasswordLink string
}

func renderLoginNotification(ctx mailContext) (string, error) {
	var buf bytes.Buffer
	if err := loginNotificationTmpl.Execute(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
