package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names accepted in EmailJob.Template.
const (
	TplVerifyEmail = "verify_email"
	TplWelcome     = "welcome"
)

var verifyEmailTpl = template.Must(template.New(TplVerifyEmail).Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Verify your email address</h2>
    <p>Hi {{.Name}},</p>
    <p>Thanks for signing up. Confirm your email address to activate your account:</p>
    <p><a href="{{.VerifyURL}}">Verify email</a></p>
    <p>This link expires in {{.ExpiresIn}}.</p>
    <p>If you did not create an account, you can ignore this message.</p>
  </body>
</html>
`))

var welcomeTpl = template.Must(template.New(TplWelcome).Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome aboard</h2>
    <p>Hi {{.Name}},</p>
    <p>Your account is verified and ready to use.</p>
  </body>
</html>
`))

// Render renders a named template and returns subject and HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	var tpl *template.Template
	switch name {
	case TplVerifyEmail:
		tpl = verifyEmailTpl
		subject = "Verify your email address"
	case TplWelcome:
		tpl = welcomeTpl
		subject = "Welcome to the job board"
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
