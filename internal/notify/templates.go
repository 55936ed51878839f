package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

const credentialsSubject = "Your admin account has been created"

const credentialsTpl = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Your Admin Account</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #fff; padding: 20px; border-radius: 8px;">
    <h2 style="color: #2E86C1;">Welcome, {{.FirstName}}</h2>
    <p>An administrator account has been created for you on the talent operations console.</p>

    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Temporary password:</strong> {{.Password}}</p>

    <p>Please sign in and change your password on first access.</p>
    <br>
    <p>Regards,<br><strong>Operations Team</strong></p>
  </div>
</body>
</html>
`

const promotedSubject = "You now have admin access"

const promotedTpl = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Admin Access Granted</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #fff; padding: 20px; border-radius: 8px;">
    <h2 style="color: #2E86C1;">Hello, {{.FirstName}}</h2>
    <p>Your existing account <strong>{{.Email}}</strong> has been granted administrator
    access to the talent operations console.</p>

    <p>Sign in with your usual credentials; no password change is required.</p>
    <br>
    <p>Regards,<br><strong>Operations Team</strong></p>
  </div>
</body>
</html>
`

var (
	credentialsTemplate = template.Must(template.New("credentials").Parse(credentialsTpl))
	promotedTemplate    = template.Must(template.New("promoted").Parse(promotedTpl))
)

type templateData struct {
	FirstName string
	Email     string
	Password  string
}

// RenderCredentials builds the welcome message carrying a temporary password
// for a freshly registered admin.
func RenderCredentials(firstName, email, password string) (subject, body string, err error) {
	body, err = render(credentialsTemplate, templateData{FirstName: firstName, Email: email, Password: password})
	return credentialsSubject, body, err
}

// RenderPromoted builds the notice for an existing user adopted as admin.
// It never carries credentials.
func RenderPromoted(firstName, email string) (subject, body string, err error) {
	body, err = render(promotedTemplate, templateData{FirstName: firstName, Email: email})
	return promotedSubject, body, err
}

func render(tpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}
