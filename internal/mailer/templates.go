package mailer

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/lambdahouse/accounts/internal/store"
)

const (
	welcomeSubject  = "Welcome to Lambda House - Your Account is Ready!"
	upgradedSubject = "Welcome to Lambda House Pro - Premium Features Unlocked!"
)

var welcomeText = texttemplate.Must(texttemplate.New("welcome").Parse(`Hello {{.Name}},

Welcome to Lambda House! Your account has been created and is ready to use.

Account details:
- Email: {{.Email}}
- Contact number: {{.ContactNumber}}
- User ID: {{.UserID}}
- Account tier: {{.Tier}}
- Created: {{.CreatedAt}}

You can now log in and start using our services. If you have any questions,
reach out to our support team.

Best regards,
The Lambda House Team
`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body>
  <h1>Welcome to Lambda House!</h1>
  <p>Hello {{.Name}},</p>
  <p>Your account has been created and is ready to use.</p>
  <h3>Account details</h3>
  <ul>
    <li><strong>Email:</strong> {{.Email}}</li>
    <li><strong>Contact number:</strong> {{.ContactNumber}}</li>
    <li><strong>User ID:</strong> {{.UserID}}</li>
    <li><strong>Account tier:</strong> {{.Tier}}</li>
    <li><strong>Created:</strong> {{.CreatedAt}}</li>
  </ul>
  <p>You can now log in and start using our services.</p>
  <p>Best regards,<br>The Lambda House Team</p>
</body>
</html>
`))

var upgradedText = texttemplate.Must(texttemplate.New("upgraded").Parse(`Welcome to Pro, {{.Name}}!

Your account has been upgraded to Pro status. You now have access to our
AI-powered report generation features:

- Market analysis reports
- Investment potential assessments
- Comparative market analysis
- Custom tailored reports

Start generating reports today to make smarter real estate decisions.

Best regards,
The Lambda House Team
`))

var upgradedHTML = htmltemplate.Must(htmltemplate.New("upgraded").Parse(`<!DOCTYPE html>
<html>
<body>
  <h1>Welcome to Pro, {{.Name}}!</h1>
  <p>Your account has been upgraded to Pro status. You now have access to our
  AI-powered report generation features:</p>
  <ul>
    <li>Market analysis reports</li>
    <li>Investment potential assessments</li>
    <li>Comparative market analysis</li>
    <li>Custom tailored reports</li>
  </ul>
  <p>Start generating reports today to make smarter real estate decisions.</p>
  <p>Best regards,<br>The Lambda House Team</p>
</body>
</html>
`))

type templateData struct {
	Name          string
	Email         string
	ContactNumber string
	UserID        string
	Tier          string
	CreatedAt     string
}

func newTemplateData(rec store.UserRecord) templateData {
	contact := rec.ContactNumber
	if contact == "" {
		contact = "Not provided"
	}
	created := rec.CreatedAt
	if t, err := time.Parse(time.RFC3339, rec.CreatedAt); err == nil {
		created = t.Format("January 2, 2006 15:04 MST")
	}
	return templateData{
		Name:          rec.DisplayName(),
		Email:         rec.Email,
		ContactNumber: contact,
		UserID:        rec.UserID,
		Tier:          rec.Tier,
		CreatedAt:     created,
	}
}

// WelcomeMessage renders the account-creation notification for rec.
func WelcomeMessage(rec store.UserRecord) (Message, error) {
	return render(rec, welcomeSubject, welcomeText, welcomeHTML)
}

// UpgradedMessage renders the paid-tier notification for rec.
func UpgradedMessage(rec store.UserRecord) (Message, error) {
	return render(rec, upgradedSubject, upgradedText, upgradedHTML)
}

func render(
	rec store.UserRecord,
	subject string,
	text *texttemplate.Template,
	html *htmltemplate.Template,
) (Message, error) {
	data := newTemplateData(rec)
	var textBuf, htmlBuf bytes.Buffer
	if err := text.Execute(&textBuf, data); err != nil {
		return Message{}, errors.Wrap(err, "rendering text body")
	}
	if err := html.Execute(&htmlBuf, data); err != nil {
		return Message{}, errors.Wrap(err, "rendering html body")
	}
	return Message{
		To:       rec.Email,
		Subject:  subject,
		TextBody: textBuf.String(),
		HTMLBody: htmlBuf.String(),
	}, nil
}
