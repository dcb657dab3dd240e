// Package mailer sends the lifecycle notification emails. Delivery is
// best-effort everywhere it is used: callers record the outcome but never
// abort on a send failure.
package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	"github.com/pkg/errors"
)

// Message is a rendered, ready-to-send email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SES sends through Simple Email Service from a fixed source address.
type SES struct {
	api    sesiface.SESAPI
	source string
}

var _ Mailer = new(SES)

func NewSES(api sesiface.SESAPI, source string) *SES {
	return &SES{api: api, source: source}
}

func (s *SES) Send(ctx context.Context, msg Message) error {
	_, err := s.api.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(msg.To)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{Data: aws.String(msg.Subject)},
			Body: &ses.Body{
				Text: &ses.Content{Data: aws.String(msg.TextBody)},
				Html: &ses.Content{Data: aws.String(msg.HTMLBody)},
			},
		},
		ReplyToAddresses: []*string{aws.String(s.source)},
	})
	return errors.Wrapf(err, "sending email to %q", msg.To)
}
