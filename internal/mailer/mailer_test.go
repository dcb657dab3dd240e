package mailer

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	"github.com/stretchr/testify/require"

	"github.com/lambdahouse/accounts/internal/store"
)

type fakeSES struct {
	sesiface.SESAPI

	sendFn func(*ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

func (f *fakeSES) SendEmailWithContext(
	_ aws.Context, in *ses.SendEmailInput, _ ...request.Option,
) (*ses.SendEmailOutput, error) {
	return f.sendFn(in)
}

func TestSend(t *testing.T) {
	var got *ses.SendEmailInput
	m := NewSES(&fakeSES{
		sendFn: func(in *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			got = in
			return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
		},
	}, "noreply@lambdahouse.example")

	err := m.Send(context.Background(), Message{
		To:       "a@x.com",
		Subject:  "hi",
		TextBody: "text",
		HTMLBody: "<p>html</p>",
	})
	require.NoError(t, err)
	require.Equal(t, "noreply@lambdahouse.example", *got.Source)
	require.Equal(t, "a@x.com", *got.Destination.ToAddresses[0])
	require.Equal(t, "hi", *got.Message.Subject.Data)
	require.Equal(t, "noreply@lambdahouse.example", *got.ReplyToAddresses[0])
}

func TestWelcomeMessage(t *testing.T) {
	msg, err := WelcomeMessage(store.UserRecord{
		UserID:    "01ABC",
		Email:     "a@x.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Tier:      store.TierUser,
		CreatedAt: "2024-01-02T03:04:05Z",
	})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", msg.To)
	require.Contains(t, msg.Subject, "Welcome")
	require.Contains(t, msg.TextBody, "Hello Ada Lovelace")
	require.Contains(t, msg.TextBody, "User ID: 01ABC")
	require.Contains(t, msg.TextBody, "Contact number: Not provided")
	require.Contains(t, msg.HTMLBody, "01ABC")
}

func TestUpgradedMessageFallsBackToEmail(t *testing.T) {
	msg, err := UpgradedMessage(store.UserRecord{
		UserID: "01ABC",
		Email:  "a@x.com",
		Tier:   store.TierPaid,
	})
	require.NoError(t, err)
	require.Contains(t, msg.TextBody, "Welcome to Pro, a@x.com")
	require.Contains(t, msg.Subject, "Pro")
}
