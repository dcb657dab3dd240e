// Command worker hosts the lifecycle workflows and their step activities.
package main

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/ses"
	"golang.org/x/exp/slog"

	"github.com/lambdahouse/accounts"
	"github.com/lambdahouse/accounts/internal/blob"
	"github.com/lambdahouse/accounts/internal/directory"
	"github.com/lambdahouse/accounts/internal/mailer"
	_ "github.com/lambdahouse/accounts/internal/slogx"
	"github.com/lambdahouse/accounts/internal/store"
)

func main() {
	cfg := accounts.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", err)
		panic(err)
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	lifecycle := accounts.NewLifecycle(accounts.LifecycleOptions{
		Directory: directory.NewCognito(cognitoidentityprovider.New(sess), cfg.UserPoolID),
		Records:   store.NewDynamo(dynamodb.New(sess), cfg.UserTable),
		Files:     blob.NewS3(s3.New(sess), cfg.UserFilesBucket),
		Mailer:    mailer.NewSES(ses.New(sess), cfg.SourceEmail),
	})

	c, err := accounts.NewClient()
	if err != nil {
		panic(err)
	}
	defer c.Close()

	slog.Info("worker starting", "taskQueue", accounts.TaskQueue)
	if err := lifecycle.StartWorker(c); err != nil {
		panic(err)
	}
}
