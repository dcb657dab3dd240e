// Command server exposes the lifecycle entry points over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"golang.org/x/exp/slog"

	"github.com/lambdahouse/accounts"
	"github.com/lambdahouse/accounts/internal/directory"
	_ "github.com/lambdahouse/accounts/internal/slogx"
	"github.com/lambdahouse/accounts/server"
)

func main() {
	cfg := accounts.ConfigFromEnv()
	if cfg.UserPoolID == "" {
		panic("USER_POOL_ID is required")
	}
	authSecret := os.Getenv("AUTH_HMAC_SECRET")
	if authSecret == "" {
		panic("AUTH_HMAC_SECRET is required")
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	c, err := accounts.NewClient()
	if err != nil {
		panic(err)
	}
	defer c.Close()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	s := server.NewServer(server.ServerOptions{
		Flows:      accounts.NewExecutor(c),
		Directory:  directory.NewCognito(cognitoidentityprovider.New(sess), cfg.UserPoolID),
		AuthSecret: []byte(authSecret),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("server starting", "addr", addr)
	if err := s.Start(ctx, addr); err != nil {
		panic(err)
	}
}
