// Package httpx serves HTTP with context-driven shutdown.
package httpx

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 30 * time.Second

// ServeContext serves on l until ctx is cancelled, then shuts the server
// down gracefully. The returned wait func blocks until both the serve loop
// and the shutdown have finished.
func ServeContext(ctx context.Context, l net.Listener, server *http.Server) (wait func() error) {
	eg, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	var closing bool
	eg.Go(func() (err error) {
		err = server.Serve(l)
		mu.Lock()
		defer mu.Unlock()
		if err == http.ErrServerClosed && closing {
			return nil
		}
		return err
	})
	eg.Go(func() error {
		<-ctx.Done()
		mu.Lock()
		closing = true
		mu.Unlock()
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			slog.Error("shutting down http server", err)
		}
		return nil
	})
	return eg.Wait
}
