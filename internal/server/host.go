package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests get once the host
// context is cancelled.
const ShutdownTimeout = 5 * time.Second

// Site is one listening address and the handler behind it.
type Site struct {
	Addr    string
	Handler http.Handler

	// Listener, if set, is used instead of listening on Addr.
	Listener net.Listener
}

// Run serves every site until ctx is cancelled or one of them fails, then
// shuts all of them down. All addresses are bound before any is served, so a
// port conflict fails fast without leaving other listeners running.
func Run(ctx context.Context, sites []Site) error {
	if len(sites) == 0 {
		return errors.New("no sites to serve")
	}

	listeners := make([]net.Listener, len(sites))
	for i, site := range sites {
		if site.Listener != nil {
			listeners[i] = site.Listener
			continue
		}
		ln, err := net.Listen("tcp", site.Addr)
		if err != nil {
			for _, open := range listeners[:i] {
				_ = open.Close()
			}
			return fmt.Errorf("listen %s: %w", site.Addr, err)
		}
		listeners[i] = ln
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, site := range sites {
		ln := listeners[i]
		srv := &http.Server{
			Handler:           site.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			slog.Info("serving dashboards", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", ln.Addr(), err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown %s: %w", ln.Addr(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
