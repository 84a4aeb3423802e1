package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const shutdownTimeout = 10 * time.Second

// serve runs srv until a signal arrives on stop or the listener fails, then
// shuts the server down. A listener failure is returned so the caller's
// cleanup still runs.
func serve(srv *http.Server, stop <-chan os.Signal, logger *slog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var err error
	select {
	case sig := <-stop:
		logger.Info("shutting_down", "signal", sig.String())
	case err = <-serveErr:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if sErr := srv.Shutdown(ctx); sErr != nil {
		logger.Error("shutdown_error", "error", sErr)
	}
	return err
}
