package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ldary/mediadex/internal/constants"
)

func main() {
	a, err := newApp()
	if err != nil {
		// The logger may not be usable if construction failed early.
		os.Stderr.WriteString("startup failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer a.close()

	// Periodically evict expired memory-cache entries so long-idle
	// deployments do not hold stale details.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.container.Cache.CleanExpired()
			case <-cleanupDone:
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: a.router,
	}

	go func() {
		a.log.Infof("[App] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatalf("[App] server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(cleanupDone)
	a.log.Infof("[App] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.log.Errorf("[App] forced shutdown: %v", err)
	}
}
