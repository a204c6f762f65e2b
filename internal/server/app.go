package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"staking-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	HttpPort        string
	ShutdownTimeout time.Duration
}

type App struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func New(cfg Config, httpHandler *gin.Engine) *App {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &App{
		httpServer: &http.Server{
			Addr:              ":" + cfg.HttpPort,
			Handler:           httpHandler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP Server", zap.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP Server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("Server exited properly")
	return nil
}
