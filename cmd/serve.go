package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/server"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

// Serve runs the local gallery viewer until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewViewerHandler(r.gallery, r.gateway, r.logger))

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	httpServer := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	url := fmt.Sprintf("http://%s/", addr)
	r.logger.Info("gallery viewer listening", "addr", addr)
	r.writePlain("Gallery viewer running at %s\n", url)
	r.writePlain("Press Ctrl+C to stop.\n")

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("viewer server failed: %w", err)
	}

	return nil
}
