// Command previewd serves catalog previews over HTTP.
//
//	GET /healthz
//	GET /previews
//	GET /previews/{name}.png?width=&height=&fov=&distance=
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/preview"
	"github.com/gogpu/preview/internal/cli"
	"github.com/gogpu/preview/scene"
)

func main() {
	if err := cli.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "previewd: %v\n", err)
		os.Exit(1)
	}

	var (
		addr      = flag.String("addr", cli.Env("PREVIEWD_ADDR", ":8080"), "listen address")
		tick      = flag.Duration("tick", cli.EnvDuration("PREVIEWD_TICK", 16*time.Millisecond), "host frame interval")
		timeout   = flag.Duration("timeout", cli.EnvDuration("PREVIEWD_TIMEOUT", 10*time.Second), "per-request render timeout")
		logLevel  = flag.String("log-level", cli.Env("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
		logFormat = flag.String("log-format", cli.Env("LOG_FORMAT", "json"), "log format (json, text)")
	)
	flag.Parse()

	log := cli.NewLogger(os.Stdout, *logLevel, *logFormat)
	preview.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := scene.New()
	svc := preview.New(sc)
	svc.Attach(sc)
	h := newHost(sc, *tick)
	go h.run(ctx)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(&server{host: h, svc: svc, log: log, timeout: *timeout}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", "err", err)
		}
	}()

	log.Info("previewd listening", "addr", *addr, "tick", *tick)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("listen", "err", err)
		os.Exit(1)
	}
	log.Info("previewd stopped")
}
