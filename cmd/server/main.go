package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newscheck/internal/acquirer"
	"newscheck/internal/classifier"
	"newscheck/internal/config"
	"newscheck/internal/crawler"
	"newscheck/internal/pipeline"
	"newscheck/internal/web"
	"newscheck/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	flag.Parse()

	boot := logger.New()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		boot.Errorf("load config: %v", err)
		os.Exit(1)
	}
	l := logger.NewWithWriter(os.Stderr, cfg.Log.Level)

	// The artifacts are loaded once and never mutated; handlers share them.
	model, transformer, err := classifier.LoadArtifacts(cfg.Model.Path, cfg.Model.TransformerPath)
	if err != nil {
		l.Errorf("%v", err)
		os.Exit(1)
	}
	l.Infof("loaded model %s (classes %v) and transformer %s (%d features)",
		cfg.Model.Path, model.Classes(), cfg.Model.TransformerPath, transformer.Dim())

	client := crawler.NewHTTPClient(cfg.Fetch.Timeout, cfg.Fetch.DialTimeout, cfg.Fetch.MaxBytes)
	analyzer := pipeline.New(
		acquirer.New(client, cfg.Fetch.MinChars),
		classifier.New(transformer, model),
		l,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      web.NewServer(analyzer, l).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Infof("server listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}
