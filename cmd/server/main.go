package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shiplogix/backend/conf"
	"github.com/shiplogix/backend/filestore"
	httpserver "github.com/shiplogix/backend/http"
	"github.com/shiplogix/backend/job"
	"github.com/shiplogix/backend/notify"
	"github.com/shiplogix/backend/pdf"
	"github.com/shiplogix/backend/subm"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := conf.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := filestore.New(cfg.UploadsRoot, subm.UploadSubDirs()...)
	if err != nil {
		return err
	}

	table, err := notify.LoadRecipientTable(cfg.RecipientsPath)
	if err != nil {
		return err
	}

	submRepo, err := subm.NewDdbRepo(ctx, cfg.AWSRegion, cfg.DdbTable)
	if err != nil {
		return err
	}
	jobRepo, err := job.NewDdbRepo(ctx, cfg.AWSRegion, cfg.DdbTable)
	if err != nil {
		return err
	}

	submSrvc := subm.NewSubmissionSrvc(subm.Options{
		Repo:       submRepo,
		Files:      files,
		Compressor: pdf.NewCompressor(logger),
		Notifier: notify.NewMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		}),
		Resolver:   notify.NewResolver(table),
		StuckAfter: cfg.StuckAfter,
		Workers:    cfg.Workers,
		QueueSize:  cfg.QueueSize,
		Logger:     logger,
	})
	jobSrvc := job.NewService(jobRepo, logger)

	server := httpserver.NewHttpServer(submSrvc, jobSrvc, files, cfg.CORSOrigins)

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "address", cfg.HTTPAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}

	// let in-flight background units (compression, email) finish
	if err := submSrvc.Drain(shutdownCtx); err != nil {
		logger.Error("background work did not drain", "error", err)
	}

	err = <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
