package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikh-saqib/session-account-ledger/internal/config"
	"github.com/sheikh-saqib/session-account-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/session-account-ledger/internal/ledger"
	"github.com/sheikh-saqib/session-account-ledger/internal/logger"
	"github.com/sheikh-saqib/session-account-ledger/internal/shell"
	"github.com/sheikh-saqib/session-account-ledger/internal/storage/memory"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file with LEDGER_* settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(logger.Config{Environment: cfg.Environment, Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}

	opts := []ledger.Option{ledger.WithLogger(zl)}

	var publisher *kafka.Publisher
	if cfg.PublishingEnabled() {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.PublishTimeout)
		opts = append(opts, ledger.WithPublisher(publisher))
	}

	// Each run is a fresh session starting from the initial balance.
	session := ledger.NewLedger(memory.NewMemoryBalanceStore(), opts...)

	shutdown := func() {
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				zl.Warn("failed to close kafka publisher", zap.Error(err))
			}
		}
		_ = zl.Sync()
	}

	// The shell blocks on stdin, so an interrupt ends the session from here.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		shutdown()
		os.Exit(0)
	}()

	zl.Info("session started",
		zap.String("session_id", session.SessionID()),
		zap.Bool("publishing", cfg.PublishingEnabled()),
	)

	runErr := shell.New(session, os.Stdin, os.Stdout, zl).Run(context.Background())
	if runErr != nil {
		zl.Error("session ended with error", zap.Error(runErr))
	}

	shutdown()

	if runErr != nil {
		os.Exit(1)
	}
}
