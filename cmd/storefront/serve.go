package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"

	"storefront/api/grpcserver"
	"storefront/api/httpserver"
	"storefront/infra/kafka"
	"storefront/infra/wal/entry"
	"storefront/infra/wal/exit"
	"storefront/jobs/broadcaster"
	"storefront/service"
)

func runServe(cctx *cli.Context) error {
	logger := configLogger(cctx)
	ctx, cancel := context.WithCancel(cctx.Context)
	defer cancel()

	dataDir := cctx.String("data-dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	cfg := service.Config{
		DataDir: dataDir,
		Logger:  logger,
	}

	if dir := journalDir(dataDir, cctx.String("journal-dir"), cctx.Bool("no-journal")); dir != "" {
		journal, err := entry.Open(entry.Config{
			Dir:         dir,
			SegmentSize: cctx.Int64("journal-segment-size"),
		})
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer journal.Close()
		logger.Info("journal opened", "dir", dir, "last_seq", journal.LastSeq())
		cfg.Journal = journal
	}

	var outbox *exit.Outbox
	if dir := cctx.String("outbox-dir"); dir != "" {
		var err error
		outbox, err = exit.Open(dir)
		if err != nil {
			return fmt.Errorf("opening outbox: %w", err)
		}
		defer outbox.Close()
		cfg.Outbox = outbox
	}

	svc := service.New(cfg)

	if brokers := cctx.StringSlice("kafka-brokers"); outbox != nil && len(brokers) > 0 {
		pub, err := newPublisher(cctx.String("kafka-client"), brokers, cctx.String("kafka-topic"))
		if err != nil {
			return err
		}
		bc := broadcaster.New(outbox, pub, cctx.Duration("broadcast-interval"), logger)
		defer bc.Close()
		bcDone := make(chan struct{})
		go func() {
			defer close(bcDone)
			bc.Run(ctx)
		}()
		defer func() {
			cancel()
			<-bcDone
		}()
	}

	var grpcSrv *grpc.Server
	if bind := cctx.String("grpc-bind"); bind != "" {
		lis, err := net.Listen("tcp", bind)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		grpcSrv = grpcserver.New(svc, logger)
		go func() {
			logger.Info("starting grpc server", "bind", bind)
			if err := grpcSrv.Serve(lis); err != nil {
				logger.Error("grpc server failed", "err", err)
			}
		}()
	}

	srv := httpserver.New(svc, cctx.String("bind"), logger)

	exitSignals := make(chan os.Signal, 1)
	signal.Notify(exitSignals, syscall.SIGINT, syscall.SIGTERM)

	svcErr := make(chan error, 1)
	go func() {
		svcErr <- srv.Start()
	}()

	var err error
	select {
	case sig := <-exitSignals:
		logger.Info("received OS exit signal", "signal", sig)
	case err = <-svcErr:
		if err != nil {
			logger.Error("server error", "err", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http shutdown", "err", serr)
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	cancel()

	logger.Info("shutdown complete")
	return err
}

func newPublisher(client string, brokers []string, topic string) (broadcaster.Publisher, error) {
	switch client {
	case "sarama":
		return broadcaster.NewSaramaPublisher(brokers, topic)
	case "kafka-go":
		return kafka.NewProducer(brokers, topic), nil
	default:
		return nil, fmt.Errorf("unknown kafka client %q", client)
	}
}

