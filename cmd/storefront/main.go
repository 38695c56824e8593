package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	_ "github.com/joho/godotenv/autoload"
)

var version = versioninfo.Short()

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "storefront",
		Usage:   "product catalog and order ledger service",
		Version: version,
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "directory holding products.json and orders.json",
			Value:   "data",
			EnvVars: []string{"STOREFRONT_DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity (debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{"STOREFRONT_LOG_LEVEL", "LOG_LEVEL"},
		},
	}

	app.Commands = []*cli.Command{
		&cli.Command{
			Name:   "serve",
			Usage:  "run the HTTP and gRPC servers",
			Action: runServe,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "bind",
					Usage:   "local IP/port for the HTTP API",
					Value:   ":8000",
					EnvVars: []string{"STOREFRONT_BIND"},
				},
				&cli.StringFlag{
					Name:    "grpc-bind",
					Usage:   "local IP/port for the gRPC API, empty to disable",
					Value:   ":50051",
					EnvVars: []string{"STOREFRONT_GRPC_BIND"},
				},
				&cli.StringFlag{
					Name:    "journal-dir",
					Usage:   "directory for the mutation journal (default: <data-dir>/journal)",
					EnvVars: []string{"STOREFRONT_JOURNAL_DIR"},
				},
				&cli.BoolFlag{
					Name:    "no-journal",
					Usage:   "run without the mutation journal",
					EnvVars: []string{"STOREFRONT_NO_JOURNAL"},
				},
				&cli.Int64Flag{
					Name:    "journal-segment-size",
					Usage:   "rotate journal segments after this many bytes",
					Value:   4 << 20,
					EnvVars: []string{"STOREFRONT_JOURNAL_SEGMENT_SIZE"},
				},
				&cli.StringFlag{
					Name:    "outbox-dir",
					Usage:   "directory for the event outbox, empty to disable",
					EnvVars: []string{"STOREFRONT_OUTBOX_DIR"},
				},
				&cli.StringSliceFlag{
					Name:    "kafka-brokers",
					Usage:   "kafka bootstrap brokers; events stay queued when unset",
					EnvVars: []string{"STOREFRONT_KAFKA_BROKERS"},
				},
				&cli.StringFlag{
					Name:    "kafka-topic",
					Value:   "storefront.events",
					EnvVars: []string{"STOREFRONT_KAFKA_TOPIC"},
				},
				&cli.StringFlag{
					Name:    "kafka-client",
					Usage:   "producer implementation: sarama or kafka-go",
					Value:   "sarama",
					EnvVars: []string{"STOREFRONT_KAFKA_CLIENT"},
				},
				&cli.DurationFlag{
					Name:    "broadcast-interval",
					Usage:   "how often the outbox is flushed to kafka",
					Value:   250 * time.Millisecond,
					EnvVars: []string{"STOREFRONT_BROADCAST_INTERVAL"},
				},
			},
		},
		&cli.Command{
			Name:   "inspect",
			Usage:  "print the persisted catalog and orders as tables",
			Action: runInspect,
		},
		&cli.Command{
			Name:      "journal",
			Usage:     "print the records of a mutation journal",
			ArgsUsage: "[dir]",
			Action:    runJournal,
		},
		&cli.Command{
			Name:  "version",
			Usage: "print version",
			Action: func(cctx *cli.Context) error {
				fmt.Println(version)
				return nil
			},
		},
	}

	return app.Run(args)
}

// journalDir resolves where the journal lives. Empty means disabled.
func journalDir(dataDir, flagDir string, disabled bool) string {
	switch {
	case disabled:
		return ""
	case flagDir != "":
		return flagDir
	default:
		return filepath.Join(dataDir, "journal")
	}
}

func configLogger(cctx *cli.Context) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
