package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"storefront/infra/wal/entry"
	"storefront/report"
	"storefront/service"
)

func runInspect(cctx *cli.Context) error {
	svc := service.New(service.Config{
		DataDir: cctx.String("data-dir"),
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})

	w := cctx.App.Writer
	fmt.Fprintln(w, "## Products")
	fmt.Fprintln(w)
	if err := report.Products(w, svc.ListProducts()); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Orders")
	fmt.Fprintln(w)
	return report.Orders(w, svc.ListOrders())
}

func runJournal(cctx *cli.Context) error {
	dir := journalDir(cctx.String("data-dir"), cctx.Args().First(), false)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("journal dir: %w", err)
	}

	var records []*entry.Record
	last, err := entry.Replay(dir, func(rec *entry.Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return fmt.Errorf("replaying %s after seq %d: %w", dir, last, err)
	}
	return report.Journal(cctx.App.Writer, records)
}
