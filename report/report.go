// Package report renders storefront state as markdown tables for the
// command-line tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"storefront/domain/catalog"
	"storefront/infra/wal/entry"
)

func newTable(w io.Writer, columns int) *tablewriter.Table {
	alignment := make([]tw.Align, columns)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Products writes one row per product in the order given.
func Products(w io.Writer, products []catalog.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "_No products_")
		return err
	}

	table := newTable(w, 3)
	table.Header([]string{"id", "product_name", "price"})
	for _, p := range products {
		table.Append([]string{strconv.FormatInt(p.ID, 10), p.Name, money(p.Price)})
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n_%d products_\n", len(products))
	return err
}

// Orders writes every resolved line of every order, followed by the
// order total.
func Orders(w io.Writer, details []catalog.OrderDetail) error {
	if len(details) == 0 {
		_, err := fmt.Fprintln(w, "_No orders_")
		return err
	}

	table := newTable(w, 6)
	table.Header([]string{"order", "product_id", "product_name", "quantity", "unit_price", "total"})

	var grand float64
	for _, d := range details {
		order := strconv.FormatInt(d.ID, 10)
		for _, l := range d.Products {
			table.Append([]string{
				order,
				strconv.FormatInt(l.ProductID, 10),
				l.ProductName,
				strconv.FormatInt(l.Quantity, 10),
				money(l.ProductPrice),
				money(l.TotalPrice),
			})
		}
		table.Append([]string{order, "", "", "", "", color.GreenString(money(d.TotalPrice))})
		grand += d.TotalPrice
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n_%d orders, %s total_\n", len(details), color.CyanString(money(grand)))
	return err
}

// Journal writes one row per record with its decoded payload.
func Journal(w io.Writer, records []*entry.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "_Journal is empty_")
		return err
	}

	table := newTable(w, 4)
	table.Header([]string{"seq", "time", "type", "payload"})
	for _, rec := range records {
		table.Append([]string{
			strconv.FormatUint(rec.Seq, 10),
			rec.Timestamp().UTC().Format(time.RFC3339),
			rec.Type.String(),
			payloadString(rec.Data),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n_%d records_\n", len(records))
	return err
}

func payloadString(data []byte) string {
	fields, err := entry.DecodePayload(data)
	if err != nil {
		return color.RedString("undecodable: %v", err)
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return color.RedString("undecodable: %v", err)
	}
	return string(b)
}
