package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var productsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_products_created_total",
	Help: "Number of products created",
})

var orderMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_order_mutations_total",
	Help: "Number of order mutations by kind",
}, []string{"kind"})

var lookupMisses = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_lookup_misses_total",
	Help: "Number of id lookups that found nothing",
}, []string{"entity"})

var snapshotFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_snapshot_failures_total",
	Help: "Number of snapshot writes that failed",
}, []string{"entity"})

var outboxFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_outbox_failures_total",
	Help: "Number of events that could not be enqueued",
})

var indexDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "storefront_product_index_depth",
	Help: "Longest root-to-leaf path in the product index",
})

var ordersStored = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "storefront_orders_stored",
	Help: "Number of orders currently in the ledger",
})

var journalTruncateFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_journal_truncate_failures_total",
	Help: "Number of journal checkpoints that could not remove segments",
})
