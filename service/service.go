package service

import (
	"log/slog"
	"path/filepath"
	"sync"

	"storefront/domain/catalog"
	"storefront/domain/index"
	"storefront/domain/seqlist"
	"storefront/infra/sequence"
	"storefront/infra/wal/entry"
	"storefront/snapshot"
)

const (
	ProductsFile = "products.json"
	OrdersFile   = "orders.json"
)

// Journal records mutation intents. *entry.WAL satisfies it.
type Journal interface {
	Append(t entry.RecordType, data []byte) (uint64, error)
	// TruncateBefore drops records the snapshots already cover.
	TruncateBefore(seq uint64) (int, error)
}

// Outbox queues outbound events. *exit.Outbox satisfies it.
type Outbox interface {
	Enqueue(payload []byte) (uint64, error)
}

type Config struct {
	// DataDir holds products.json and orders.json.
	DataDir string

	// Journal and Outbox are optional. Leave them nil to disable.
	Journal Journal
	Outbox  Outbox

	Logger *slog.Logger
}

/*
Service is the only write entry point into the storefront.

Products live in an ordered index keyed by id, orders in an
insertion-ordered ledger. Neither structure tolerates concurrent
mutation, so every call takes mu.
*/
type Service struct {
	mu sync.RWMutex

	products *index.Index[int64, catalog.Product]
	orders   *seqlist.List[*catalog.Order]

	productIDs *sequence.Sequencer
	orderIDs   *sequence.Sequencer

	productFile snapshot.File[catalog.Product]
	orderFile   snapshot.File[*catalog.Order]

	// set while a snapshot file lags behind memory
	productsStale bool
	ordersStale   bool

	journal Journal
	outbox  Outbox
	log     *slog.Logger
}

// New builds the service and reloads persisted state from cfg.DataDir.
// No globals. Everything the service touches is passed in here.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		products:    index.New[int64, catalog.Product](catalog.CompareProducts, catalog.CompareProductKey),
		orders:      seqlist.New[*catalog.Order](),
		productIDs:  sequence.New(0),
		orderIDs:    sequence.New(0),
		productFile: snapshot.NewFile[catalog.Product](filepath.Join(cfg.DataDir, ProductsFile)),
		orderFile:   snapshot.NewFile[*catalog.Order](filepath.Join(cfg.DataDir, OrdersFile)),
		journal:     cfg.Journal,
		outbox:      cfg.Outbox,
		log:         logger.With("component", "service"),
	}
	s.reload()
	return s
}

// Stats is a point-in-time view of the structures.
type Stats struct {
	Products      int    `json:"products"`
	Orders        int    `json:"orders"`
	IndexDepth    int    `json:"index_depth"`
	LastProductID uint64 `json:"last_product_id"`
	LastOrderID   uint64 `json:"last_order_id"`
}

func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Products:      s.products.Len(),
		Orders:        s.orders.Len(),
		IndexDepth:    s.products.Depth(),
		LastProductID: s.productIDs.Current(),
		LastOrderID:   s.orderIDs.Current(),
	}
}
