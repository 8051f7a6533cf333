package dataset

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vitarsport/sales-analytics-api/infrastructure/pohoda"
	"github.com/vitarsport/sales-analytics-api/internal/config"
	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/pkg/log"
	"github.com/vitarsport/sales-analytics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileLoader reads the Pohoda XML export directories and the JSON stock and
// plan files.
type FileLoader struct {
	cfg    config.Dataset
	parser *pohoda.Parser
}

func NewFileLoader(cfg config.Dataset, parser *pohoda.Parser) *FileLoader {
	return &FileLoader{cfg: cfg, parser: parser}
}

// Load builds a fresh snapshot from disk. Orders and invoices come from the
// XML exports; sponsoring invoices are split off by price level so they never
// mix into regular revenue.
func (l *FileLoader) Load(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{
		Plan:     make(map[string]domain.PlanTarget),
		LoadedAt: time.Now(),
	}

	orders, orderItems, err := l.loadExports(ctx, l.cfg.OrdersDir, l.parser.ParseOrders)
	if err != nil {
		return nil, errors.Wrap(err, "loading orders")
	}
	snapshot.Orders = orders
	snapshot.OrderItems = orderItems

	invoices, invoiceItems, err := l.loadExports(ctx, l.cfg.InvoicesDir, l.parser.ParseInvoices)
	if err != nil {
		return nil, errors.Wrap(err, "loading invoices")
	}
	snapshot.Invoices, snapshot.Sponsoring = splitSponsoring(invoices)
	snapshot.InvoiceItems, snapshot.SponsoringItems = splitSponsoringItems(invoiceItems, snapshot.Sponsoring)

	if l.cfg.StockFile != "" {
		if err := loadJSONFile(l.cfg.StockFile, &snapshot.Stock); err != nil {
			return nil, errors.Wrap(err, "loading stock")
		}
	}

	if l.cfg.PlanFile != "" {
		if err := loadJSONFile(l.cfg.PlanFile, &snapshot.Plan); err != nil {
			return nil, errors.Wrap(err, "loading plan")
		}
		for month, target := range snapshot.Plan {
			target.Month = month
			snapshot.Plan[month] = target
		}
		log.L.Debug("plan table loaded: ", utils.PrettyJson(snapshot.Plan))
	}

	log.L.WithFields(log.Fields{
		"orders":     len(snapshot.Orders),
		"invoices":   len(snapshot.Invoices),
		"sponsoring": len(snapshot.Sponsoring),
		"stock":      len(snapshot.Stock),
		"plan":       len(snapshot.Plan),
	}).Info("dataset loaded")

	return snapshot, nil
}

type parseFunc func(r io.Reader) ([]domain.SalesRecord, []domain.LineItem, error)

// loadExports parses every *.xml file of a directory in name order, so
// repeated loads produce identical record ordering.
func (l *FileLoader) loadExports(ctx context.Context, dir string, parse parseFunc) ([]domain.SalesRecord, []domain.LineItem, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listing %s", dir)
	}
	sort.Strings(files)

	records := make([]domain.SalesRecord, 0)
	items := make([]domain.LineItem, 0)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		fileRecords, fileItems, err := l.parseFile(path, parse)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, fileRecords...)
		items = append(items, fileItems...)
	}

	return records, items, nil
}

func (l *FileLoader) parseFile(path string, parse parseFunc) ([]domain.SalesRecord, []domain.LineItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	records, items, err := parse(file)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", path)
	}

	log.L.WithFields(log.Fields{
		"file":    filepath.Base(path),
		"records": len(records),
		"items":   len(items),
	}).Debug("export file parsed")

	return records, items, nil
}

func loadJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	return nil
}

func splitSponsoring(invoices []domain.SalesRecord) (regular, sponsoring []domain.SalesRecord) {
	regular = make([]domain.SalesRecord, 0, len(invoices))
	sponsoring = make([]domain.SalesRecord, 0)

	for _, invoice := range invoices {
		if invoice.PriceLevel == pohoda.PriceLevelSponsoring {
			sponsoring = append(sponsoring, invoice)
		} else {
			regular = append(regular, invoice)
		}
	}
	return regular, sponsoring
}

func splitSponsoringItems(items []domain.LineItem, sponsoring []domain.SalesRecord) (regular, sponsoringItems []domain.LineItem) {
	sponsoringNumbers := make(map[string]bool, len(sponsoring))
	for _, invoice := range sponsoring {
		sponsoringNumbers[invoice.InvoiceNumber] = true
	}

	regular = make([]domain.LineItem, 0, len(items))
	sponsoringItems = make([]domain.LineItem, 0)

	for _, item := range items {
		if sponsoringNumbers[item.InvoiceNumber] {
			sponsoringItems = append(sponsoringItems, item)
		} else {
			regular = append(regular, item)
		}
	}
	return regular, sponsoringItems
}
