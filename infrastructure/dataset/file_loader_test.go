package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitarsport/sales-analytics-api/infrastructure/pohoda"
	"github.com/vitarsport/sales-analytics-api/internal/config"
	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/pkg/log"
)

const orderExport = `<?xml version="1.0" encoding="UTF-8"?>
<dat:dataPack xmlns:dat="http://www.stormware.cz/schema/version_2/data.xsd"
              xmlns:ord="http://www.stormware.cz/schema/version_2/order.xsd"
              xmlns:typ="http://www.stormware.cz/schema/version_2/type.xsd">
  <dat:dataPackItem>
    <ord:order>
      <ord:orderHeader>
        <ord:numberOrder>45601</ord:numberOrder>
        <ord:date>2025-03-15</ord:date>
        <ord:centre><typ:ids>KPR</typ:ids></ord:centre>
      </ord:orderHeader>
      <ord:orderSummary>
        <ord:homeCurrency>
          <typ:priceLowSum>1000</typ:priceLowSum>
        </ord:homeCurrency>
      </ord:orderSummary>
    </ord:order>
  </dat:dataPackItem>
</dat:dataPack>`

const invoiceExport = `<?xml version="1.0" encoding="UTF-8"?>
<dat:dataPack xmlns:dat="http://www.stormware.cz/schema/version_2/data.xsd"
              xmlns:inv="http://www.stormware.cz/schema/version_2/invoice.xsd"
              xmlns:typ="http://www.stormware.cz/schema/version_2/type.xsd">
  <dat:dataPackItem>
    <inv:invoice>
      <inv:invoiceHeader>
        <inv:number><typ:numberRequested>25FV00042</typ:numberRequested></inv:number>
        <inv:numberOrder>45601</inv:numberOrder>
        <inv:date>2025-03-18</inv:date>
      </inv:invoiceHeader>
      <inv:invoiceDetail>
        <inv:invoiceItem>
          <inv:text>Enervit Gel</inv:text>
          <inv:code>EN002</inv:code>
          <inv:quantity>5</inv:quantity>
          <inv:homeCurrency><typ:priceSum>500</typ:priceSum></inv:homeCurrency>
        </inv:invoiceItem>
      </inv:invoiceDetail>
      <inv:invoiceSummary>
        <inv:homeCurrency><typ:priceLowSum>500</typ:priceLowSum></inv:homeCurrency>
      </inv:invoiceSummary>
    </inv:invoice>
  </dat:dataPackItem>
  <dat:dataPackItem>
    <inv:invoice>
      <inv:invoiceHeader>
        <inv:number><typ:numberRequested>25FV00099</typ:numberRequested></inv:number>
        <inv:date>2025-03-28</inv:date>
        <inv:priceLevel><typ:ids>Sponzoring</typ:ids></inv:priceLevel>
      </inv:invoiceHeader>
      <inv:invoiceDetail>
        <inv:invoiceItem>
          <inv:text>Enervit Bar</inv:text>
          <inv:code>EN003</inv:code>
          <inv:quantity>20</inv:quantity>
          <inv:homeCurrency><typ:priceSum>2000</typ:priceSum></inv:homeCurrency>
        </inv:invoiceItem>
      </inv:invoiceDetail>
      <inv:invoiceSummary>
        <inv:homeCurrency><typ:priceLowSum>2000</typ:priceLowSum></inv:homeCurrency>
      </inv:invoiceSummary>
    </inv:invoice>
  </dat:dataPackItem>
</dat:dataPack>`

const stockJSON = `[
  {"code": "EN001", "full_name": "Enervit Isotonic", "brand": "ENERVIT", "count": 120, "avg_daily_sales": 4, "total_sold_90d": 360}
]`

const planJSON = `{
  "2025-03": {"total_cz": 2167710, "total_sk": 350000, "salespeople": {"Karolina": 980483}}
}`

func writeFixtures(t *testing.T) config.Dataset {
	t.Helper()

	root := t.TempDir()
	ordersDir := filepath.Join(root, "orders")
	invoicesDir := filepath.Join(root, "invoices")
	require.NoError(t, os.Mkdir(ordersDir, 0o755))
	require.NoError(t, os.Mkdir(invoicesDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(ordersDir, "2025-03.xml"), []byte(orderExport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(invoicesDir, "2025-03.xml"), []byte(invoiceExport), 0o644))

	stockFile := filepath.Join(root, "stock.json")
	planFile := filepath.Join(root, "plan.json")
	require.NoError(t, os.WriteFile(stockFile, []byte(stockJSON), 0o644))
	require.NoError(t, os.WriteFile(planFile, []byte(planJSON), 0o644))

	return config.Dataset{
		OrdersDir:   ordersDir,
		InvoicesDir: invoicesDir,
		StockFile:   stockFile,
		PlanFile:    planFile,
	}
}

func TestFileLoaderLoad(t *testing.T) {
	log.SetupTestLogger()

	cfg := writeFixtures(t)
	loader := NewFileLoader(cfg, pohoda.NewParser(domain.DefaultRoster()))

	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Orders, 1)
	assert.Equal(t, "Karolina", snapshot.Orders[0].Salesperson)

	// The sponsoring invoice and its items are split off.
	require.Len(t, snapshot.Invoices, 1)
	assert.Equal(t, "25FV00042", snapshot.Invoices[0].InvoiceNumber)
	require.Len(t, snapshot.Sponsoring, 1)
	assert.Equal(t, "25FV00099", snapshot.Sponsoring[0].InvoiceNumber)

	require.Len(t, snapshot.InvoiceItems, 1)
	assert.Equal(t, "EN002", snapshot.InvoiceItems[0].ProductCode)
	require.Len(t, snapshot.SponsoringItems, 1)
	assert.Equal(t, "EN003", snapshot.SponsoringItems[0].ProductCode)

	require.Len(t, snapshot.Stock, 1)
	assert.Equal(t, "EN001", snapshot.Stock[0].Code)
	assert.Equal(t, 30.0, snapshot.Stock[0].DaysRemaining())

	require.Contains(t, snapshot.Plan, "2025-03")
	assert.Equal(t, "2025-03", snapshot.Plan["2025-03"].Month)
	assert.False(t, snapshot.Plan["2025-03"].TotalCZ.IsZero())
	assert.False(t, snapshot.LoadedAt.IsZero())
}

func TestFileLoaderLoadMissingStockFile(t *testing.T) {
	log.SetupTestLogger()

	cfg := writeFixtures(t)
	cfg.StockFile = filepath.Join(t.TempDir(), "missing.json")
	loader := NewFileLoader(cfg, pohoda.NewParser(domain.DefaultRoster()))

	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestFileLoaderLoadEmptyDirs(t *testing.T) {
	log.SetupTestLogger()

	root := t.TempDir()
	cfg := config.Dataset{
		OrdersDir:   root,
		InvoicesDir: root,
	}
	loader := NewFileLoader(cfg, pohoda.NewParser(domain.DefaultRoster()))

	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Orders)
	assert.Empty(t, snapshot.Invoices)
	assert.Empty(t, snapshot.Stock)
	assert.Empty(t, snapshot.Plan)
}
