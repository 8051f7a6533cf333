// Package pohoda reads the Pohoda accounting XML exports (order and invoice
// agendas) into the flat sales records the reporting pipeline works on.
package pohoda

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/pkg/utils"
)

// PriceLevelSponsoring marks invoices issued to sponsored athletes. They are
// reported separately from regular revenue.
const PriceLevelSponsoring = "Sponzoring"

// Parser converts Pohoda export documents into domain records.
type Parser struct {
	roster domain.Roster
}

func NewParser(roster domain.Roster) *Parser {
	return &Parser{roster: roster}
}

// newDecoder builds an XML decoder that honors the declared encoding. Pohoda
// exports are typically Windows-1250.
func newDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, errors.Wrapf(err, "unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	return decoder
}

// ParseOrders reads one order agenda export.
func (p *Parser) ParseOrders(r io.Reader) ([]domain.SalesRecord, []domain.LineItem, error) {
	var pack orderPack
	if err := newDecoder(r).Decode(&pack); err != nil {
		return nil, nil, errors.Wrap(err, "decoding order export")
	}

	records := make([]domain.SalesRecord, 0, len(pack.Items))
	items := make([]domain.LineItem, 0)

	for _, packItem := range pack.Items {
		if packItem.Order == nil {
			continue
		}
		record := p.parseOrder(*packItem.Order)
		records = append(records, record)
		items = append(items, parseItems(packItem.Order.Detail.Items, record, false)...)
	}

	return records, items, nil
}

// ParseInvoices reads one invoice agenda export. Sponsoring invoices come back
// in the same slice; callers split them by PriceLevel.
func (p *Parser) ParseInvoices(r io.Reader) ([]domain.SalesRecord, []domain.LineItem, error) {
	var pack invoicePack
	if err := newDecoder(r).Decode(&pack); err != nil {
		return nil, nil, errors.Wrap(err, "decoding invoice export")
	}

	records := make([]domain.SalesRecord, 0, len(pack.Items))
	items := make([]domain.LineItem, 0)

	for _, packItem := range pack.Items {
		if packItem.Invoice == nil {
			continue
		}
		record := p.parseInvoice(*packItem.Invoice)
		records = append(records, record)
		items = append(items, parseItems(packItem.Invoice.Detail.Items, record, true)...)
	}

	return records, items, nil
}

func (p *Parser) parseOrder(order orderElement) domain.SalesRecord {
	header := order.Header
	currency := documentCurrency(order.Summary)
	classification := domain.ClassifyDocument(header.NumberOrder, currency, header.Centre.IDs, p.roster)

	record := domain.SalesRecord{
		ID:          documentID(header.Number.NumberRequested, header.NumberOrder),
		OrderNumber: header.NumberOrder,
		Date:        header.Date,
		Currency:    currency,
		Centre:      header.Centre.IDs,
		Channel:     classification.Channel,
		Salesperson: classification.Salesperson,
		Market:      classification.Market,
		Supplier:    classification.Supplier,
		PaymentType: header.PaymentType.IDs,
		PriceLevel:  header.PriceLevel.IDs,
		IsExecuted:  header.IsExecuted == "true",
		IsDelivered: header.IsDelivered == "true",
	}
	applyAddress(&record, header.PartnerIdentity.Address)

	home := order.Summary.HomeCurrency
	if currency == domain.CurrencyEUR {
		foreign := order.Summary.ForeignCurrency
		record.TotalEUR = dec(foreign.PriceSum)
		record.TotalEURNet = dec(foreign.PriceLow).Add(dec(foreign.PriceHigh))
		// CZK equivalent booked by the accounting system.
		record.TotalCZK = dec(home.PriceNone).Add(dec(home.PriceLowSum)).Add(dec(home.PriceHighSum))
	} else {
		record.TotalCZK = dec(home.PriceLowSum).Add(dec(home.PriceHighSum))
		record.TotalCZKNet = dec(home.PriceLow).Add(dec(home.PriceHigh))
	}

	return record
}

func (p *Parser) parseInvoice(invoice invoiceElement) domain.SalesRecord {
	header := invoice.Header
	currency := documentCurrency(invoice.Summary)
	// Invoices classify by the linked order number so both agendas agree.
	classification := domain.ClassifyDocument(header.NumberOrder, currency, header.Centre.IDs, p.roster)

	record := domain.SalesRecord{
		ID:            documentID(header.Number.NumberRequested, header.SymVar),
		OrderNumber:   header.NumberOrder,
		InvoiceNumber: header.Number.NumberRequested,
		Date:          header.Date,
		DateDue:       header.DateDue,
		Currency:      currency,
		Centre:        header.Centre.IDs,
		Channel:       classification.Channel,
		Salesperson:   classification.Salesperson,
		Market:        classification.Market,
		Supplier:      classification.Supplier,
		PaymentType:   header.PaymentType.IDs,
		PriceLevel:    header.PriceLevel.IDs,
		IsPaid:        header.Liquidation.Date != "",
	}
	applyAddress(&record, header.PartnerIdentity.Address)

	home := invoice.Summary.HomeCurrency
	if currency == domain.CurrencyEUR {
		foreign := invoice.Summary.ForeignCurrency
		record.TotalEUR = dec(foreign.PriceSum)
		record.TotalEURNet = dec(foreign.PriceLow).Add(dec(foreign.PriceHigh))
		record.TotalCZK = dec(home.PriceNone).Add(dec(home.PriceLowSum)).Add(dec(home.PriceHighSum))
	} else {
		record.TotalCZK = dec(home.PriceNone).Add(dec(home.PriceLowSum)).Add(dec(home.PriceHighSum))
		record.TotalCZKNet = dec(home.PriceNone).Add(dec(home.PriceLow)).Add(dec(home.PriceHigh))
	}

	return record
}

// parseItems denormalizes the document lines. Lines without a product code
// (shipping, rounding, discounts) are skipped. Foreign currency totals exist
// only on invoice lines.
func parseItems(lines []documentItem, parent domain.SalesRecord, withForeign bool) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(lines))
	for _, line := range lines {
		if line.Code == "" {
			continue
		}

		item := domain.LineItem{
			OrderNumber:     parent.OrderNumber,
			InvoiceNumber:   parent.InvoiceNumber,
			Date:            parent.Date,
			Company:         parent.Company,
			Currency:        parent.Currency,
			Channel:         parent.Channel,
			Salesperson:     parent.Salesperson,
			Market:          parent.Market,
			Supplier:        parent.Supplier,
			ProductCode:     line.Code,
			ProductName:     line.Text,
			EAN:             line.StockItem.StockItem.EAN,
			Quantity:        dec(line.Quantity),
			Delivered:       dec(line.Delivered),
			Unit:            line.Unit,
			UnitPrice:       dec(line.HomeCurrency.UnitPrice),
			DiscountPercent: dec(line.DiscountPercentage),
		}

		if parent.Currency == domain.CurrencyEUR {
			if withForeign {
				item.TotalEUR = dec(line.ForeignCurrency.PriceSum)
				item.TotalEURNet = dec(line.ForeignCurrency.Price)
			}
		} else {
			item.TotalCZK = dec(line.HomeCurrency.PriceSum)
			item.TotalCZKNet = dec(line.HomeCurrency.Price)
		}

		items = append(items, item)
	}
	return items
}

func documentCurrency(summary docSummary) domain.Currency {
	if summary.ForeignCurrency.Currency.IDs == string(domain.CurrencyEUR) {
		return domain.CurrencyEUR
	}
	return domain.CurrencyCZK
}

func applyAddress(record *domain.SalesRecord, address partnerAddress) {
	record.Company = address.Company
	record.CustomerName = address.Name
	record.City = address.City
	record.Zip = address.Zip
	record.Country = address.Country.IDs
}

// dec parses a Pohoda decimal string, treating missing and malformed values
// as zero.
func dec(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// documentID picks the first available document number; exports with the
// numbering stripped still get a unique record ID.
func documentID(values ...string) string {
	if id := firstNonEmpty(values...); id != "" {
		return id
	}
	id, err := utils.GenerateID()
	if err != nil {
		return "unknown"
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
