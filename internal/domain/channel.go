package domain

import "strings"

// Channel is the sales channel of a document, derived from the Pohoda order
// number prefix.
type Channel string

const (
	ChannelEshopEnervitCZ  Channel = "ESHOP_ENERVIT_CZ"
	ChannelEshopEnervitSK  Channel = "ESHOP_ENERVIT_SK"
	ChannelEshopRoyalbayCZ Channel = "ESHOP_ROYALBAY_CZ"
	ChannelEshopRoyalbaySK Channel = "ESHOP_ROYALBAY_SK"
	ChannelB2B             Channel = "B2B"
)

// Supplier of the goods sold through a channel.
type Supplier string

const (
	SupplierEnervit Supplier = "ENERVIT"
	SupplierAries   Supplier = "ARIES"
	SupplierVitar   Supplier = "VITAR"
)

// SalespersonFallback labels B2B documents that no centre code attributes to
// a concrete salesperson.
const SalespersonFallback = "VITAR Sport"

// Classification is the channel/salesperson/market/supplier tuple derived
// from a document header.
type Classification struct {
	Channel     Channel
	Salesperson string
	Market      Market
	Supplier    Supplier
}

// Roster maps Pohoda centre ("Kdo řeší") codes to salesperson names. Unknown
// non-empty codes resolve to Unknown, empty codes to Fallback.
type Roster struct {
	ByCentre map[string]string
	Unknown  string
	Fallback string
}

// DefaultRoster is the mapping agreed with the back office.
func DefaultRoster() Roster {
	return Roster{
		ByCentre: map[string]string{
			"KPR": "Karolina",
			"JGO": "Jirka",
			"OJO": "Štěpán",
		},
		Unknown:  "Štěpán",
		Fallback: SalespersonFallback,
	}
}

// Resolve maps a centre code to a salesperson name.
func (r Roster) Resolve(centre string) string {
	code := strings.ToUpper(strings.TrimSpace(centre))
	if code == "" {
		return r.Fallback
	}
	if name, ok := r.ByCentre[code]; ok {
		return name
	}
	return r.Unknown
}

// Order number prefixes of the e-shop storefronts. Everything else is B2B.
const (
	prefixEshopEnervitCZ = "112"
	prefixEshopEnervitSK = "122"
	prefixEshopRoyalbay  = "222"
)

// ClassifyDocument derives the sales channel from the order number prefix,
// the market from the currency and, for B2B, the salesperson from the centre
// ("Kdo řeší") code. Invoices reuse the linked order number so both document
// kinds classify identically.
func ClassifyDocument(orderNumber string, currency Currency, centre string, roster Roster) Classification {
	switch {
	case strings.HasPrefix(orderNumber, prefixEshopEnervitCZ):
		return Classification{Channel: ChannelEshopEnervitCZ, Market: MarketCZ, Supplier: SupplierEnervit}
	case strings.HasPrefix(orderNumber, prefixEshopEnervitSK):
		return Classification{Channel: ChannelEshopEnervitSK, Market: MarketSK, Supplier: SupplierEnervit}
	case strings.HasPrefix(orderNumber, prefixEshopRoyalbay):
		if currency == CurrencyEUR {
			return Classification{Channel: ChannelEshopRoyalbaySK, Market: MarketSK, Supplier: SupplierAries}
		}
		return Classification{Channel: ChannelEshopRoyalbayCZ, Market: MarketCZ, Supplier: SupplierAries}
	}

	market := MarketCZ
	if currency == CurrencyEUR {
		market = MarketSK
	}

	return Classification{
		Channel:     ChannelB2B,
		Salesperson: roster.Resolve(centre),
		Market:      market,
		Supplier:    SupplierVitar,
	}
}
