package pohoda

// XML shapes of the Pohoda agenda exports. Element names match the Stormware
// schemas (data.xsd, order.xsd, invoice.xsd, type.xsd); namespaces are matched
// by local name.

type orderPack struct {
	Items []orderPackItem `xml:"dataPackItem"`
}

type orderPackItem struct {
	Order *orderElement `xml:"order"`
}

type orderElement struct {
	Header  orderHeader `xml:"orderHeader"`
	Detail  orderDetail `xml:"orderDetail"`
	Summary docSummary  `xml:"orderSummary"`
}

type orderHeader struct {
	NumberOrder     string          `xml:"numberOrder"`
	Number          documentNumber  `xml:"number"`
	Date            string          `xml:"date"`
	Centre          refIDs          `xml:"centre"`
	PartnerIdentity partnerIdentity `xml:"partnerIdentity"`
	PaymentType     refIDs          `xml:"paymentType"`
	PriceLevel      refIDs          `xml:"priceLevel"`
	IsExecuted      string          `xml:"isExecuted"`
	IsDelivered     string          `xml:"isDelivered"`
}

type orderDetail struct {
	Items []documentItem `xml:"orderItem"`
}

type invoicePack struct {
	Items []invoicePackItem `xml:"dataPackItem"`
}

type invoicePackItem struct {
	Invoice *invoiceElement `xml:"invoice"`
}

type invoiceElement struct {
	Header  invoiceHeader `xml:"invoiceHeader"`
	Detail  invoiceDetail `xml:"invoiceDetail"`
	Summary docSummary    `xml:"invoiceSummary"`
}

type invoiceHeader struct {
	Number          documentNumber  `xml:"number"`
	SymVar          string          `xml:"symVar"`
	NumberOrder     string          `xml:"numberOrder"`
	Date            string          `xml:"date"`
	DateDue         string          `xml:"dateDue"`
	Centre          refIDs          `xml:"centre"`
	PartnerIdentity partnerIdentity `xml:"partnerIdentity"`
	PaymentType     refIDs          `xml:"paymentType"`
	PriceLevel      refIDs          `xml:"priceLevel"`
	Liquidation     liquidation     `xml:"liquidation"`
}

type invoiceDetail struct {
	Items []documentItem `xml:"invoiceItem"`
}

type documentNumber struct {
	NumberRequested string `xml:"numberRequested"`
}

type refIDs struct {
	IDs string `xml:"ids"`
}

type liquidation struct {
	Date string `xml:"date"`
}

type partnerIdentity struct {
	Address partnerAddress `xml:"address"`
}

type partnerAddress struct {
	Company string `xml:"company"`
	Name    string `xml:"name"`
	City    string `xml:"city"`
	Street  string `xml:"street"`
	Zip     string `xml:"zip"`
	Country refIDs `xml:"country"`
}

type docSummary struct {
	HomeCurrency    currencyTotals  `xml:"homeCurrency"`
	ForeignCurrency foreignCurrency `xml:"foreignCurrency"`
}

// currencyTotals carries the VAT-band totals of a document summary. PriceLow
// and PriceHigh are net of VAT, the Sum variants include it, PriceNone is the
// zero-VAT band.
type currencyTotals struct {
	PriceNone    string `xml:"priceNone"`
	PriceLow     string `xml:"priceLow"`
	PriceLowSum  string `xml:"priceLowSum"`
	PriceHigh    string `xml:"priceHigh"`
	PriceHighSum string `xml:"priceHighSum"`
	PriceSum     string `xml:"priceSum"`
}

type foreignCurrency struct {
	Currency  refIDs `xml:"currency"`
	PriceLow  string `xml:"priceLow"`
	PriceHigh string `xml:"priceHigh"`
	PriceSum  string `xml:"priceSum"`
}

type documentItem struct {
	Text               string       `xml:"text"`
	Code               string       `xml:"code"`
	Quantity           string       `xml:"quantity"`
	Delivered          string       `xml:"delivered"`
	Unit               string       `xml:"unit"`
	DiscountPercentage string       `xml:"discountPercentage"`
	HomeCurrency       itemCurrency `xml:"homeCurrency"`
	ForeignCurrency    itemCurrency `xml:"foreignCurrency"`
	StockItem          stockItemRef `xml:"stockItem"`
}

type itemCurrency struct {
	UnitPrice string `xml:"unitPrice"`
	Price     string `xml:"price"`    // bez DPH
	PriceSum  string `xml:"priceSum"` // s DPH
}

type stockItemRef struct {
	StockItem stockItemDetail `xml:"stockItem"`
}

type stockItemDetail struct {
	EAN string `xml:"EAN"`
}
