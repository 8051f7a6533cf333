package domain

import "strings"

// Brand is a derived classification computed from the product name; it is
// never stored in the exports.
type Brand string

const (
	BrandEnervit  Brand = "ENERVIT"
	BrandRoyalbay Brand = "ROYALBAY"
	BrandVitar    Brand = "VITAR"
)

// Brands lists the known brands in presentation order.
var Brands = []Brand{BrandEnervit, BrandRoyalbay, BrandVitar}

// BrandOf classifies a product name by keyword. Anything that matches neither
// storefront brand defaults to VITAR.
func BrandOf(productName string) Brand {
	name := strings.ToLower(productName)

	switch {
	case strings.Contains(name, "enervit"):
		return BrandEnervit
	case strings.Contains(name, "royalbay"), strings.Contains(name, "royal bay"):
		return BrandRoyalbay
	default:
		return BrandVitar
	}
}
