package enums

import "fmt"

// ProductStatus tracks the stock-derived lifecycle of a catalog product.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "ACTIVE"
	ProductStatusLowStock   ProductStatus = "LOW_STOCK"
	ProductStatusOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// LowStockThreshold is the quantity below which a product is flagged LOW_STOCK.
const LowStockThreshold = 10

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusLowStock,
	ProductStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// DeriveProductStatus maps a stock quantity onto the canonical status:
// zero is OUT_OF_STOCK, anything below the threshold is LOW_STOCK, and
// everything else is ACTIVE.
func DeriveProductStatus(quantity int) ProductStatus {
	switch {
	case quantity <= 0:
		return ProductStatusOutOfStock
	case quantity < LowStockThreshold:
		return ProductStatusLowStock
	default:
		return ProductStatusActive
	}
}
