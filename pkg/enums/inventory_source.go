package enums

import "fmt"

// InventorySource records how an item entered a user's inventory and governs
// which mutations it permits.
type InventorySource string

const (
	InventorySourceManual    InventorySource = "MANUAL"
	InventorySourcePurchased InventorySource = "PURCHASED"
)

var validInventorySources = []InventorySource{
	InventorySourceManual,
	InventorySourcePurchased,
}

// String implements fmt.Stringer.
func (s InventorySource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InventorySource.
func (s InventorySource) IsValid() bool {
	for _, candidate := range validInventorySources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInventorySource converts raw input into an InventorySource.
func ParseInventorySource(value string) (InventorySource, error) {
	for _, candidate := range validInventorySources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory source %q", value)
}
