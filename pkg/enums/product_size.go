package enums

import (
	"fmt"
	"strings"
)

// ProductSize selects a product price tier.
type ProductSize string

const (
	ProductSizeSmall  ProductSize = "Small"
	ProductSizeMedium ProductSize = "Medium"
	ProductSizeLarge  ProductSize = "Large"
)

var validProductSizes = []ProductSize{
	ProductSizeSmall,
	ProductSizeMedium,
	ProductSizeLarge,
}

// ProductSizes returns the tiers in menu order.
func ProductSizes() []ProductSize {
	out := make([]ProductSize, len(validProductSizes))
	copy(out, validProductSizes)
	return out
}

// String implements fmt.Stringer.
func (s ProductSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSize.
func (s ProductSize) IsValid() bool {
	for _, candidate := range validProductSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSize matches raw input case-insensitively.
func ParseProductSize(value string) (ProductSize, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validProductSizes {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product size %q", value)
}
