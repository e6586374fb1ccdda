package enums

import (
	"fmt"
	"strings"
)

// OrderStatus is a known kitchen/delivery stage. Orders store status as free
// text, so these values are the recognised vocabulary, not a constraint.
type OrderStatus string

const (
	OrderStatusOrdered    OrderStatus = "Ordered"
	OrderStatusPreparing  OrderStatus = "Preparing"
	OrderStatusBaking     OrderStatus = "Baking"
	OrderStatusReady      OrderStatus = "Ready"
	OrderStatusDelivering OrderStatus = "Delivering"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

var orderStatusProgression = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusPreparing,
	OrderStatusBaking,
	OrderStatusReady,
	OrderStatusDelivering,
	OrderStatusDelivered,
}

// OrderStatusProgression returns the stages in order.
func OrderStatusProgression() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusProgression))
	copy(out, orderStatusProgression)
	return out
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// Key is the lower-case identifier used by the tracking payload.
func (s OrderStatus) Key() string {
	return strings.ToLower(string(s))
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range orderStatusProgression {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus matches raw input case-insensitively.
func ParseOrderStatus(value string) (OrderStatus, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range orderStatusProgression {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
