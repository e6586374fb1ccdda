package enums

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrderStatusIsCaseInsensitive(t *testing.T) {
	status, err := ParseOrderStatus(" baking ")
	require.NoError(t, err)
	require.Equal(t, OrderStatusBaking, status)
	require.Equal(t, "baking", status.Key())

	_, err = ParseOrderStatus("Burnt")
	require.Error(t, err)
}

func TestOrderStatusProgressionOrder(t *testing.T) {
	stages := OrderStatusProgression()
	require.Len(t, stages, 6)
	require.Equal(t, OrderStatusOrdered, stages[0])
	require.Equal(t, OrderStatusDelivered, stages[5])

	stages[0] = "mutated"
	require.Equal(t, OrderStatusOrdered, OrderStatusProgression()[0])
}

func TestParseProductSize(t *testing.T) {
	size, err := ParseProductSize("LARGE")
	require.NoError(t, err)
	require.Equal(t, ProductSizeLarge, size)
	require.True(t, size.IsValid())

	_, err = ParseProductSize("Family")
	require.Error(t, err)
}

func TestParseRoleIsExact(t *testing.T) {
	role, err := ParseRole("Staff")
	require.NoError(t, err)
	require.Equal(t, RoleStaff, role)

	_, err = ParseRole("staff")
	require.Error(t, err)
}
