package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, StatusPending.Valid())
	require.True(t, StatusAssigned.Valid())
	require.True(t, StatusDelivered.Valid())
	require.False(t, OrderStatus("canceled").Valid())
	require.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to assigned", StatusPending, StatusAssigned, true},
		{"assigned to delivered", StatusAssigned, StatusDelivered, true},
		{"pending to delivered skips", StatusPending, StatusDelivered, false},
		{"assigned to pending regresses", StatusAssigned, StatusPending, false},
		{"delivered is terminal", StatusDelivered, StatusAssigned, false},
		{"delivered to delivered", StatusDelivered, StatusDelivered, false},
		{"pending to pending", StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	t.Parallel()

	require.False(t, StatusPending.Terminal())
	require.False(t, StatusAssigned.Terminal())
	require.True(t, StatusDelivered.Terminal())
	require.False(t, OrderStatus("bogus").Terminal())
}
