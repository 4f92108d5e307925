package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/domain"
)

func TestOrderFields_ParseOrder(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	o := &domain.Order{
		ID:          "c1",
		ClientID:    "client-7",
		Destination: "Marais",
		Amount:      23.5,
		CreatedAt:   created,
		Status:      domain.StatusAssigned,
		CourierID:   "d3",
	}

	fields := orderFields(o)
	asStrings := make(map[string]string, len(fields))
	for k, v := range fields {
		switch x := v.(type) {
		case string:
			asStrings[k] = x
		case float64:
			asStrings[k] = "23.5"
		}
	}

	got := parseOrder(asStrings)
	require.Equal(t, o.ID, got.ID)
	require.Equal(t, o.ClientID, got.ClientID)
	require.Equal(t, o.Destination, got.Destination)
	require.InDelta(t, o.Amount, got.Amount, 1e-9)
	require.True(t, got.CreatedAt.Equal(created))
	require.Equal(t, domain.StatusAssigned, got.Status)
	require.Equal(t, "d3", got.CourierID)
}

func TestOrderFields_PendingHasNoCourier(t *testing.T) {
	t.Parallel()

	o := &domain.Order{ID: "c2", Status: domain.StatusPending, CreatedAt: time.Now()}
	fields := orderFields(o)
	_, ok := fields["courier_id"]
	require.False(t, ok)
}
