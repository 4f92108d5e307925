package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/positions"
	"courier-dispatch/internal/service/zone"
)

type spyTracker struct {
	updates int
	checks  int
	err     error
}

func (s *spyTracker) UpdatePosition(context.Context, string, float64, float64) error {
	s.updates++
	return s.err
}

func (s *spyTracker) CheckInZone(context.Context, string) (zone.Status, error) {
	s.checks++
	return zone.Status{InZone: true}, nil
}

func TestMakePositionsKafka_DelegatesToProcessor(t *testing.T) {
	t.Parallel()

	tracker := &spyTracker{}
	p := positions.NewProcessor(tracker, nil, logx.Nop())

	h := makePositionsKafka(p)

	err := h(context.Background(), positions.Event{CourierID: "d1", Lon: 2.35, Lat: 48.85})
	require.NoError(t, err)
	require.Equal(t, 1, tracker.updates)
	require.Equal(t, 1, tracker.checks)
}

func TestMakePositionsKafka_PropagatesError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	tracker := &spyTracker{err: sentinel}
	p := positions.NewProcessor(tracker, nil, logx.Nop())

	h := makePositionsKafka(p)

	err := h(context.Background(), positions.Event{CourierID: "d1", Lon: 2.35, Lat: 48.85})
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 0, tracker.checks)
}
