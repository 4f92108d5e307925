package zone_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/config"
	"courier-dispatch/internal/geo"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/zone"
)

// parisMonitor is a 5km zone around the Paris centre base point.
var parisMonitor = config.Monitor{
	Interval:      10 * time.Second,
	BaseLon:       2.3522,
	BaseLat:       48.8566,
	MaxDistanceKm: 5,
}

type stubIndex struct {
	mu     sync.Mutex
	points map[string][2]float64
}

func newStubIndex() *stubIndex {
	return &stubIndex{points: map[string][2]float64{}}
}

func (s *stubIndex) UpsertPoint(_ context.Context, _, name string, lon, lat float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[name] = [2]float64{lon, lat}
	return nil
}

func (s *stubIndex) Point(_ context.Context, index, name string) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.points[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s %q", geo.ErrPointNotFound, index, name)
	}
	return p[0], p[1], nil
}

type stubLister struct {
	ids []string
}

func (s *stubLister) ListIDs(context.Context) ([]string, error) {
	return s.ids, nil
}

type fakeCounter struct {
	mu sync.Mutex
	n  int
}

func (c *fakeCounter) Inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *fakeCounter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestService_UpdatePosition(t *testing.T) {
	t.Parallel()

	index := newStubIndex()
	svc := zone.NewService(index, parisMonitor, nil, logx.Nop())

	require.NoError(t, svc.UpdatePosition(context.Background(), "d1", 2.36, 48.85))

	lon, lat, err := index.Point(context.Background(), geo.CourierPositionsIndex, "d1")
	require.NoError(t, err)
	require.InDelta(t, 2.36, lon, 1e-9)
	require.InDelta(t, 48.85, lat, 1e-9)

	// Last write wins.
	require.NoError(t, svc.UpdatePosition(context.Background(), "d1", 2.40, 48.86))
	lon, _, err = index.Point(context.Background(), geo.CourierPositionsIndex, "d1")
	require.NoError(t, err)
	require.InDelta(t, 2.40, lon, 1e-9)
}

func TestService_UpdatePosition_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	svc := zone.NewService(newStubIndex(), parisMonitor, nil, logx.Nop())

	require.ErrorIs(t, svc.UpdatePosition(context.Background(), "d1", 181, 48.85), apperr.ErrInvalid)
	require.ErrorIs(t, svc.UpdatePosition(context.Background(), "d1", 2.35, -91), apperr.ErrInvalid)
	require.ErrorIs(t, svc.UpdatePosition(context.Background(), "", 2.35, 48.85), apperr.ErrInvalid)
}

func TestService_CheckInZone(t *testing.T) {
	t.Parallel()

	index := newStubIndex()
	alerts := &fakeCounter{}
	svc := zone.NewService(index, parisMonitor, alerts, logx.Nop())

	// Louvre, about 1km from base: inside.
	require.NoError(t, svc.UpdatePosition(context.Background(), "d-in", 2.3376, 48.8606))
	// Saint-Denis, about 9km out: outside.
	require.NoError(t, svc.UpdatePosition(context.Background(), "d-out", 2.359, 48.936))

	st, err := svc.CheckInZone(context.Background(), "d-in")
	require.NoError(t, err)
	require.True(t, st.InZone)
	require.Less(t, st.DistanceKm, 5.0)
	require.InDelta(t, 5.0, st.MaxDistanceKm, 1e-9)
	require.Equal(t, 0, alerts.value())

	st, err = svc.CheckInZone(context.Background(), "d-out")
	require.NoError(t, err)
	require.False(t, st.InZone)
	require.Greater(t, st.DistanceKm, 5.0)
	require.Equal(t, 1, alerts.value())
}

func TestService_CheckInZone_NoPosition(t *testing.T) {
	t.Parallel()

	svc := zone.NewService(newStubIndex(), parisMonitor, nil, logx.Nop())

	_, err := svc.CheckInZone(context.Background(), "ghost")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMonitor_Sweep(t *testing.T) {
	t.Parallel()

	index := newStubIndex()
	alerts := &fakeCounter{}
	svc := zone.NewService(index, parisMonitor, alerts, logx.Nop())

	require.NoError(t, svc.UpdatePosition(context.Background(), "d1", 2.3376, 48.8606))
	require.NoError(t, svc.UpdatePosition(context.Background(), "d2", 2.359, 48.936))

	// d3 has no position yet and must be skipped silently.
	lister := &stubLister{ids: []string{"d1", "d2", "d3"}}
	mon := zone.NewMonitor(svc, lister, time.Second, logx.Nop())

	mon.Sweep(context.Background())
	require.Equal(t, 1, alerts.value())

	mon.Sweep(context.Background())
	require.Equal(t, 2, alerts.value())
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	svc := zone.NewService(newStubIndex(), parisMonitor, nil, logx.Nop())
	mon := zone.NewMonitor(svc, &stubLister{}, time.Millisecond, logx.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
