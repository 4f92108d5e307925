package dispatch_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"courier-dispatch/internal/apperr"
	"courier-dispatch/internal/domain"
	"courier-dispatch/internal/geo"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/dispatch"
)

type stubIndex struct {
	points map[string][2]float64
	near   []geo.Near
}

func (s *stubIndex) Point(_ context.Context, index, name string) (float64, float64, error) {
	p, ok := s.points[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s %q", geo.ErrPointNotFound, index, name)
	}
	return p[0], p[1], nil
}

func (s *stubIndex) QueryRadius(_ context.Context, _ string, _, _, radiusKm float64) ([]geo.Near, error) {
	out := make([]geo.Near, 0, len(s.near))
	for _, n := range s.near {
		if n.DistanceKm <= radiusKm {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubIndex) QueryKNearest(_ context.Context, _ string, _, _ float64, k int) ([]geo.Near, error) {
	if k > len(s.near) {
		k = len(s.near)
	}
	return s.near[:k], nil
}

type stubDirectory struct {
	couriers map[string]*domain.Courier
	stats    map[string]domain.CourierStats
}

func (s *stubDirectory) Get(_ context.Context, id string) (*domain.Courier, error) {
	return s.couriers[id], nil
}

func (s *stubDirectory) Stats(_ context.Context, id string) (domain.CourierStats, error) {
	return s.stats[id], nil
}

func fixture() (*stubIndex, *stubDirectory) {
	index := &stubIndex{
		points: map[string][2]float64{
			"pt-bastille": {2.369, 48.853},
		},
		// Ascending by distance, as the geo index returns them.
		near: []geo.Near{
			{Name: "dA", DistanceKm: 2.0},
			{Name: "dB", DistanceKm: 3.0},
			{Name: "dC", DistanceKm: 7.5},
		},
	}
	directory := &stubDirectory{
		couriers: map[string]*domain.Courier{
			"dA": {ID: "dA", Name: "Alice", Rating: 4.0},
			"dB": {ID: "dB", Name: "Boris", Rating: 4.9},
			"dC": {ID: "dC", Name: "Chloe", Rating: 5.0},
		},
		stats: map[string]domain.CourierStats{
			"dA": {InProgress: 1},
			"dB": {InProgress: 3},
		},
	}
	return index, directory
}

func TestService_SelectCandidates(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	svc := dispatch.NewService(index, directory, logx.Nop())

	got, err := svc.SelectCandidates(context.Background(), "pt-bastille", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "dA", got[0].CourierID)
	require.Equal(t, "Alice", got[0].Name)
	require.InDelta(t, 2.0, got[0].DistanceKm, 1e-9)
	require.InDelta(t, 4.0, got[0].Rating, 1e-9)
	require.Equal(t, int64(1), got[0].InProgress)

	require.Equal(t, "dB", got[1].CourierID)
	require.Equal(t, int64(3), got[1].InProgress)
}

func TestService_SelectCandidates_UnknownPoint(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	svc := dispatch.NewService(index, directory, logx.Nop())

	_, err := svc.SelectCandidates(context.Background(), "pt-ghost", 5)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_SelectCandidates_InvalidInput(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	svc := dispatch.NewService(index, directory, logx.Nop())

	_, err := svc.SelectCandidates(context.Background(), "", 5)
	require.ErrorIs(t, err, apperr.ErrInvalid)

	_, err = svc.SelectCandidates(context.Background(), "pt-bastille", 0)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_SelectCandidates_SkipsOrphanPosition(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	delete(directory.couriers, "dB")
	svc := dispatch.NewService(index, directory, logx.Nop())

	got, err := svc.SelectCandidates(context.Background(), "pt-bastille", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "dA", got[0].CourierID)
}

func TestService_SelectNearest(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	svc := dispatch.NewService(index, directory, logx.Nop())

	got, err := svc.SelectNearest(context.Background(), "pt-bastille", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "dA", got[0].CourierID)
	require.Equal(t, "dB", got[1].CourierID)

	_, err = svc.SelectNearest(context.Background(), "pt-bastille", 0)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_OptimalAssignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strategy domain.Strategy
		radiusKm float64
		want     string
		score    float64
	}{
		{name: "closest picks shortest distance", strategy: domain.StrategyClosest, radiusKm: 5, want: "dA", score: -2.0},
		{name: "best rated ignores distance", strategy: domain.StrategyBestRated, radiusKm: 10, want: "dC", score: 5.0},
		{name: "balanced trades rating for distance", strategy: domain.StrategyBalanced, radiusKm: 10, want: "dB", score: 6.8},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			index, directory := fixture()
			svc := dispatch.NewService(index, directory, logx.Nop())

			got, err := svc.OptimalAssignment(context.Background(), "pt-bastille", tt.radiusKm, tt.strategy)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.CourierID)
			require.InDelta(t, tt.score, got.Score, 1e-9)
		})
	}
}

func TestService_OptimalAssignment_TieBreaksOnID(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	// Same distance and rating for dA and dB: dA wins on ID order.
	index.near = []geo.Near{
		{Name: "dB", DistanceKm: 2.0},
		{Name: "dA", DistanceKm: 2.0},
	}
	directory.couriers["dA"].Rating = 4.5
	directory.couriers["dB"].Rating = 4.5

	svc := dispatch.NewService(index, directory, logx.Nop())

	got, err := svc.OptimalAssignment(context.Background(), "pt-bastille", 5, domain.StrategyBalanced)
	require.NoError(t, err)
	require.Equal(t, "dA", got.CourierID)
}

func TestService_OptimalAssignment_NoCandidates(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	index.near = nil
	svc := dispatch.NewService(index, directory, logx.Nop())

	_, err := svc.OptimalAssignment(context.Background(), "pt-bastille", 5, domain.StrategyClosest)
	require.ErrorIs(t, err, apperr.ErrNoCandidates)
}

func TestService_OptimalAssignment_UnknownStrategy(t *testing.T) {
	t.Parallel()

	index, directory := fixture()
	svc := dispatch.NewService(index, directory, logx.Nop())

	_, err := svc.OptimalAssignment(context.Background(), "pt-bastille", 5, domain.Strategy("fastest"))
	require.ErrorIs(t, err, apperr.ErrInvalid)
}
