//go:build integration

package geo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"courier-dispatch/internal/geo"
)

// Paris landmarks; distances below are approximate great-circle values.
const (
	louvreLon = 2.3376
	louvreLat = 48.8606

	bastilleLon = 2.3688
	bastilleLat = 48.8532

	orlyLon = 2.3795
	orlyLat = 48.7262
)

type GeoIndexSuite struct {
	suite.Suite
	index *geo.Index
}

func (s *GeoIndexSuite) SetupSuite() {
	s.Require().NotNil(tcClient, "tcClient must be initialized in TestMain")
	s.index = geo.NewIndex(tcClient)
}

func (s *GeoIndexSuite) SetupTest() {
	s.Require().NoError(tcClient.FlushDB(context.Background()).Err())
}

func (s *GeoIndexSuite) TestUpsertAndPoint() {
	ctx := context.Background()

	err := s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, "d1", louvreLon, louvreLat)
	s.Require().NoError(err)

	lon, lat, err := s.index.Point(ctx, geo.CourierPositionsIndex, "d1")
	s.Require().NoError(err)
	// GEOADD stores coordinates with ~0.6m precision.
	s.InDelta(louvreLon, lon, 1e-4)
	s.InDelta(louvreLat, lat, 1e-4)
}

func (s *GeoIndexSuite) TestPointNotFound() {
	_, _, err := s.index.Point(context.Background(), geo.CourierPositionsIndex, "ghost")
	s.ErrorIs(err, geo.ErrPointNotFound)
}

func (s *GeoIndexSuite) TestUpsertMovesPoint() {
	ctx := context.Background()

	s.Require().NoError(s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, "d1", louvreLon, louvreLat))
	s.Require().NoError(s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, "d1", bastilleLon, bastilleLat))

	lon, lat, err := s.index.Point(ctx, geo.CourierPositionsIndex, "d1")
	s.Require().NoError(err)
	s.InDelta(bastilleLon, lon, 1e-4)
	s.InDelta(bastilleLat, lat, 1e-4)
}

func (s *GeoIndexSuite) seedCouriers() {
	ctx := context.Background()
	s.Require().NoError(s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, "near", louvreLon, louvreLat))
	s.Require().NoError(s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, "mid", bastilleLon, bastilleLat))
	s.Require().NoError(s.index.UpsertPoint(ctx, geo.CourierPositionsIndex, "far", orlyLon, orlyLat))
}

func (s *GeoIndexSuite) TestQueryRadiusAscending() {
	s.seedCouriers()

	// Centered on the Louvre: "near" at ~0km, "mid" at ~2.4km, "far" (Orly,
	// ~15km out) excluded by the 5km radius.
	got, err := s.index.QueryRadius(context.Background(), geo.CourierPositionsIndex, louvreLon, louvreLat, 5)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("near", got[0].Name)
	s.Equal("mid", got[1].Name)
	s.Less(got[0].DistanceKm, got[1].DistanceKm)
	s.InDelta(2.4, got[1].DistanceKm, 0.3)
}

func (s *GeoIndexSuite) TestQueryRadiusEmpty() {
	s.seedCouriers()

	got, err := s.index.QueryRadius(context.Background(), geo.CourierPositionsIndex, 139.69, 35.68, 5)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *GeoIndexSuite) TestQueryKNearest() {
	s.seedCouriers()

	got, err := s.index.QueryKNearest(context.Background(), geo.CourierPositionsIndex, louvreLon, louvreLat, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("near", got[0].Name)
	s.Equal("mid", got[1].Name)

	got, err = s.index.QueryKNearest(context.Background(), geo.CourierPositionsIndex, louvreLon, louvreLat, 10)
	s.Require().NoError(err)
	s.Len(got, 3)

	got, err = s.index.QueryKNearest(context.Background(), geo.CourierPositionsIndex, louvreLon, louvreLat, 0)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *GeoIndexSuite) TestSeparateIndexes() {
	ctx := context.Background()

	s.Require().NoError(s.index.UpsertPoint(ctx, geo.DeliveryPointsIndex, "louvre", louvreLon, louvreLat))

	_, _, err := s.index.Point(ctx, geo.CourierPositionsIndex, "louvre")
	s.ErrorIs(err, geo.ErrPointNotFound)

	lon, lat, err := s.index.Point(ctx, geo.DeliveryPointsIndex, "louvre")
	s.Require().NoError(err)
	s.InDelta(louvreLon, lon, 1e-4)
	s.InDelta(louvreLat, lat, 1e-4)
}

func TestGeoIndexSuite(t *testing.T) {
	suite.Run(t, new(GeoIndexSuite))
}
