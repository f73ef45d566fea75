package traveltime

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfinder/models"
)

func TestMock_ReturnsCopyOfMinutesPerOrigin(t *testing.T) {
	mock := NewTravelTimeApiClientMock(map[models.TransportMode]int{models.ModeTransit: 22})
	origins := []Origin{{ID: "a"}, {ID: "b"}}

	got, err := mock.TravelTimes(context.Background(), origins, models.Coordinates{Lat: 1, Lng: 2})
	require.NoError(t, err)

	require.Len(t, got, 2)
	got["a"][models.ModeTransit] = 99
	assert.Equal(t, 22, got["b"][models.ModeTransit])
	assert.Equal(t, 22, mock.Minutes[models.ModeTransit])
	assert.EqualValues(t, 1, mock.TravelTimeCalls())
	assert.Zero(t, mock.GeocodeCalls())
}

func TestMock_Geocode(t *testing.T) {
	mock := NewTravelTimeApiClientMock(nil)

	got, err := mock.Geocode(context.Background(), "Parliament Hill")
	require.NoError(t, err)
	assert.Equal(t, mockGeocode, *got)

	mock.Destination = nil
	_, err = mock.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrGeocodeNotFound)
	assert.EqualValues(t, 2, mock.GeocodeCalls())
}

func TestMock_Error(t *testing.T) {
	boom := errors.New("boom")
	mock := &TravelTimeApiClientMock{Err: boom}

	_, err := mock.TravelTimes(context.Background(), []Origin{{ID: "a"}}, models.Coordinates{})
	assert.ErrorIs(t, err, boom)
}

func TestMock_DelayHonoursContext(t *testing.T) {
	mock := &TravelTimeApiClientMock{Delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := mock.Geocode(ctx, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMock_FromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traveltime.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transit": 25, "driving": 11}`), 0o644))

	mock, err := NewTravelTimeApiClientMockFromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, map[models.TransportMode]int{models.ModeTransit: 25, models.ModeDriving: 11}, mock.Minutes)
}
