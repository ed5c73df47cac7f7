package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatitudeProductionFactor(t *testing.T) {
	assert.Equal(t, 1700.0, LatitudeProductionFactor(25))
	assert.Equal(t, 1800.0, LatitudeProductionFactor(33.4))
	assert.Equal(t, 1800.0, LatitudeProductionFactor(36))
	assert.Equal(t, 1600.0, LatitudeProductionFactor(40))
	assert.Equal(t, 1300.0, LatitudeProductionFactor(45))
	assert.Equal(t, 1500.0, LatitudeProductionFactor(60))
}

func TestMonthlyShape(t *testing.T) {
	t.Run("northern hemisphere", func(t *testing.T) {
		shape := MonthlyShape(2026, 41.88, -87.63)
		var sum float64
		for _, f := range shape {
			sum += f
		}
		assert.InDelta(t, 1, sum, 1e-9)
		assert.Greater(t, shape[5], shape[11])
		assert.Greater(t, shape[6], shape[0])
	})

	t.Run("southern hemisphere", func(t *testing.T) {
		shape := MonthlyShape(2026, -33.87, 151.21)
		assert.Greater(t, shape[11], shape[5])
	})
}

func TestSolarEstimate(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	t.Run("invalid", func(t *testing.T) {
		c := NewClient()
		_, err := c.SolarEstimate(ctx, SolarRequest{Lat: 40, Lng: -90})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		_, err = c.SolarEstimate(ctx, SolarRequest{Lat: 91, Lng: -90, SystemCapacity: 5})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("no api key", func(t *testing.T) {
		c := NewClient(WithClock(now))
		est, err := c.SolarEstimate(ctx, SolarRequest{Lat: 40, Lng: -105, SystemCapacity: 10})
		require.NoError(t, err)
		assert.Equal(t, SourceEstimated, est.Source)
		assert.Equal(t, 16000.0, est.AnnualOutputKWH)
		require.Len(t, est.MonthlyOutputKWH, 12)
		var sum float64
		for _, m := range est.MonthlyOutputKWH {
			sum += m
		}
		assert.InDelta(t, 16000, sum, 1e-6)
	})

	t.Run("pvwatts", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "test-key", q.Get("api_key"))
			assert.Equal(t, "-105", q.Get("lon"))
			assert.Equal(t, "20", q.Get("tilt"))
			assert.Equal(t, "180", q.Get("azimuth"))
			assert.Equal(t, "14", q.Get("losses"))
			_, _ = w.Write([]byte(`{"outputs":{"ac_annual":14400,"ac_monthly":[800,900,1100,1300,1500,1600,1650,1500,1300,1050,850,850]}}`))
		}))
		defer ts.Close()

		c := NewClient(WithHTTPClient(ts.Client()), WithURLs(ts.URL, ts.URL, ts.URL), WithPVWattsKey("test-key"))
		est, err := c.SolarEstimate(ctx, SolarRequest{Lat: 40, Lng: -105, SystemCapacity: 10})
		require.NoError(t, err)
		assert.Equal(t, "nrel", est.Source)
		assert.Equal(t, 14400.0, est.AnnualOutputKWH)
		assert.Equal(t, 1650.0, est.MonthlyOutputKWH[6])
	})

	t.Run("pvwatts error falls back", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer ts.Close()

		c := NewClient(WithHTTPClient(ts.Client()), WithURLs(ts.URL, ts.URL, ts.URL), WithPVWattsKey("bad"), WithClock(now))
		est, err := c.SolarEstimate(ctx, SolarRequest{Lat: 45, Lng: -93, SystemCapacity: 5})
		require.NoError(t, err)
		assert.Equal(t, SourceEstimated, est.Source)
		assert.Equal(t, 6500.0, est.AnnualOutputKWH)
	})
}
