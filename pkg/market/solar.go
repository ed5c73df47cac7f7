package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// ErrInvalidRequest is returned for solar requests missing required fields.
var ErrInvalidRequest = errors.New("invalid request")

const (
	sourceNREL      = "nrel"
	SourceEstimated = "estimated"

	defaultTilt    = 20
	defaultAzimuth = 180
)

// SolarRequest describes the array to estimate.
type SolarRequest struct {
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	SystemCapacity float64  `json:"systemCapacity"`
	Tilt           *float64 `json:"tilt,omitempty"`
	Azimuth        *float64 `json:"azimuth,omitempty"`
}

// Validate checks the request.
func (r SolarRequest) Validate() error {
	if r.SystemCapacity <= 0 {
		return fmt.Errorf("%w: systemCapacity must be positive", ErrInvalidRequest)
	}
	if r.Lat < -90 || r.Lat > 90 || r.Lng < -180 || r.Lng > 180 {
		return fmt.Errorf("%w: lat/lng out of range", ErrInvalidRequest)
	}
	return nil
}

func (r SolarRequest) tilt() float64 {
	if r.Tilt == nil {
		return defaultTilt
	}
	return *r.Tilt
}

func (r SolarRequest) azimuth() float64 {
	if r.Azimuth == nil {
		return defaultAzimuth
	}
	return *r.Azimuth
}

type pvwattsResponse struct {
	Errors  []string `json:"errors"`
	Outputs struct {
		ACMonthly []float64 `json:"ac_monthly"`
		ACAnnual  float64   `json:"ac_annual"`
	} `json:"outputs"`
}

// SolarEstimate returns the production of an array from PVWatts, or from a
// latitude heuristic when no API key is set or the API fails. It only errors
// on invalid requests.
func (c *Client) SolarEstimate(ctx context.Context, r SolarRequest) (types.SolarEstimate, error) {
	if err := r.Validate(); err != nil {
		return types.SolarEstimate{}, err
	}
	if c.pvwattsKey == "" {
		log.Ctx(ctx).DebugContext(ctx, "no pvwatts api key, estimating solar output")
		return c.estimateSolar(r), nil
	}

	est, err := c.fetchPVWatts(ctx, r)
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to fetch pvwatts estimate", slog.Any("error", err))
		return c.estimateSolar(r), nil
	}
	return est, nil
}

func (c *Client) fetchPVWatts(ctx context.Context, r SolarRequest) (types.SolarEstimate, error) {
	params := url.Values{}
	params.Set("api_key", c.pvwattsKey)
	params.Set("lat", strconv.FormatFloat(r.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(r.Lng, 'f', -1, 64))
	params.Set("system_capacity", strconv.FormatFloat(r.SystemCapacity, 'f', -1, 64))
	params.Set("azimuth", strconv.FormatFloat(r.azimuth(), 'f', -1, 64))
	params.Set("tilt", strconv.FormatFloat(r.tilt(), 'f', -1, 64))
	params.Set("array_type", "1")
	params.Set("module_type", "1")
	params.Set("losses", "14")

	var resp pvwattsResponse
	if err := c.getJSON(ctx, c.pvwattsURL+"?"+params.Encode(), &resp); err != nil {
		return types.SolarEstimate{}, fmt.Errorf("pvwatts: %w", err)
	}
	if len(resp.Errors) > 0 {
		return types.SolarEstimate{}, fmt.Errorf("pvwatts: %s", resp.Errors[0])
	}
	if len(resp.Outputs.ACMonthly) != 12 || resp.Outputs.ACAnnual <= 0 {
		return types.SolarEstimate{}, errors.New("pvwatts: invalid response")
	}
	return types.SolarEstimate{
		SystemSizeKW:     r.SystemCapacity,
		AnnualOutputKWH:  resp.Outputs.ACAnnual,
		MonthlyOutputKWH: resp.Outputs.ACMonthly,
		Source:           sourceNREL,
	}, nil
}

// LatitudeProductionFactor is the rough annual kWh per installed kW at a
// latitude.
func LatitudeProductionFactor(lat float64) float64 {
	switch {
	case lat >= 32 && lat <= 36:
		return 1800
	case lat >= 36 && lat <= 42:
		return 1600
	case lat >= 42 && lat <= 48:
		return 1300
	case lat < 32:
		return 1700
	}
	return 1500
}

func (c *Client) estimateSolar(r SolarRequest) types.SolarEstimate {
	annual := r.SystemCapacity * LatitudeProductionFactor(r.Lat)
	shape := MonthlyShape(c.now().Year(), r.Lat, r.Lng)
	monthly := make([]float64, 12)
	for i, f := range shape {
		monthly[i] = f * annual
	}
	return types.SolarEstimate{
		SystemSizeKW:     r.SystemCapacity,
		AnnualOutputKWH:  annual,
		MonthlyOutputKWH: monthly,
		Source:           SourceEstimated,
	}
}

// MonthlyShape is the share of a year's sunlight falling in each month at a
// site, from the sine of the sun's altitude sampled every hour of the 15th
// of each month. Sites with no measurable sun use the default shape.
func MonthlyShape(year int, lat, lng float64) [12]float64 {
	var weights [12]float64
	var total float64
	for m := range 12 {
		day := time.Date(year, time.Month(m+1), 15, 0, 0, 0, 0, time.UTC)
		days := float64(day.AddDate(0, 1, -day.Day()).Day())

		var irradiance float64
		for h := range 24 {
			pos := suncalc.GetPosition(day.Add(time.Duration(h)*time.Hour+30*time.Minute), lat, lng)
			if s := math.Sin(pos.Altitude); s > 0 {
				irradiance += s
			}
		}
		weights[m] = irradiance * days
		total += weights[m]
	}
	if total == 0 {
		return types.MonthlySolarFactors
	}
	for m := range weights {
		weights[m] /= total
	}
	return weights
}
