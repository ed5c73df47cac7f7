package utility

import (
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const (
	// superOffPeakDiscount is the share of the off-peak rate charged during
	// super off-peak hours.
	superOffPeakDiscount = 0.6
	// defaultExportFraction is used when net metering has no export rate set.
	defaultExportFraction = 0.75
	// defaultFlatRate stands in for a missing flat $/kWh.
	defaultFlatRate = 0.15
	// missing TOU tiers are derived from the flat rate
	offPeakFromFlat = 0.6
	onPeakFromFlat  = 1.5
)

// OffPeakRate is the flat rate in flat mode, otherwise the TOU off-peak rate.
func OffPeakRate(e types.EnergyConfig) float64 {
	if e.RateMode == types.RateModeFlat {
		return e.FlatRate.RatePerKWH
	}
	return e.TOURate.OffPeakRate
}

// OnPeakRate is the flat rate in flat mode, otherwise the TOU on-peak rate.
func OnPeakRate(e types.EnergyConfig) float64 {
	if e.RateMode == types.RateModeFlat {
		return e.FlatRate.RatePerKWH
	}
	return e.TOURate.OnPeakRate
}

// GridRateForPeriod returns the $/kWh charged during a period.
func GridRateForPeriod(period types.TOUPeriod, offPeakRate, onPeakRate float64) float64 {
	switch period {
	case types.PeriodSuperOffPeak:
		return offPeakRate * superOffPeakDiscount
	case types.PeriodPeak:
		return onPeakRate
	}
	return offPeakRate
}

// EffectiveRate is the flat-equivalent $/kWh of a tariff. TOU tariffs are
// weighted 6 hours off-peak, 13 hours partial-peak and 5 hours on-peak.
func EffectiveRate(e types.EnergyConfig) float64 {
	if e.RateMode == types.RateModeFlat {
		return e.FlatRate.RatePerKWH
	}
	r := e.TOURate
	return r.OffPeakRate*6/24 + r.PartialPeakRate*13/24 + r.OnPeakRate*5/24
}

// AverageRate is the midpoint of the off-peak and on-peak rates, or the flat
// rate.
func AverageRate(e types.EnergyConfig) float64 {
	if e.RateMode == types.RateModeFlat {
		return e.FlatRate.RatePerKWH
	}
	return (e.TOURate.OffPeakRate + e.TOURate.OnPeakRate) / 2
}

// BlendedRate is the $/kWh of a load running around the clock: 12 hours
// off-peak, 5 hours on-peak and 7 hours at the flat rate under TOU.
func BlendedRate(e types.EnergyConfig) float64 {
	if e.RateMode != types.RateModeTOU {
		return e.FlatRate.RatePerKWH
	}
	return (e.TOURate.OffPeakRate*12 + e.TOURate.OnPeakRate*5 + e.FlatRate.RatePerKWH*7) / 24
}

// ExportFraction is the share of the retail rate credited for exports.
func ExportFraction(e types.EnergyConfig) float64 {
	if e.NetMetering.ExportRatePercent == 0 {
		return defaultExportFraction
	}
	return e.NetMetering.ExportRatePercent
}

// WithDefaultRates fills unset rates so an energy load is never priced at
// zero. A missing flat rate becomes 0.15 $/kWh and missing off-peak or
// on-peak tiers are derived from the flat rate.
func WithDefaultRates(e types.EnergyConfig) types.EnergyConfig {
	if e.FlatRate.RatePerKWH <= 0 {
		e.FlatRate.RatePerKWH = defaultFlatRate
	}
	if e.TOURate.OffPeakRate <= 0 {
		e.TOURate.OffPeakRate = e.FlatRate.RatePerKWH * offPeakFromFlat
	}
	if e.TOURate.OnPeakRate <= 0 {
		e.TOURate.OnPeakRate = e.FlatRate.RatePerKWH * onPeakFromFlat
	}
	return e
}
