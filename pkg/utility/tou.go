package utility

import (
	"time"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// Tariff classifies the hours of a day and prices them.
type Tariff struct {
	energy       types.EnergyConfig
	peak         types.HourWindow
	superOffPeak types.HourWindow
}

// NewTariff builds a tariff from the energy rates and the optimizer's TOU
// schedule.
func NewTariff(energy types.EnergyConfig, optimizer types.OptimizerConfig) Tariff {
	return Tariff{
		energy:       energy,
		peak:         optimizer.PeakWindow(),
		superOffPeak: optimizer.SuperOffPeakWindow(),
	}
}

// Period classifies an hour of the day. Peak wins over super off-peak when
// the windows overlap.
func (t Tariff) Period(hour int) types.TOUPeriod {
	if t.peak.Contains(hour) {
		return types.PeriodPeak
	}
	if t.superOffPeak.Contains(hour) {
		return types.PeriodSuperOffPeak
	}
	return types.PeriodOffPeak
}

// RateForPeriod returns the grid $/kWh for a period.
func (t Tariff) RateForPeriod(period types.TOUPeriod) float64 {
	return GridRateForPeriod(period, OffPeakRate(t.energy), OnPeakRate(t.energy))
}

// RateForHour returns the grid $/kWh for an hour of the day.
func (t Tariff) RateForHour(hour int) float64 {
	return t.RateForPeriod(t.Period(hour))
}

// ExportRate returns the credit for exporting a kWh at the given grid rate.
func (t Tariff) ExportRate(gridRate float64) float64 {
	return gridRate * ExportFraction(t.energy)
}

// HourPrice is the price of one hour of a day.
type HourPrice struct {
	Hour                int             `json:"hour"`
	TSStart             time.Time       `json:"tsStart"`
	TSEnd               time.Time       `json:"tsEnd"`
	Period              types.TOUPeriod `json:"period"`
	DollarsPerKWH       float64         `json:"dollarsPerKWH"`
	ExportDollarsPerKWH float64         `json:"exportDollarsPerKWH"`
}

// Schedule returns the 24 hourly prices for the day containing day, in day's
// location.
func (t Tariff) Schedule(day time.Time) []HourPrice {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	prices := make([]HourPrice, 0, 24)
	for h := 0; h < 24; h++ {
		rate := t.RateForHour(h)
		ts := start.Add(time.Duration(h) * time.Hour)
		prices = append(prices, HourPrice{
			Hour:                h,
			TSStart:             ts,
			TSEnd:               ts.Add(time.Hour),
			Period:              t.Period(h),
			DollarsPerKWH:       rate,
			ExportDollarsPerKWH: t.ExportRate(rate),
		})
	}
	return prices
}
