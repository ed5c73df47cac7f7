package types

import (
	"fmt"
)

// RateMode selects the utility tariff shape.
type RateMode string

const (
	RateModeFlat RateMode = "flat"
	RateModeTOU  RateMode = "tou"
)

type FlatRate struct {
	RatePerKWH float64 `json:"ratePerKwh"`
}

// TOURate is a three tier time-of-use tariff. The hour strings are display
// labels only.
type TOURate struct {
	OffPeakRate      float64 `json:"offPeakRate"`
	OffPeakHours     string  `json:"offPeakHours"`
	PartialPeakRate  float64 `json:"partialPeakRate"`
	PartialPeakHours string  `json:"partialPeakHours"`
	OnPeakRate       float64 `json:"onPeakRate"`
	OnPeakHours      string  `json:"onPeakHours"`
}

type NetMeteringConfig struct {
	Enabled bool `json:"enabled"`
	// ExportRatePercent is the fraction of the retail rate credited.
	ExportRatePercent float64 `json:"exportRatePercent"`
	AnnualTrueUp      bool    `json:"annualTrueUp"`
}

// EnergyConfig describes the utility tariff.
type EnergyConfig struct {
	RateMode    RateMode          `json:"rateMode"`
	FlatRate    FlatRate          `json:"flatRate"`
	TOURate     TOURate           `json:"touRate"`
	NetMetering NetMeteringConfig `json:"netMetering"`
}

// EnergyCalculation is the monthly energy balance.
type EnergyCalculation struct {
	MonthlyVehicleKWH           float64 `json:"monthlyVehicleKwh"`
	MonthlySolarKWH             float64 `json:"monthlySolarKwh"`
	MonthlyGridImportKWH        float64 `json:"monthlyGridImportKwh"`
	MonthlyExcessSolarKWH       float64 `json:"monthlyExcessSolarKwh"`
	MonthlyGridCost             float64 `json:"monthlyGridCost"`
	MonthlyExportCredit         float64 `json:"monthlyExportCredit"`
	MonthlyNetEnergyCost        float64 `json:"monthlyNetEnergyCost"`
	BatteryCapacityKWH          float64 `json:"batteryCapacityKwh"`
	BatteryUsableKWH            float64 `json:"batteryUsableKwh"`
	MonthlyBatteryChargeKWH     float64 `json:"monthlyBatteryChargeKwh"`
	MonthlyBatteryDischargeKWH  float64 `json:"monthlyBatteryDischargeKwh"`
	MonthlyBatterySavings       float64 `json:"monthlyBatterySavings"`
	MonthlyBatteryAmortizedCost float64 `json:"monthlyBatteryAmortizedCost"`
}

// MonthlyEnergyData is one calendar month of the seasonal breakdown, rounded
// to whole kWh.
type MonthlyEnergyData struct {
	Month              string  `json:"month"`
	SolarGeneration    float64 `json:"solarGeneration"`
	VehicleConsumption float64 `json:"vehicleConsumption"`
	GridImport         float64 `json:"gridImport"`
	GridExport         float64 `json:"gridExport"`
	BatteryCharge      float64 `json:"batteryCharge"`
	BatteryDischarge   float64 `json:"batteryDischarge"`
}

// DefaultEnergyConfig returns a $0.25 flat tariff with net metering.
func DefaultEnergyConfig() EnergyConfig {
	return EnergyConfig{
		RateMode: RateModeFlat,
		FlatRate: FlatRate{RatePerKWH: 0.25},
		TOURate: TOURate{
			OffPeakRate:      0.15,
			OffPeakHours:     "12am-6am",
			PartialPeakRate:  0.3,
			PartialPeakHours: "6am-4pm, 9pm-12am",
			OnPeakRate:       0.45,
			OnPeakHours:      "4pm-9pm",
		},
		NetMetering: NetMeteringConfig{
			Enabled:           true,
			ExportRatePercent: 0.75,
			AnnualTrueUp:      true,
		},
	}
}

// WithRateMode switches between flat and time-of-use pricing.
func (c EnergyConfig) WithRateMode(m RateMode) EnergyConfig {
	c.RateMode = m
	return c
}

// WithFlatRate sets the flat $/kWh.
func (c EnergyConfig) WithFlatRate(rate float64) EnergyConfig {
	c.FlatRate.RatePerKWH = rate
	return c
}

// WithTOURate replaces the TOU tiers.
func (c EnergyConfig) WithTOURate(r TOURate) EnergyConfig {
	c.TOURate = r
	return c
}

// Validate checks the energy config.
func (c EnergyConfig) Validate() error {
	switch c.RateMode {
	case RateModeFlat, RateModeTOU:
	default:
		return fmt.Errorf("%w: unknown rate mode: %s", ErrInvalidConfig, c.RateMode)
	}
	if c.FlatRate.RatePerKWH < 0 || c.TOURate.OffPeakRate < 0 || c.TOURate.PartialPeakRate < 0 || c.TOURate.OnPeakRate < 0 {
		return fmt.Errorf("%w: energy rates must not be negative", ErrInvalidConfig)
	}
	if c.NetMetering.ExportRatePercent < 0 || c.NetMetering.ExportRatePercent > 1 {
		return fmt.Errorf("%w: export rate must be a fraction", ErrInvalidConfig)
	}
	return nil
}
