package types

import (
	"fmt"
)

// BatteryStrategy is how the stationary battery is cycled.
type BatteryStrategy string

const (
	BatterySelfConsumption BatteryStrategy = "self_consumption"
	BatteryTOUArbitrage    BatteryStrategy = "tou_arbitrage"
	BatteryBackupOnly      BatteryStrategy = "backup_only"
)

// BatteryUnit is a catalog entry for a stationary battery.
type BatteryUnit struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	CapacityKWH         float64 `json:"capacityKwh"`
	ContinuousPowerKW   float64 `json:"continuousPowerKw"`
	PeakPowerKW         float64 `json:"peakPowerKw"`
	RoundTripEfficiency float64 `json:"roundTripEfficiency"`
	CostInstalled       float64 `json:"costInstalled"`
	WarrantyYears       float64 `json:"warrantyYears"`
}

// BatteryPresets lists the selectable battery units.
var BatteryPresets = []BatteryUnit{
	{
		ID:                  "powerwall_3",
		Name:                "Tesla Powerwall 3",
		CapacityKWH:         13.5,
		ContinuousPowerKW:   11.5,
		PeakPowerKW:         20,
		RoundTripEfficiency: 0.9,
		CostInstalled:       12000,
		WarrantyYears:       10,
	},
	{
		ID:                  "powerwall_2",
		Name:                "Tesla Powerwall 2",
		CapacityKWH:         13.5,
		ContinuousPowerKW:   5.8,
		PeakPowerKW:         10,
		RoundTripEfficiency: 0.9,
		CostInstalled:       10500,
		WarrantyYears:       10,
	},
	{
		ID:                  "enphase_5p",
		Name:                "Enphase IQ 5P",
		CapacityKWH:         5,
		ContinuousPowerKW:   3.84,
		PeakPowerKW:         7.68,
		RoundTripEfficiency: 0.89,
		CostInstalled:       6000,
		WarrantyYears:       15,
	},
}

// BatteryUnitByID looks up a battery preset.
func BatteryUnitByID(id string) (BatteryUnit, bool) {
	for _, u := range BatteryPresets {
		if u.ID == id {
			return u, true
		}
	}
	return BatteryUnit{}, false
}

// BatteryConfig describes the stationary battery bank.
type BatteryConfig struct {
	Enabled             bool            `json:"enabled"`
	UnitID              string          `json:"unitId"`
	UnitName            string          `json:"unitName"`
	CapacityKWH         float64         `json:"capacityKwh"`
	ContinuousPowerKW   float64         `json:"continuousPowerKw"`
	RoundTripEfficiency float64         `json:"roundTripEfficiency"`
	UnitCostInstalled   float64         `json:"unitCostInstalled"`
	Quantity            int             `json:"quantity"`
	Strategy            BatteryStrategy `json:"strategy"`
	AmortizationYears   float64         `json:"amortizationYears"`
	// ArbitrageUtilization is the fraction of usable capacity cycled daily.
	ArbitrageUtilization float64 `json:"arbitrageUtilization"`
}

// BatteryCostCalculation is the result of the battery cost calculator.
type BatteryCostCalculation struct {
	TotalCapacity        float64 `json:"totalCapacity"`
	UsableCapacity       float64 `json:"usableCapacity"`
	TotalCost            float64 `json:"totalCost"`
	MonthlyAmortizedCost float64 `json:"monthlyAmortizedCost"`
	DailyCycleValue      float64 `json:"dailyCycleValue"`
}

// DefaultBatteryConfig returns a disabled single Powerwall 3.
func DefaultBatteryConfig() BatteryConfig {
	u, _ := BatteryUnitByID("powerwall_3")
	return BatteryConfig{
		Quantity:             1,
		Strategy:             BatterySelfConsumption,
		AmortizationYears:    10,
		ArbitrageUtilization: 0.8,
	}.WithUnit(u)
}

// TotalCapacityKWH is the nameplate capacity of the whole bank.
func (c BatteryConfig) TotalCapacityKWH() float64 {
	return c.CapacityKWH * float64(c.Quantity)
}

// WithUnit swaps the battery model.
func (c BatteryConfig) WithUnit(u BatteryUnit) BatteryConfig {
	c.UnitID = u.ID
	c.UnitName = u.Name
	c.CapacityKWH = u.CapacityKWH
	c.ContinuousPowerKW = u.ContinuousPowerKW
	c.RoundTripEfficiency = u.RoundTripEfficiency
	c.UnitCostInstalled = u.CostInstalled
	return c
}

// WithEnabled toggles the battery bank.
func (c BatteryConfig) WithEnabled(enabled bool) BatteryConfig {
	c.Enabled = enabled
	return c
}

// WithStrategy changes the cycling strategy.
func (c BatteryConfig) WithStrategy(s BatteryStrategy) BatteryConfig {
	c.Strategy = s
	return c
}

// WithQuantity changes the number of units.
func (c BatteryConfig) WithQuantity(n int) BatteryConfig {
	c.Quantity = n
	return c
}

// Validate checks the battery config.
func (c BatteryConfig) Validate() error {
	switch c.Strategy {
	case BatterySelfConsumption, BatteryTOUArbitrage, BatteryBackupOnly:
	default:
		return fmt.Errorf("%w: unknown battery strategy: %s", ErrInvalidConfig, c.Strategy)
	}
	if c.Quantity < 0 || c.CapacityKWH < 0 {
		return fmt.Errorf("%w: battery quantity and capacity must not be negative", ErrInvalidConfig)
	}
	if c.RoundTripEfficiency < 0 || c.RoundTripEfficiency > 1 {
		return fmt.Errorf("%w: round trip efficiency must be a fraction", ErrInvalidConfig)
	}
	if c.ArbitrageUtilization < 0 || c.ArbitrageUtilization > 1 {
		return fmt.Errorf("%w: arbitrage utilization must be a fraction", ErrInvalidConfig)
	}
	if c.AmortizationYears <= 0 {
		return fmt.Errorf("%w: battery amortization years must be positive", ErrInvalidConfig)
	}
	return nil
}
