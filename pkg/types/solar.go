package types

import (
	"fmt"
)

// MonthlySolarFactors is the share of annual solar output produced in each
// calendar month, January first.
var MonthlySolarFactors = [12]float64{
	0.055, 0.065, 0.085, 0.095, 0.105, 0.11,
	0.115, 0.105, 0.09, 0.075, 0.055, 0.045,
}

// RegionalSolarFactors are typical annual kWh produced per installed kW.
var RegionalSolarFactors = map[string]float64{
	"southwest":  1800,
	"california": 1650,
	"southeast":  1400,
	"midwest":    1300,
	"northeast":  1200,
	"northwest":  1100,
	"default":    1500,
}

// Location is a geocoded site.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// SolarConfig describes the on-site solar array.
type SolarConfig struct {
	Enabled          bool      `json:"enabled"`
	UseManualEntry   bool      `json:"useManualEntry"`
	Location         *Location `json:"location"`
	SystemSizeKW     float64   `json:"systemSizeKw"`
	AnnualOutputKWH  float64   `json:"annualOutputKwh"`
	MonthlyOutputKWH []float64 `json:"monthlyOutputKwh"`
	CostPerWatt      float64   `json:"costPerWatt"`
	// FederalITCPercent is a fraction (0.3 = 30%).
	FederalITCPercent      float64 `json:"federalItcPercent"`
	StateRebate            float64 `json:"stateRebate"`
	PermitFees             float64 `json:"permitFees"`
	PanelWattage           float64 `json:"panelWattage"`
	PanelSqFt              float64 `json:"panelSqFt"`
	AnnualProductionFactor float64 `json:"annualProductionFactor"`
	AmortizationYears      float64 `json:"amortizationYears"`
}

// SolarCostCalculation is the result of the solar cost calculator.
type SolarCostCalculation struct {
	GrossCost            float64 `json:"grossCost"`
	FederalCredit        float64 `json:"federalCredit"`
	NetCost              float64 `json:"netCost"`
	MonthlyAmortizedCost float64 `json:"monthlyAmortizedCost"`
	PanelCount           int     `json:"panelCount"`
	RoofAreaSqFt         float64 `json:"roofAreaSqFt"`
}

// SolarEstimate is a resolved production estimate for a site.
type SolarEstimate struct {
	SystemSizeKW     float64   `json:"systemSizeKw"`
	AnnualOutputKWH  float64   `json:"annualOutputKwh"`
	MonthlyOutputKWH []float64 `json:"monthlyOutputKwh"`
	Source           string    `json:"source"`
}

// MonthlyFromAnnual spreads an annual figure over the default monthly shape.
func MonthlyFromAnnual(annual float64) []float64 {
	out := make([]float64, 12)
	for i, f := range MonthlySolarFactors {
		out[i] = f * annual
	}
	return out
}

// DefaultSolarConfig returns a disabled 10 kW array.
func DefaultSolarConfig() SolarConfig {
	return SolarConfig{
		UseManualEntry:         true,
		SystemSizeKW:           10,
		AnnualOutputKWH:        15000,
		MonthlyOutputKWH:       MonthlyFromAnnual(15000),
		CostPerWatt:            2.75,
		FederalITCPercent:      0.3,
		PermitFees:             500,
		PanelWattage:           400,
		PanelSqFt:              17.5,
		AnnualProductionFactor: 1500,
		AmortizationYears:      25,
	}
}

// MonthlyOutput returns the twelve monthly production figures, falling back
// to the default shape when the config does not carry them.
func (c SolarConfig) MonthlyOutput() []float64 {
	if len(c.MonthlyOutputKWH) == 12 {
		return c.MonthlyOutputKWH
	}
	return MonthlyFromAnnual(c.AnnualOutputKWH)
}

// WithEnabled toggles the array.
func (c SolarConfig) WithEnabled(enabled bool) SolarConfig {
	c.Enabled = enabled
	return c
}

// WithSystemSize resizes the array and re-derives its output from the
// production factor.
func (c SolarConfig) WithSystemSize(kw float64) SolarConfig {
	c.SystemSizeKW = kw
	c.AnnualOutputKWH = kw * c.AnnualProductionFactor
	c.MonthlyOutputKWH = MonthlyFromAnnual(c.AnnualOutputKWH)
	return c
}

// WithProductionFactor changes the kWh/kW/yr factor and re-derives output.
func (c SolarConfig) WithProductionFactor(factor float64) SolarConfig {
	c.AnnualProductionFactor = factor
	return c.WithSystemSize(c.SystemSizeKW)
}

// WithEstimate applies a resolved production estimate.
func (c SolarConfig) WithEstimate(e SolarEstimate) SolarConfig {
	c.SystemSizeKW = e.SystemSizeKW
	c.AnnualOutputKWH = e.AnnualOutputKWH
	if len(e.MonthlyOutputKWH) == 12 {
		c.MonthlyOutputKWH = append([]float64(nil), e.MonthlyOutputKWH...)
	} else {
		c.MonthlyOutputKWH = MonthlyFromAnnual(e.AnnualOutputKWH)
	}
	if e.SystemSizeKW > 0 {
		c.AnnualProductionFactor = e.AnnualOutputKWH / e.SystemSizeKW
	}
	c.UseManualEntry = false
	return c
}

// Validate checks the solar config.
func (c SolarConfig) Validate() error {
	if c.SystemSizeKW < 0 || c.AnnualOutputKWH < 0 {
		return fmt.Errorf("%w: solar size and output must not be negative", ErrInvalidConfig)
	}
	if c.AmortizationYears <= 0 {
		return fmt.Errorf("%w: solar amortization years must be positive", ErrInvalidConfig)
	}
	if c.FederalITCPercent < 0 || c.FederalITCPercent > 1 {
		return fmt.Errorf("%w: solar tax credit must be a fraction", ErrInvalidConfig)
	}
	if n := len(c.MonthlyOutputKWH); n != 0 && n != 12 {
		return fmt.Errorf("%w: monthly solar output needs 12 values, got %d", ErrInvalidConfig, n)
	}
	return nil
}
