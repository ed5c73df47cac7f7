// Package energy balances the fleet's charging need against solar, battery
// storage and the grid.
package energy

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// SolarCost computes the installed cost of the solar array after incentives.
func SolarCost(c types.SolarConfig) types.SolarCostCalculation {
	gross := c.SystemSizeKW*c.CostPerWatt*1000 + c.PermitFees
	credit := gross * c.FederalITCPercent
	net := gross - credit - c.StateRebate

	var monthly float64
	if c.AmortizationYears > 0 {
		monthly = net / (c.AmortizationYears * 12)
	}

	var panels int
	if c.PanelWattage > 0 {
		panels = int(math.Ceil(c.SystemSizeKW * 1000 / c.PanelWattage))
	}

	return types.SolarCostCalculation{
		GrossCost:            gross,
		FederalCredit:        credit,
		NetCost:              net,
		MonthlyAmortizedCost: monthly,
		PanelCount:           panels,
		RoofAreaSqFt:         float64(panels) * c.PanelSqFt,
	}
}

// RegionalProductionFactor returns the annual kWh per installed kW for a
// region, falling back to the national default.
func RegionalProductionFactor(region string) float64 {
	if f, ok := types.RegionalSolarFactors[region]; ok {
		return f
	}
	return types.RegionalSolarFactors["default"]
}

// MonthlySolarKWH is the average monthly output of the array, zero when
// solar is disabled.
func MonthlySolarKWH(c types.SolarConfig) float64 {
	if !c.Enabled {
		return 0
	}
	return c.AnnualOutputKWH / 12
}
