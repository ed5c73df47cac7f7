package scenario

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/fleet"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// MonthlyCosts rolls the fleet, energy, platform and solar lines into one
// monthly cost. Battery, mining and humanoid lines are applied by the
// caller.
func MonthlyCosts(
	v types.VehicleConfig,
	vc types.VehicleCostCalculation,
	r types.RevenueConfig,
	rc types.RevenueCalculation,
	s types.SolarConfig,
	sc types.SolarCostCalculation,
	e types.EnergyCalculation,
) types.MonthlyCosts {
	costs := types.MonthlyCosts{
		VehicleCapital:     vc.AmortizedCapitalMonthly,
		VehicleOperating:   vc.MonthlyFixedCost + v.OperatingCosts.MaintenancePerMile*rc.TotalMiles,
		EnergyGross:        e.MonthlyGridCost,
		EnergyExportCredit: e.MonthlyExportCredit,
		EnergyNet:          e.MonthlyNetEnergyCost,
		PlatformFees:       rc.PlatformFees,
	}
	if r.Platform.Mode == types.PlatformOwn {
		costs.OwnPlatformCosts = r.Platform.OwnPlatformCostsMonthly
	}
	if s.Enabled {
		costs.SolarAmortized = sc.MonthlyAmortizedCost
		// solar covered kWh valued at the average price paid for grid kWh
		if e.MonthlyGridImportKWH > 0 {
			costs.EnergySolarOffset = (e.MonthlyVehicleKWH - e.MonthlyGridImportKWH) * e.MonthlyGridCost / e.MonthlyGridImportKWH
		}
	}
	costs.TotalMonthlyCost = costs.VehicleCapital +
		costs.VehicleOperating +
		costs.EnergyNet +
		costs.PlatformFees +
		costs.OwnPlatformCosts +
		costs.SolarAmortized
	return costs
}

// MonthlyRevenue is net ride revenue plus the export credit.
func MonthlyRevenue(rc types.RevenueCalculation, e types.EnergyCalculation) types.MonthlyRevenue {
	return types.MonthlyRevenue{
		RideRevenue:         rc.NetRevenue,
		ExportRevenue:       e.MonthlyExportCredit,
		TotalMonthlyRevenue: rc.NetRevenue + e.MonthlyExportCredit,
	}
}

// TotalInvestment is the upfront vehicle outlay plus the net solar cost.
func TotalInvestment(v types.VehicleConfig, s types.SolarConfig, sc types.SolarCostCalculation) float64 {
	total := fleet.UpfrontInvestment(v)
	if s.Enabled {
		total += sc.NetCost
	}
	return total
}

// BreakEvenMonth returns the first whole month m >= 0 where profit * m
// covers the investment. A non-positive profit never breaks even.
func BreakEvenMonth(investment, monthlyProfit float64) types.BreakEven {
	if monthlyProfit <= 0 {
		return types.Never()
	}
	if investment <= 0 {
		return types.Reached(0)
	}
	m := math.Ceil(investment / monthlyProfit)
	if m > math.MaxInt32 {
		return types.Never()
	}
	month := int(m)
	// ceil can land one month late when the division rounds up
	if month > 0 && monthlyProfit*float64(month-1) >= investment {
		month--
	}
	return types.Reached(month)
}

// BreakEven projects cumulative profit against the investment over
// types.BreakEvenProjectionMonths months.
func BreakEven(investment, monthlyProfit float64) types.BreakEvenAnalysis {
	n := types.BreakEvenProjectionMonths + 1
	res := types.BreakEvenAnalysis{
		TotalInvestment:      investment,
		MonthlyProfit:        monthlyProfit,
		BreakEvenMonths:      types.MonthsOrNever(investment, monthlyProfit),
		BreakEvenMonth:       BreakEvenMonth(investment, monthlyProfit),
		CumulativeInvestment: make([]float64, n),
		CumulativeProfit:     make([]float64, n),
	}
	for m := range n {
		res.CumulativeInvestment[m] = investment
		res.CumulativeProfit[m] = monthlyProfit * float64(m)
	}
	return res
}

// Summary condenses a roll-up for side by side comparison.
func Summary(name string, costs types.MonthlyCosts, revenue types.MonthlyRevenue, investment float64, solarEnabled bool) types.ScenarioSummary {
	profit := revenue.TotalMonthlyRevenue - costs.TotalMonthlyCost
	return types.ScenarioSummary{
		Name:            name,
		MonthlyRevenue:  revenue.TotalMonthlyRevenue,
		MonthlyCosts:    costs.TotalMonthlyCost,
		MonthlyProfit:   profit,
		TotalInvestment: investment,
		BreakEvenMonths: types.MonthsOrNever(investment, profit),
		SolarEnabled:    solarEnabled,
	}
}
