// Package humanoid prices humanoid robots for depot work and compares them
// with human labor.
package humanoid

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const (
	// annualWorkHours is a 40 hour week over 52 weeks.
	annualWorkHours         = 2080
	weeksPerYear            = 52
	defaultDepreciationYrs  = 5
	breakEvenSeriesMonths   = 60
	robotsPerVehicle        = 0.12
	referenceOperatingHours = 12
)

func depreciationYears(c types.HumanoidConfig) float64 {
	if c.DepreciationYears > 0 {
		return c.DepreciationYears
	}
	return defaultDepreciationYrs
}

// CapitalCost is the purchase cost of quantity units including site
// additions.
func CapitalCost(p types.HumanoidPlatform, quantity int, c types.HumanoidConfig) float64 {
	additions := c.CustomizationCost + c.ChargingStationCost + c.SafetySystemsCost + c.InstallationCost
	return (p.EstimatedMSRP + additions) * float64(quantity)
}

// OperatingCost is the monthly running cost of quantity owned units.
func OperatingCost(quantity int, c types.HumanoidConfig) float64 {
	perUnit := c.EnergyCostMonthly + c.MaintenanceCostMonthly + c.PartsCostMonthly + c.SoftwareCostMonthly + c.InsuranceCostMonthly
	return perUnit * float64(quantity)
}

// LeaseCost is the monthly lease of quantity units plus their running cost.
func LeaseCost(p types.HumanoidPlatform, quantity int, c types.HumanoidConfig) float64 {
	return p.MonthlyLeaseEstimate*float64(quantity) + OperatingCost(quantity, c)
}

// WeeklyCoverageHours is how many working hours quantity units provide in a
// week when they rotate through charging.
func WeeklyCoverageHours(p types.HumanoidPlatform, quantity int) float64 {
	cycle := p.RuntimeHours + p.ChargeTimeHours
	if cycle <= 0 {
		return 0
	}
	perDay := 24 / cycle * p.RuntimeHours
	return perDay * 7 * float64(quantity)
}

// HumanAnnualCost is the fully loaded annual cost of the human staff.
func HumanAnnualCost(c types.HumanoidConfig) float64 {
	return humanAnnualCostPerFTE(c) * c.HumanFTECount
}

func humanAnnualCostPerFTE(c types.HumanoidConfig) float64 {
	return c.HumanHourlyWage * annualWorkHours * (1 + c.HumanBenefitsPercent/100)
}

// fleet sums the selected platforms. Unknown platforms are skipped.
type fleet struct {
	units           int
	capital         float64
	monthlyOperates float64
	weeklyHours     float64
}

func selectedFleet(c types.HumanoidConfig) fleet {
	var f fleet
	for _, sel := range c.Platforms {
		p, ok := types.HumanoidPlatformByID(sel.PlatformID)
		if !ok {
			continue
		}
		f.units += sel.Quantity
		if sel.AcquisitionType == types.AcquirePurchase {
			f.capital += CapitalCost(p, sel.Quantity, c)
			f.monthlyOperates += OperatingCost(sel.Quantity, c)
		} else {
			f.monthlyOperates += LeaseCost(p, sel.Quantity, c)
		}
		f.weeklyHours += WeeklyCoverageHours(p, sel.Quantity)
	}
	return f
}

// CompareLabor compares the selected humanoids against the configured human
// staff.
func CompareLabor(c types.HumanoidConfig) types.LaborComparison {
	f := selectedFleet(c)

	humanTotal := HumanAnnualCost(c)
	humanHours := c.HumanWeeklyHours * c.HumanFTECount
	annualCapital := f.capital / depreciationYears(c)
	annualOperating := f.monthlyOperates * 12
	humanoidTotal := annualCapital + annualOperating
	savings := humanTotal - humanoidTotal

	res := types.LaborComparison{
		HumanAnnualCostPerFTE:    humanAnnualCostPerFTE(c),
		HumanTotalAnnualCost:     humanTotal,
		HumanWeeklyCoverageHours: humanHours,

		HumanoidQuantity:            f.units,
		HumanoidCapitalTotal:        f.capital,
		HumanoidAnnualCapital:       annualCapital,
		HumanoidAnnualOperating:     annualOperating,
		HumanoidWeeklyCoverageHours: f.weeklyHours,
		HumanoidAnnualCost:          humanoidTotal,

		AnnualSavings:  savings,
		MonthlySavings: savings / 12,
		PaybackMonths:  types.MonthsOrNever(f.capital*12, savings),
	}
	if humanHours > 0 {
		res.CoverageMultiplier = f.weeklyHours / humanHours
		res.CostPerHourHuman = humanTotal / (humanHours * weeksPerYear)
	}
	if f.weeklyHours > 0 {
		res.CostPerHourHumanoid = humanoidTotal / (f.weeklyHours * weeksPerYear)
	}
	return res
}

// Recommend suggests a robot count for the fleet, about one robot per eight
// vehicles on a 12 hour day, and names the coverage tier it buys.
func Recommend(fleetSize int, operatingHoursPerDay float64) types.HumanoidRecommendation {
	n := int(math.Ceil(float64(fleetSize) * robotsPerVehicle * operatingHoursPerDay / referenceOperatingHours))

	coverage := "Basic"
	switch size := float64(fleetSize); {
	case float64(n) >= size*0.2:
		coverage = "Comprehensive"
	case float64(n) >= size*0.15:
		coverage = "Standard"
	}
	return types.HumanoidRecommendation{Recommended: n, Coverage: coverage}
}

// BreakEvenSeries accumulates human and humanoid costs over months 0 through
// months. The humanoid line starts at the capital outlay.
func BreakEvenSeries(lc types.LaborComparison, months int) []types.HumanoidBreakEvenMonth {
	human := lc.HumanTotalAnnualCost / 12
	humanoid := lc.HumanoidAnnualCost / 12
	out := make([]types.HumanoidBreakEvenMonth, 0, months+1)
	for m := 0; m <= months; m++ {
		out = append(out, types.HumanoidBreakEvenMonth{
			Month:              m,
			HumanCumulative:    human * float64(m),
			HumanoidCumulative: lc.HumanoidCapitalTotal + humanoid*float64(m),
		})
	}
	return out
}

// EligibleTasks lists the depot tasks a platform can take over.
func EligibleTasks(p types.HumanoidPlatform) []types.TaskDefinition {
	var out []types.TaskDefinition
	for _, t := range types.TaskDefinitions {
		if p.CanPerform(t) {
			out = append(out, t)
		}
	}
	return out
}

// Economics computes the cost and coverage of the humanoid option for a
// fleet. The labor comparison is computed even with no platforms selected.
func Economics(c types.HumanoidConfig, fleetSize int, operatingHoursPerDay float64) types.HumanoidCalculation {
	if !c.Enabled {
		return Disabled()
	}

	lc := CompareLabor(c)
	res := types.HumanoidCalculation{
		LaborComparison: lc,
		Recommendation:  Recommend(fleetSize, operatingHoursPerDay),
		BreakEvenSeries: BreakEvenSeries(lc, breakEvenSeriesMonths),
	}
	if len(c.Platforms) == 0 {
		return res
	}

	f := selectedFleet(c)
	res.TotalPlatforms = f.units
	res.TotalCapitalCost = f.capital
	res.TotalMonthlyOperating = f.monthlyOperates
	res.MonthlyAmortizedCapital = f.capital / (depreciationYears(c) * 12)
	res.TotalMonthlyCost = res.MonthlyAmortizedCapital + f.monthlyOperates
	res.TotalWeeklyCoverageHours = f.weeklyHours
	if fleetSize > 0 {
		res.CoveragePerVehicle = f.weeklyHours / float64(fleetSize)
	}
	return res
}

// Disabled is the result when the humanoid option is off.
func Disabled() types.HumanoidCalculation {
	return types.HumanoidCalculation{
		LaborComparison: types.LaborComparison{PaybackMonths: types.NeverMonths()},
		BreakEvenSeries: []types.HumanoidBreakEvenMonth{},
	}
}
