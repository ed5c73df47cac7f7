package energy

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// VehicleKWH is the energy needed to drive the given miles.
func VehicleKWH(totalMiles, efficiencyMiPerKWH float64) float64 {
	if efficiencyMiPerKWH <= 0 {
		return 0
	}
	return totalMiles / efficiencyMiPerKWH
}

// Balance computes a month of energy flows and the resulting net energy
// cost. Pass a disabled battery to leave storage out of the balance.
func Balance(totalMiles, efficiencyMiPerKWH float64, s types.SolarConfig, e types.EnergyConfig, b types.BatteryConfig) types.EnergyCalculation {
	vehicleKWH := VehicleKWH(totalMiles, efficiencyMiPerKWH)
	solarKWH := MonthlySolarKWH(s)
	rate := utility.EffectiveRate(e)

	res := types.EnergyCalculation{
		MonthlyVehicleKWH: vehicleKWH,
		MonthlySolarKWH:   solarKWH,
	}

	var flow BatteryFlow
	if b.Enabled {
		cost := BatteryCost(b)
		res.BatteryCapacityKWH = cost.TotalCapacity
		res.BatteryUsableKWH = cost.UsableCapacity
		res.MonthlyBatteryAmortizedCost = cost.MonthlyAmortizedCost
		flow = MonthlyBatteryFlow(b, s, e, vehicleKWH)
	}
	res.MonthlyBatteryChargeKWH = flow.ChargeKWH
	res.MonthlyBatteryDischargeKWH = flow.DischargeKWH
	res.MonthlyBatterySavings = flow.Savings

	solarUsed := min(vehicleKWH, solarKWH)
	res.MonthlyGridImportKWH = max(0, vehicleKWH-solarUsed-flow.DischargeKWH)
	res.MonthlyExcessSolarKWH = max(0, solarKWH-(solarUsed+flow.ChargeKWH))

	res.MonthlyGridCost = res.MonthlyGridImportKWH * rate
	if e.NetMetering.Enabled && s.Enabled {
		res.MonthlyExportCredit = res.MonthlyExcessSolarKWH * rate * e.NetMetering.ExportRatePercent
	}
	res.MonthlyNetEnergyCost = res.MonthlyGridCost -
		res.MonthlyExportCredit +
		res.MonthlyBatteryAmortizedCost -
		res.MonthlyBatterySavings
	return res
}

// MonthlyBreakdown projects the balance across a calendar year using each
// month's solar output. Values are rounded to whole kWh.
func MonthlyBreakdown(totalMiles, efficiencyMiPerKWH float64, s types.SolarConfig, b types.BatteryConfig) []types.MonthlyEnergyData {
	vehicleKWH := VehicleKWH(totalMiles, efficiencyMiPerKWH)

	var solar []float64
	if s.Enabled {
		solar = s.MonthlyOutput()
	}

	var usable float64
	cycling := b.Enabled && b.Strategy != types.BatteryBackupOnly
	if cycling {
		usable = BatteryCost(b).UsableCapacity
	}

	out := make([]types.MonthlyEnergyData, 0, len(monthNames))
	for i, name := range monthNames {
		var generation float64
		if solar != nil {
			generation = solar[i]
		}

		var charge float64
		switch {
		case !cycling:
		case b.Strategy == types.BatterySelfConsumption:
			charge = storableSolar(generation, vehicleKWH, usable)
		case b.Strategy == types.BatteryTOUArbitrage:
			charge = usable * daysPerMonth * b.ArbitrageUtilization
		}
		discharge := charge * b.RoundTripEfficiency

		solarUsed := min(vehicleKWH, generation)
		out = append(out, types.MonthlyEnergyData{
			Month:              name,
			SolarGeneration:    math.Round(generation),
			VehicleConsumption: math.Round(vehicleKWH),
			GridImport:         math.Round(max(0, vehicleKWH-solarUsed-discharge)),
			GridExport:         math.Round(max(0, generation-solarUsed-charge)),
			BatteryCharge:      math.Round(charge),
			BatteryDischarge:   math.Round(discharge),
		})
	}
	return out
}
