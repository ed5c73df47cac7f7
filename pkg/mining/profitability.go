package mining

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

const (
	daysPerMonth = 30
	hoursPerDay  = 24
	// peakSunHours caps excess solar mining to the hours solar actually
	// produces a surplus.
	peakSunHours = 6
	// priorityLoadSolarShare is the part of the fleet and facility load
	// assumed to overlap with solar production.
	priorityLoadSolarShare = 0.4
	// batteryMiningShare is the usable share of the battery bank (80%) that
	// mining may draw on (half of it).
	batteryMiningShare = 0.8 * 0.5
	offPeakMiningHours = 12
)

// sourcing is a month of mining energy split by source.
type sourcing struct {
	hours   float64
	solar   float64
	battery float64
	grid    float64
	cost    float64
}

// ExcessSolarKWHPerDay is the daily solar left for mining once the fleet and
// the facility are served.
func ExcessSolarKWHPerDay(c types.MiningConfig, s types.SolarConfig) float64 {
	if !s.Enabled {
		return 0
	}
	daily := s.AnnualOutputKWH / 365
	priority := c.FleetChargingKWHPerDay + c.FacilityBaseLoadKW*hoursPerDay
	return max(0, daily-priority*priorityLoadSolarShare)
}

// batteryBudgetKWH is the daily battery energy mining may use.
func batteryBudgetKWH(b types.BatteryConfig) float64 {
	if !b.Enabled {
		return 0
	}
	return b.TotalCapacityKWH() * batteryMiningShare
}

// source decides how many hours the miners run and where the energy comes
// from. Mining hours follow the strategy; solar and battery only change who
// pays for the energy.
func source(c types.MiningConfig, e types.EnergyConfig, s types.SolarConfig, b types.BatteryConfig, powerKW float64) sourcing {
	excess := ExcessSolarKWHPerDay(c, s)
	budget := batteryBudgetKWH(b)

	var out sourcing
	switch c.MiningStrategy {
	case types.MiningExcessSolar:
		if excess > 0 && powerKW > 0 {
			out.hours = min(peakSunHours, excess/powerKW)
			out.solar = powerKW * out.hours * daysPerMonth
		}
		// excess solar mining never imports
		return out

	case types.MiningTOUArbitrage:
		out.hours = hoursPerDay
		if c.MineOffPeak {
			out.hours = offPeakMiningHours
		}
		demand := powerKW * out.hours * daysPerMonth
		if b.Enabled {
			out.battery = min(budget*daysPerMonth, demand*0.2)
		}
		if excess > 0 {
			// little solar overlaps the off-peak window
			out.solar = min(excess*0.2*daysPerMonth, demand*0.1)
		}
		out.grid = max(0, demand-out.solar-out.battery)
		out.cost = out.grid * utility.OffPeakRate(e)

	default:
		out.hours = hoursPerDay
		demand := powerKW * hoursPerDay * daysPerMonth
		if excess > 0 {
			out.solar = min(excess*daysPerMonth, demand*0.25)
		}
		if b.Enabled {
			out.battery = min(budget*daysPerMonth, demand*0.1)
		}
		out.grid = max(0, demand-out.solar-out.battery)
		out.cost = out.grid * utility.BlendedRate(e)
	}
	return out
}

// Profitability computes a month of mining revenue, energy and cost under
// the configured strategy. Revenue and energy scale with the mining hours.
func Profitability(c types.MiningConfig, e types.EnergyConfig, s types.SolarConfig, b types.BatteryConfig, market types.MarketData) types.MiningRevenue {
	if !c.Enabled {
		return Disabled()
	}
	e = utility.WithDefaultRates(e)

	coolingW := CoolingPowerWatts(c)
	powerKW := (ASICPowerWatts(c) + GPUPowerWatts(c) + coolingW) / 1000

	src := source(c, e, s, b, powerKW)
	hours := math.Max(0, math.Min(hoursPerDay, src.hours))
	uptime := hours / hoursPerDay

	btc := DailyBTC(c, market.Network, market.Prices.Bitcoin)
	altUSD := DailyAltcoinUSD(c, market.Prices)

	dailyUSD := (btc.DailyUSD + altUSD) * uptime
	grossMonthly := dailyUSD * daysPerMonth
	dailyKWH := powerKW * hours
	monthlyKWH := dailyKWH * daysPerMonth

	flat := e.FlatRate.RatePerKWH
	costWithoutSolar := powerKW * hours * daysPerMonth * flat
	coolingCost := coolingW / 1000 * hours * daysPerMonth * flat
	maintenance := MaintenanceCost(c)
	hardware := HardwareCost(c)
	net := grossMonthly - src.cost - maintenance - coolingCost

	var offset float64
	if monthlyKWH > 0 {
		offset = (src.solar + src.battery) / monthlyKWH * 100
	}

	return types.MiningRevenue{
		TotalHashrateTH: ASICHashrateTH(c),
		MinerShare:      MinerShare(c, market.Network),

		DailyCryptoGross: btc.DailyGross * uptime,
		DailyCryptoNet:   btc.DailyNet * uptime,
		DailyUSDRevenue:  dailyUSD,

		MonthlyCrypto:     btc.DailyNet * uptime * daysPerMonth,
		MonthlyUSDRevenue: grossMonthly,

		DailyEnergyKWH:   dailyKWH,
		MonthlyEnergyKWH: monthlyKWH,

		EnergyFromSolarKWH:   src.solar,
		EnergyFromBatteryKWH: src.battery,
		EnergyFromGridKWH:    src.grid,
		SolarOffsetPercent:   offset,
		EffectiveHoursPerDay: hours,

		MonthlyEnergyCost:      src.cost,
		EnergyCostWithoutSolar: costWithoutSolar,
		MonthlySolarSavings:    costWithoutSolar - src.cost,

		MonthlyGrossRevenue:    grossMonthly,
		MonthlyMaintenanceCost: maintenance,
		MonthlyCoolingCost:     coolingCost,
		MonthlyNetProfit:       net,

		TotalHardwareCost:        hardware,
		MonthlyCoolingEnergyCost: coolingCost,
		PaybackMonths:            types.MonthsOrNever(hardware, net),
	}
}

// Disabled is the result for a site without mining. The mining hours stay at
// a full day so the optimizer and energy views keep a neutral default.
func Disabled() types.MiningRevenue {
	return types.MiningRevenue{
		EffectiveHoursPerDay: hoursPerDay,
		PaybackMonths:        types.NeverMonths(),
	}
}
