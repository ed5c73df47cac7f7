package energy

import (
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

const (
	// cycleValuePerKWH is the nominal value of one stored kWh used for the
	// daily cycle estimate.
	cycleValuePerKWH = 0.15
	// selfConsumptionShare is the part of the vehicle need that solar is
	// expected to cover directly before excess is stored.
	selfConsumptionShare = 0.5
	daysPerMonth         = 30
)

// BatteryCost computes the installed cost and usable capacity of the bank.
func BatteryCost(c types.BatteryConfig) types.BatteryCostCalculation {
	total := c.UnitCostInstalled * float64(c.Quantity)
	capacity := c.TotalCapacityKWH()
	usable := capacity * c.RoundTripEfficiency

	var monthly float64
	if c.AmortizationYears > 0 {
		monthly = total / (c.AmortizationYears * 12)
	}

	return types.BatteryCostCalculation{
		TotalCapacity:        capacity,
		UsableCapacity:       usable,
		TotalCost:            total,
		MonthlyAmortizedCost: monthly,
		DailyCycleValue:      usable * cycleValuePerKWH * c.ArbitrageUtilization,
	}
}

// BatteryFlow is a month of battery activity.
type BatteryFlow struct {
	ChargeKWH    float64
	DischargeKWH float64
	Savings      float64
}

// ArbitrageFlow cycles a fixed share of the usable capacity every day and
// values it at the on-peak to off-peak spread. The bank cycles on any
// tariff but only saves money under TOU.
func ArbitrageFlow(b types.BatteryConfig, e types.EnergyConfig) BatteryFlow {
	if !b.Enabled || b.Strategy != types.BatteryTOUArbitrage {
		return BatteryFlow{}
	}
	usable := BatteryCost(b).UsableCapacity
	charge := usable * daysPerMonth * b.ArbitrageUtilization
	flow := BatteryFlow{
		ChargeKWH:    charge,
		DischargeKWH: charge * b.RoundTripEfficiency,
	}
	if e.RateMode == types.RateModeTOU {
		spread := e.TOURate.OnPeakRate - e.TOURate.OffPeakRate
		flow.Savings = usable * spread * b.ArbitrageUtilization * daysPerMonth
	}
	return flow
}

// SelfConsumptionFlow stores solar beyond half of the vehicle need, limited
// to one usable cycle a day, and values it at the effective rate.
func SelfConsumptionFlow(b types.BatteryConfig, s types.SolarConfig, e types.EnergyConfig, vehicleKWH float64) BatteryFlow {
	if !b.Enabled || b.Strategy != types.BatterySelfConsumption || !s.Enabled {
		return BatteryFlow{}
	}
	stored := storableSolar(MonthlySolarKWH(s), vehicleKWH, BatteryCost(b).UsableCapacity)
	return BatteryFlow{
		ChargeKWH:    stored,
		DischargeKWH: stored * b.RoundTripEfficiency,
		Savings:      stored * utility.EffectiveRate(e),
	}
}

func storableSolar(solarKWH, vehicleKWH, usableKWH float64) float64 {
	excess := max(0, solarKWH-vehicleKWH*selfConsumptionShare)
	return min(excess, usableKWH*daysPerMonth)
}

// MonthlyBatteryFlow dispatches on the battery strategy. Backup-only banks
// never cycle.
func MonthlyBatteryFlow(b types.BatteryConfig, s types.SolarConfig, e types.EnergyConfig, vehicleKWH float64) BatteryFlow {
	if !b.Enabled {
		return BatteryFlow{}
	}
	switch b.Strategy {
	case types.BatteryTOUArbitrage:
		return ArbitrageFlow(b, e)
	case types.BatterySelfConsumption:
		return SelfConsumptionFlow(b, s, e, vehicleKWH)
	}
	return BatteryFlow{}
}
