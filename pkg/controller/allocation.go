package controller

import (
	"cmp"
	"slices"
	"time"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

const (
	// chargerKW is the average charger power per vehicle.
	chargerKW = 11
	// asicKW and gpuKW approximate the draw of one miner for planning.
	asicKW = 3.5
	gpuKW  = 0.35
	// powerwallKWH and powerwallRateKW scale battery charge and discharge
	// rates: 5 kW per 13.5 kWh of capacity.
	powerwallKWH    = 13.5
	powerwallRateKW = 5
	// dischargeEfficiency is the share of stored energy delivered.
	dischargeEfficiency = 0.9
)

func (s site) solar(hour int) float64 {
	return s.solarKW * types.SolarProductionCurve[hour]
}

func (s site) fleetDemand(hour int) float64 {
	return float64(s.vehicles) * chargerKW * types.FleetDemandCurve[hour]
}

func orOne(n int) float64 {
	if n == 0 {
		return 1
	}
	return float64(n)
}

// miningLoadKW approximates the mining draw. A zero quantity counts as one
// unit.
func (s site) miningLoadKW(overclock bool) float64 {
	m := s.mining
	asic := orOne(m.ASICQuantity) * asicKW
	if overclock {
		asic *= 1 + m.ASICOverclockPercent/100
	}
	if m.GPUEnabled {
		asic += orOne(m.GPUQuantity) * orOne(m.GPURigCount) * gpuKW
	}
	return asic
}

// miningDemand is the mining load the optimizer schedules for an hour.
// Excess solar miners only take what the fleet leaves of the solar output
// and off-peak miners pause during peak.
func (s site) miningDemand(period types.TOUPeriod, solar, fleet float64) float64 {
	if !s.mining.Enabled || !s.cfg.AutoMining {
		return 0
	}
	load := s.miningLoadKW(true)
	switch s.mining.MiningStrategy {
	case types.MiningExcessSolar:
		return min(load, max(0, solar-fleet))
	case types.MiningTOUArbitrage:
		if period == types.PeriodPeak {
			return 0
		}
	}
	return load
}

func (s site) maxBatteryRateKW() float64 {
	return s.capacity / powerwallKWH * powerwallRateKW
}

// batteryAvailable is how much the battery can deliver this hour. It only
// discharges during peak, or at night when arbitrage is allowed.
func (s site) batteryAvailable(period types.TOUPeriod, solar, soc float64) float64 {
	reserve := s.cfg.ReserveBatteryPercent
	if !s.battery || soc <= reserve {
		return 0
	}
	if period != types.PeriodPeak && !(solar == 0 && s.cfg.AutoArbitrage) {
		return 0
	}
	usable := (soc - reserve) / 100 * s.capacity * dischargeEfficiency
	return min(usable, s.maxBatteryRateKW())
}

// chargeDemand is how much the battery wants to charge this hour, during
// super off-peak or when solar covers the fleet and facility.
func (s site) chargeDemand(period types.TOUPeriod, solar, fleet, facility, soc float64) float64 {
	if !s.battery || soc >= 100 {
		return 0
	}
	if period != types.PeriodSuperOffPeak && solar <= fleet+facility {
		return 0
	}
	room := (100 - soc) / 100 * s.capacity
	return min(room, s.maxBatteryRateKW())
}

// priorityOrder sorts the demand consumers by priority, keeping the
// consumer order on ties.
func priorityOrder(p types.Priorities) []types.ConsumerType {
	order := slices.Clone(types.DemandConsumers)
	slices.SortStableFunc(order, func(a, b types.ConsumerType) int {
		return cmp.Compare(p.Rank(a), p.Rank(b))
	})
	return order
}

// allocate serves the hour's demand in priority order, first from solar and
// battery and then from the grid up to the import limit.
func (s site) allocate(hour int, ts time.Time, soc float64) types.AllocationPlan {
	period := s.tariff.Period(hour)
	solar := s.solar(hour)
	battery := s.batteryAvailable(period, solar, soc)

	fleet := s.fleetDemand(hour)
	facility := s.cfg.FacilityBaseLoadKW
	demand := types.DemandKW{
		FleetCharging:   fleet,
		FacilityOps:     facility,
		BatteryCharging: s.chargeDemand(period, solar, fleet, facility, soc),
		CryptoMining:    s.miningDemand(period, solar, fleet),
	}
	demand.Total = demand.FleetCharging + demand.FacilityOps + demand.BatteryCharging + demand.CryptoMining

	order := priorityOrder(s.cfg.Priorities)
	var alloc types.AllocationKW

	pool := solar + battery
	for _, c := range order {
		take := min(demand.Get(c), pool)
		alloc.Add(c, take)
		pool -= take
	}

	var grid float64
	for _, c := range order {
		unmet := demand.Get(c) - alloc.Get(c)
		if unmet > 0 && grid < s.cfg.MaxGridImportKW {
			take := min(unmet, s.cfg.MaxGridImportKW-grid)
			alloc.Add(c, take)
			grid += take
		}
	}

	if pool > 0 && s.cfg.AutoExport {
		alloc.GridExport = pool
	}

	var unmet float64
	for _, c := range order {
		unmet += demand.Get(c) - alloc.Get(c)
	}

	rate := s.tariff.RateForPeriod(period)
	gridCost := grid * rate
	exportRevenue := alloc.GridExport * s.tariff.ExportRate(rate)

	return types.AllocationPlan{
		Timestamp: ts,
		Period:    period,
		HourOfDay: hour,
		Sources: types.SourceKW{
			Solar:   solar,
			Battery: battery,
			Grid:    grid,
			Total:   solar + battery + grid,
		},
		Demands:      demand,
		Allocations:  alloc,
		UnmetDemand:  unmet,
		ExcessEnergy: pool,
		Costs: types.HourCosts{
			GridCost:      gridCost,
			ExportRevenue: exportRevenue,
			NetCost:       gridCost - exportRevenue,
		},
	}
}

// nextAllocationSoC moves the state of charge by the hour's battery charging
// allocation and battery source.
func (s site) nextAllocationSoC(soc float64, plan types.AllocationPlan) float64 {
	if s.capacity == 0 {
		return soc
	}
	soc += plan.Allocations.BatteryCharging / s.capacity * 100
	soc -= plan.Sources.Battery / s.capacity * 100
	return max(0, min(100, soc))
}

// baselineCost is the cost of the day with no storage or scheduling: every
// load net of solar bought at the average rate.
func (s site) baselineCost() float64 {
	rate := utility.AverageRate(s.energy)
	var mining float64
	if s.mining.Enabled {
		mining = s.miningLoadKW(false)
	}
	var total float64
	for h := 0; h < 24; h++ {
		load := s.fleetDemand(h) + s.cfg.FacilityBaseLoadKW + mining
		total += max(0, load-s.solar(h)) * rate
	}
	return total
}
