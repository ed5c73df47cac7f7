package controller

import (
	"testing"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityOrder(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		assert.Equal(t, types.DemandConsumers, priorityOrder(types.DefaultOptimizerConfig().Priorities))
	})

	t.Run("reordered", func(t *testing.T) {
		p := types.Priorities{FleetCharging: 3, FacilityOps: 1, BatteryCharging: 4, CryptoMining: 2, GridExport: 5}
		assert.Equal(t, []types.ConsumerType{
			types.ConsumerFacilityOps,
			types.ConsumerCryptoMining,
			types.ConsumerFleetCharging,
			types.ConsumerBatteryCharging,
		}, priorityOrder(p))
		// the shared consumer list is untouched
		assert.Equal(t, types.ConsumerFleetCharging, types.DemandConsumers[0])
	})

	t.Run("ties keep consumer order", func(t *testing.T) {
		p := types.Priorities{FleetCharging: 2, FacilityOps: 2, BatteryCharging: 1, CryptoMining: 2, GridExport: 2}
		assert.Equal(t, []types.ConsumerType{
			types.ConsumerBatteryCharging,
			types.ConsumerFleetCharging,
			types.ConsumerFacilityOps,
			types.ConsumerCryptoMining,
		}, priorityOrder(p))
	})
}

func solarOnlySite(priorities types.Priorities) site {
	sc := optimizerScenario()
	sc.Vehicle = sc.Vehicle.WithQuantity(10)
	sc.Solar = sc.Solar.WithEnabled(true).WithSystemSize(10)
	sc.Optimizer = sc.Optimizer.WithMaxGridImport(0).WithPriorities(priorities)
	return newSite(sc)
}

func TestAllocatePriority(t *testing.T) {
	// noon: 10 kW of solar against 27.5 kW of fleet and 5 kW of facility
	t.Run("fleet first", func(t *testing.T) {
		s := solarOnlySite(types.DefaultOptimizerConfig().Priorities)
		p := s.allocate(12, testNow, startingSoC)
		assert.InDelta(t, 10, p.Sources.Solar, 1e-9)
		assert.InDelta(t, 27.5, p.Demands.FleetCharging, 1e-9)
		assert.InDelta(t, 10, p.Allocations.FleetCharging, 1e-9)
		assert.Equal(t, 0.0, p.Allocations.FacilityOps)
		assert.InDelta(t, 22.5, p.UnmetDemand, 1e-9)
	})

	t.Run("facility first", func(t *testing.T) {
		s := solarOnlySite(types.Priorities{FleetCharging: 2, FacilityOps: 1, BatteryCharging: 3, CryptoMining: 4, GridExport: 5})
		p := s.allocate(12, testNow, startingSoC)
		assert.InDelta(t, 5, p.Allocations.FacilityOps, 1e-9)
		assert.InDelta(t, 5, p.Allocations.FleetCharging, 1e-9)
	})

	t.Run("supply between thresholds", func(t *testing.T) {
		for _, kw := range []float64{6, 12, 20, 27} {
			sc := optimizerScenario()
			sc.Vehicle = sc.Vehicle.WithQuantity(10)
			sc.Solar = sc.Solar.WithEnabled(true).WithSystemSize(kw)
			sc.Optimizer = sc.Optimizer.WithMaxGridImport(0)
			p := newSite(sc).allocate(12, testNow, startingSoC)
			assert.InDelta(t, kw, p.Allocations.FleetCharging, 1e-9, "solar %v", kw)
			assert.Equal(t, 0.0, p.Allocations.FacilityOps, "solar %v", kw)
		}
	})
}

func TestAllocateGridAndExport(t *testing.T) {
	t.Run("grid fills up to the limit", func(t *testing.T) {
		sc := optimizerScenario()
		sc.Vehicle = sc.Vehicle.WithQuantity(10)
		sc.Optimizer = sc.Optimizer.WithMaxGridImport(20)
		p := newSite(sc).allocate(0, testNow, startingSoC)
		// 88 kW of fleet demand at midnight
		assert.InDelta(t, 20, p.Sources.Grid, 1e-9)
		assert.InDelta(t, 20, p.Allocations.FleetCharging, 1e-9)
		// super off-peak pays 60% of the flat rate
		assert.InDelta(t, 20*0.15, p.Costs.GridCost, 1e-9)
	})

	t.Run("surplus solar is exported", func(t *testing.T) {
		sc := optimizerScenario()
		sc.Solar = sc.Solar.WithEnabled(true).WithSystemSize(100)
		p := newSite(sc).allocate(12, testNow, startingSoC)
		// 100 kW of solar, 2.75 kW of fleet and 5 kW of facility
		assert.InDelta(t, 92.25, p.ExcessEnergy, 1e-9)
		assert.InDelta(t, 92.25, p.Allocations.GridExport, 1e-9)
		assert.InDelta(t, 92.25*0.25*0.75, p.Costs.ExportRevenue, 1e-9)
		assert.InDelta(t, -p.Costs.ExportRevenue, p.Costs.NetCost, 1e-9)
	})

	t.Run("export disabled", func(t *testing.T) {
		sc := optimizerScenario()
		sc.Solar = sc.Solar.WithEnabled(true).WithSystemSize(100)
		sc.Optimizer.AutoExport = false
		p := newSite(sc).allocate(12, testNow, startingSoC)
		assert.Equal(t, 0.0, p.Allocations.GridExport)
		assert.InDelta(t, 92.25, p.ExcessEnergy, 1e-9)
	})
}

func TestBatteryRules(t *testing.T) {
	sc := optimizerScenario()
	sc.Battery = sc.Battery.WithEnabled(true)
	s := newSite(sc)

	t.Run("discharges during peak", func(t *testing.T) {
		assert.InDelta(t, 5, s.batteryAvailable(types.PeriodPeak, 0, 100), 1e-9)
		assert.InDelta(t, 0.1*13.5*0.9, s.batteryAvailable(types.PeriodPeak, 0, 30), 1e-9)
		assert.Equal(t, 0.0, s.batteryAvailable(types.PeriodPeak, 0, 20))
	})

	t.Run("night arbitrage", func(t *testing.T) {
		assert.InDelta(t, 5, s.batteryAvailable(types.PeriodOffPeak, 0, 100), 1e-9)
		assert.Equal(t, 0.0, s.batteryAvailable(types.PeriodOffPeak, 3, 100))
	})

	t.Run("charges super off-peak or on surplus", func(t *testing.T) {
		assert.InDelta(t, 5, s.chargeDemand(types.PeriodSuperOffPeak, 0, 10, 5, 50), 1e-9)
		assert.InDelta(t, 1.35, s.chargeDemand(types.PeriodOffPeak, 20, 10, 5, 90), 1e-9)
		assert.Equal(t, 0.0, s.chargeDemand(types.PeriodOffPeak, 10, 10, 5, 50))
		assert.Equal(t, 0.0, s.chargeDemand(types.PeriodSuperOffPeak, 0, 0, 0, 100))
	})
}

func TestMiningDemand(t *testing.T) {
	sc := optimizerScenario()
	sc.Mining = sc.Mining.WithEnabled(true)
	sc.Mining.ASICQuantity = 2
	sc.Mining.ASICOverclockPercent = 10

	t.Run("continuous", func(t *testing.T) {
		sc := sc
		sc.Mining = sc.Mining.WithStrategy(types.MiningContinuous)
		assert.InDelta(t, 2*1.1*3.5, newSite(sc).miningDemand(types.PeriodPeak, 0, 0), 1e-9)
	})

	t.Run("tou arbitrage pauses during peak", func(t *testing.T) {
		sc := sc
		sc.Mining = sc.Mining.WithStrategy(types.MiningTOUArbitrage)
		s := newSite(sc)
		assert.Equal(t, 0.0, s.miningDemand(types.PeriodPeak, 0, 0))
		assert.InDelta(t, 7.7, s.miningDemand(types.PeriodOffPeak, 0, 0), 1e-9)
	})

	t.Run("excess solar", func(t *testing.T) {
		sc := sc
		sc.Mining = sc.Mining.WithStrategy(types.MiningExcessSolar)
		s := newSite(sc)
		assert.InDelta(t, 3, s.miningDemand(types.PeriodOffPeak, 8, 5), 1e-9)
		assert.InDelta(t, 7.7, s.miningDemand(types.PeriodOffPeak, 50, 5), 1e-9)
		assert.Equal(t, 0.0, s.miningDemand(types.PeriodOffPeak, 2, 5))
	})

	t.Run("auto mining off", func(t *testing.T) {
		sc := sc
		sc.Optimizer.AutoMining = false
		assert.Equal(t, 0.0, newSite(sc).miningDemand(types.PeriodOffPeak, 0, 0))
	})

	t.Run("baseline ignores overclock", func(t *testing.T) {
		assert.InDelta(t, 7, newSite(sc).miningLoadKW(false), 1e-9)
	})
}

func TestSimulate(t *testing.T) {
	sc := optimizerScenario()
	sc.Solar = sc.Solar.WithEnabled(true).WithSystemSize(10)
	sc.Battery = sc.Battery.WithEnabled(true)
	s := newSite(sc)

	hours, trace := s.simulate()
	require.Len(t, hours, 24)
	require.Len(t, trace, 24)

	t.Run("discharges to the reserve", func(t *testing.T) {
		// 13.8 kW of load at midnight, 30% of 13.5 kWh above the reserve
		h := hours[0]
		assert.Equal(t, types.PeriodSuperOffPeak, h.Period)
		assert.Equal(t, types.BatteryDischarge, h.BatteryAction)
		assert.InDelta(t, 4.05, h.BatteryKW, 1e-9)
		assert.InDelta(t, 9.75, h.GridImport, 1e-9)
		assert.InDelta(t, 20, trace[0], 1e-9)
	})

	t.Run("tops up at the reserve", func(t *testing.T) {
		h := hours[1]
		assert.Equal(t, types.BatteryCharge, h.BatteryAction)
		assert.InDelta(t, 5, h.BatteryKW, 1e-9)
		assert.InDelta(t, 17.7, h.GridImport, 1e-9)
	})

	t.Run("stores surplus solar", func(t *testing.T) {
		h := hours[12]
		if trace[11] < 100 {
			assert.Equal(t, types.BatteryCharge, h.BatteryAction)
			assert.InDelta(t, min(2.25, (100-trace[11])/100*13.5), h.BatteryKW, 1e-9)
		}
		assert.Equal(t, 0.0, h.GridImport)
		assert.Equal(t, 0.25, h.GridRate)
	})

	t.Run("totals", func(t *testing.T) {
		tot := totals(hours)
		var solar, fleet float64
		for h := 0; h < 24; h++ {
			solar += s.solar(h)
			fleet += s.fleetDemand(h)
		}
		assert.InDelta(t, solar, tot.SolarGeneration, 1e-9)
		assert.InDelta(t, fleet, tot.FleetCharging, 1e-9)
		assert.InDelta(t, 24*5, tot.FacilityOps, 1e-9)
		assert.Greater(t, tot.BatteryThroughput, 0.0)
	})
}

func TestBaselineCost(t *testing.T) {
	sc := optimizerScenario()
	s := newSite(sc)
	var load float64
	for h := 0; h < 24; h++ {
		load += s.fleetDemand(h) + 5
	}
	assert.InDelta(t, load*0.25, s.baselineCost(), 1e-9)
}
