package controller

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// maxSimulationRateKW caps the simulated battery in both directions.
const maxSimulationRateKW = 5

// simulate runs the day hour by hour with a simple battery policy: store
// surplus solar, cover deficits above the reserve, and top up from the grid
// during super off-peak. It returns the hours and the state of charge after
// each one.
func (s site) simulate() ([]types.SimulationHour, []float64) {
	soc := 0.0
	if s.battery {
		soc = startingSoC
	}

	hours := make([]types.SimulationHour, 0, 24)
	trace := make([]float64, 0, 24)
	for h := 0; h < 24; h++ {
		period := s.tariff.Period(h)
		solar := s.solar(h)
		fleet := s.fleetDemand(h)
		facility := s.cfg.FacilityBaseLoadKW
		mining := s.miningDemand(period, solar, fleet)
		demand := fleet + facility + mining
		netSolar := solar - demand

		action := types.BatteryHold
		var kw float64
		if s.capacity > 0 {
			room := (100 - soc) / 100 * s.capacity
			available := (soc - s.cfg.ReserveBatteryPercent) / 100 * s.capacity
			switch {
			case netSolar > 0 && soc < 100:
				action = types.BatteryCharge
				kw = min(netSolar, room, maxSimulationRateKW)
			case netSolar < 0 && soc > s.cfg.ReserveBatteryPercent:
				if period == types.PeriodPeak || solar < demand {
					action = types.BatteryDischarge
					kw = min(math.Abs(netSolar), available, maxSimulationRateKW)
				}
			case period == types.PeriodSuperOffPeak && soc < 100 && s.cfg.AutoArbitrage:
				action = types.BatteryCharge
				kw = min(room, maxSimulationRateKW)
			}
			switch action {
			case types.BatteryCharge:
				soc += kw / s.capacity * 100
			case types.BatteryDischarge:
				soc -= kw / s.capacity * 100
			}
			soc = max(0, min(100, soc))
		}

		var discharge, charge float64
		switch action {
		case types.BatteryCharge:
			charge = kw
		case types.BatteryDischarge:
			discharge = kw
		}
		net := demand - solar - discharge

		hours = append(hours, types.SimulationHour{
			Hour:           h,
			Period:         period,
			SolarOutput:    solar,
			GridRate:       s.tariff.RateForPeriod(period),
			FleetDemand:    fleet,
			MiningDemand:   mining,
			FacilityDemand: facility,
			BatteryAction:  action,
			BatteryKW:      kw,
			GridImport:     max(0, net+charge),
			GridExport:     max(0, -net),
		})
		trace = append(trace, soc)
	}
	return hours, trace
}

// totals sums the simulated day.
func totals(hours []types.SimulationHour) types.DailyTotals {
	var t types.DailyTotals
	for _, h := range hours {
		t.SolarGeneration += h.SolarOutput
		t.BatteryThroughput += math.Abs(h.BatteryKW)
		t.GridImport += h.GridImport
		t.GridExport += h.GridExport
		t.FleetCharging += h.FleetDemand
		t.FacilityOps += h.FacilityDemand
		t.MiningConsumption += h.MiningDemand
	}
	return t
}
