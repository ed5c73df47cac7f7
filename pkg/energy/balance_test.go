package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

func touEnergy() types.EnergyConfig {
	return types.DefaultEnergyConfig().WithRateMode(types.RateModeTOU)
}

func TestBatteryCost(t *testing.T) {
	b := types.DefaultBatteryConfig().WithQuantity(2)
	res := BatteryCost(b)
	assert.InDelta(t, 27, res.TotalCapacity, 1e-9)
	assert.InDelta(t, 24.3, res.UsableCapacity, 1e-9)
	assert.InDelta(t, 24000, res.TotalCost, 1e-9)
	assert.InDelta(t, 200, res.MonthlyAmortizedCost, 1e-9)
	assert.InDelta(t, 24.3*0.15*0.8, res.DailyCycleValue, 1e-9)
}

func TestBalance(t *testing.T) {
	solar := types.DefaultSolarConfig().WithEnabled(true)
	battery := types.DefaultBatteryConfig().WithEnabled(true)

	t.Run("grid only", func(t *testing.T) {
		res := Balance(4200, 4.2, types.DefaultSolarConfig(), types.DefaultEnergyConfig(), types.DefaultBatteryConfig())
		assert.InDelta(t, 1000, res.MonthlyVehicleKWH, 1e-9)
		assert.Zero(t, res.MonthlySolarKWH)
		assert.InDelta(t, 1000, res.MonthlyGridImportKWH, 1e-9)
		assert.InDelta(t, 250, res.MonthlyGridCost, 1e-9)
		assert.Zero(t, res.MonthlyExportCredit)
		assert.InDelta(t, 250, res.MonthlyNetEnergyCost, 1e-9)
	})

	t.Run("solar with export", func(t *testing.T) {
		res := Balance(4200, 4.2, solar, types.DefaultEnergyConfig(), types.DefaultBatteryConfig())
		assert.InDelta(t, 1250, res.MonthlySolarKWH, 1e-9)
		assert.Zero(t, res.MonthlyGridImportKWH)
		assert.InDelta(t, 250, res.MonthlyExcessSolarKWH, 1e-9)
		assert.InDelta(t, 250*0.25*0.75, res.MonthlyExportCredit, 1e-9)
		assert.InDelta(t, -250*0.25*0.75, res.MonthlyNetEnergyCost, 1e-9)
	})

	t.Run("net metering off", func(t *testing.T) {
		e := types.DefaultEnergyConfig()
		e.NetMetering.Enabled = false
		res := Balance(4200, 4.2, solar, e, types.DefaultBatteryConfig())
		assert.Zero(t, res.MonthlyExportCredit)
	})

	t.Run("backup only never saves", func(t *testing.T) {
		b := battery.WithStrategy(types.BatteryBackupOnly)
		for _, e := range []types.EnergyConfig{types.DefaultEnergyConfig(), touEnergy()} {
			for _, s := range []types.SolarConfig{types.DefaultSolarConfig(), solar.WithSystemSize(40)} {
				res := Balance(4200, 4.2, s, e, b)
				assert.Zero(t, res.MonthlyBatterySavings)
				assert.Zero(t, res.MonthlyBatteryDischargeKWH)
				assert.InDelta(t, 100, res.MonthlyBatteryAmortizedCost, 1e-9)
			}
		}
	})

	t.Run("tou arbitrage", func(t *testing.T) {
		b := battery.WithStrategy(types.BatteryTOUArbitrage)
		res := Balance(4200, 4.2, types.DefaultSolarConfig(), touEnergy(), b)
		usable := 13.5 * 0.9
		assert.InDelta(t, usable*0.30*0.8*30, res.MonthlyBatterySavings, 1e-9)
		assert.InDelta(t, usable*30*0.8, res.MonthlyBatteryChargeKWH, 1e-9)
		assert.InDelta(t, usable*30*0.8*0.9, res.MonthlyBatteryDischargeKWH, 1e-9)
		assert.InDelta(t, 1000-usable*30*0.8*0.9, res.MonthlyGridImportKWH, 1e-9)
	})

	t.Run("tou arbitrage on flat rate", func(t *testing.T) {
		b := battery.WithStrategy(types.BatteryTOUArbitrage)
		res := Balance(4200, 4.2, types.DefaultSolarConfig(), types.DefaultEnergyConfig(), b)
		assert.Zero(t, res.MonthlyBatterySavings)

		// the bank still cycles and displaces grid import
		charge := 13.5 * 0.9 * 30 * 0.8
		assert.InDelta(t, charge, res.MonthlyBatteryChargeKWH, 1e-9)
		assert.InDelta(t, charge*0.9, res.MonthlyBatteryDischargeKWH, 1e-9)
		assert.InDelta(t, 1000-charge*0.9, res.MonthlyGridImportKWH, 1e-9)
		assert.InDelta(t, (1000-charge*0.9)*0.25+100, res.MonthlyNetEnergyCost, 1e-9)

		jan := MonthlyBreakdown(4200, 4.2, types.DefaultSolarConfig(), b)[0]
		assert.Equal(t, math.Round(res.MonthlyBatteryChargeKWH), jan.BatteryCharge)
		assert.Equal(t, math.Round(res.MonthlyBatteryDischargeKWH), jan.BatteryDischarge)
		assert.Equal(t, math.Round(res.MonthlyGridImportKWH), jan.GridImport)
	})

	t.Run("self consumption", func(t *testing.T) {
		res := Balance(4200, 4.2, solar, types.DefaultEnergyConfig(), battery)
		// 750 kWh of excess is capped at one usable cycle a day
		assert.InDelta(t, 364.5, res.MonthlyBatteryChargeKWH, 1e-9)
		assert.InDelta(t, 364.5*0.25, res.MonthlyBatterySavings, 1e-9)
		assert.Zero(t, res.MonthlyExcessSolarKWH)
	})

	t.Run("self consumption without solar", func(t *testing.T) {
		res := Balance(4200, 4.2, types.DefaultSolarConfig(), types.DefaultEnergyConfig(), battery)
		assert.Zero(t, res.MonthlyBatterySavings)
	})

	t.Run("non negative flows", func(t *testing.T) {
		res := Balance(0, 0, solar, touEnergy(), battery)
		assert.GreaterOrEqual(t, res.MonthlyGridImportKWH, 0.0)
		assert.GreaterOrEqual(t, res.MonthlyExcessSolarKWH, 0.0)
		assert.Zero(t, res.MonthlyVehicleKWH)
	})
}

func TestMonthlyBreakdown(t *testing.T) {
	solar := types.DefaultSolarConfig().WithEnabled(true)

	t.Run("twelve months", func(t *testing.T) {
		months := MonthlyBreakdown(4200, 4.2, solar, types.DefaultBatteryConfig())
		assert.Len(t, months, 12)
		assert.Equal(t, "Jan", months[0].Month)
		assert.Equal(t, "Dec", months[11].Month)

		var total float64
		for _, m := range months {
			total += m.SolarGeneration
			assert.Equal(t, 1000.0, m.VehicleConsumption)
		}
		assert.InDelta(t, 15000, total, 6)
		// July output exceeds the vehicle need
		assert.Equal(t, 725.0, months[6].GridExport)
		assert.Zero(t, months[6].GridImport)
	})

	t.Run("no solar", func(t *testing.T) {
		months := MonthlyBreakdown(4200, 4.2, types.DefaultSolarConfig(), types.DefaultBatteryConfig())
		for _, m := range months {
			assert.Zero(t, m.SolarGeneration)
			assert.Equal(t, 1000.0, m.GridImport)
		}
	})
}
