package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

func enabledMining() types.MiningConfig {
	return types.DefaultMiningConfig().WithEnabled(true)
}

func TestHardware(t *testing.T) {
	c := enabledMining()
	assert.InDelta(t, 200, ASICHashrateTH(c), 1e-9)
	assert.InDelta(t, 3500, ASICPowerWatts(c), 1e-9)
	assert.InDelta(t, 7000, HardwareCost(c), 1e-9)
	assert.InDelta(t, 50.0/3+20, MaintenanceCost(c), 1e-9)

	t.Run("overclock", func(t *testing.T) {
		c := enabledMining()
		c.ASICOverclockPercent = 10
		assert.InDelta(t, 220, ASICHashrateTH(c), 1e-9)
		assert.InDelta(t, 3500*1.13, ASICPowerWatts(c), 1e-9)
	})

	t.Run("gpu rigs", func(t *testing.T) {
		c := enabledMining()
		c.GPUEnabled = true
		c.GPURigCount = 2
		assert.InDelta(t, 58*12, GPUHashrateMH(c), 1e-9)
		assert.InDelta(t, 350*12+200, GPUPowerWatts(c), 1e-9)
		assert.InDelta(t, 4500+1800*12+1000+2500, HardwareCost(c), 1e-9)

		c.GPUAlgorithm = types.AlgorithmAutolykos
		assert.InDelta(t, 260*12, GPUHashrateMH(c), 1e-9)
	})

	t.Run("unknown models", func(t *testing.T) {
		c := enabledMining().WithASIC("nope", 4)
		assert.Zero(t, ASICHashrateTH(c))
		assert.Zero(t, ASICPowerWatts(c))
	})

	t.Run("disabled draws nothing", func(t *testing.T) {
		assert.Zero(t, TotalPowerWatts(types.DefaultMiningConfig()))
	})
}

func TestDailyBTC(t *testing.T) {
	c := enabledMining()
	res := DailyBTC(c, types.DefaultNetworkStats(), 67000)
	// 450 BTC a day shared at 200 TH of 600 EH
	assert.InDelta(t, 1.5e-4, res.DailyGross, 1e-12)
	assert.InDelta(t, 1.47e-4, res.DailyNet, 1e-12)
	assert.InDelta(t, 1.47e-4*67000, res.DailyUSD, 1e-9)

	t.Run("no network", func(t *testing.T) {
		stats := types.DefaultNetworkStats()
		stats.NetworkHashrateEH = 0
		assert.Zero(t, DailyBTC(c, stats, 67000).DailyUSD)
		assert.Zero(t, MinerShare(c, stats))
	})
}

func TestDailyAltcoinUSD(t *testing.T) {
	c := enabledMining()
	c.GPUEnabled = true
	p := types.DefaultCryptoPrices()
	assert.InDelta(t, 58*6*0.007*0.98, DailyAltcoinUSD(c, p), 1e-9)

	p.Ravencoin = 0.05
	assert.InDelta(t, 58*6*0.014*0.98, DailyAltcoinUSD(c, p), 1e-9)

	c.GPUTargetCoin = types.CoinLTC
	assert.InDelta(t, 58*6*0.005*0.98, DailyAltcoinUSD(c, p), 1e-9)
}

func TestProfitability(t *testing.T) {
	energy := types.DefaultEnergyConfig()
	market := types.DefaultMarketData()
	noSolar := types.DefaultSolarConfig()
	noBattery := types.DefaultBatteryConfig()

	t.Run("disabled", func(t *testing.T) {
		res := Profitability(types.DefaultMiningConfig(), energy, noSolar, noBattery, market)
		assert.Equal(t, 24.0, res.EffectiveHoursPerDay)
		assert.Zero(t, res.MonthlyNetProfit)
		assert.Zero(t, res.TotalHardwareCost)
		assert.True(t, res.PaybackMonths.Never())
	})

	t.Run("continuous on grid", func(t *testing.T) {
		res := Profitability(enabledMining(), energy, noSolar, noBattery, market)
		assert.Equal(t, 24.0, res.EffectiveHoursPerDay)
		assert.InDelta(t, 132, res.DailyEnergyKWH, 1e-9)
		assert.InDelta(t, 3960, res.EnergyFromGridKWH, 1e-9)
		assert.InDelta(t, 990, res.MonthlyEnergyCost, 1e-9)
		assert.InDelta(t, 360, res.MonthlyCoolingCost, 1e-9)
		assert.InDelta(t, 1.47e-4*67000*30, res.MonthlyGrossRevenue, 1e-6)

		net := res.MonthlyGrossRevenue - 990 - 360 - (50.0/3 + 20)
		assert.InDelta(t, net, res.MonthlyNetProfit, 1e-6)
		assert.True(t, res.PaybackMonths.Never())
		assert.Zero(t, res.SolarOffsetPercent)
	})

	t.Run("unset flat rate", func(t *testing.T) {
		res := Profitability(enabledMining(), energy.WithFlatRate(0), noSolar, noBattery, market)
		assert.InDelta(t, 3960*0.15, res.MonthlyEnergyCost, 1e-9)
		assert.InDelta(t, 360*0.15/0.25, res.MonthlyCoolingCost, 1e-9)
		assert.Positive(t, res.EnergyCostWithoutSolar)
	})

	t.Run("excess solar without solar", func(t *testing.T) {
		c := enabledMining().WithStrategy(types.MiningExcessSolar)
		res := Profitability(c, energy, noSolar, noBattery, market)
		assert.Zero(t, res.EffectiveHoursPerDay)
		assert.Zero(t, res.MonthlyGrossRevenue)
		assert.Zero(t, res.MonthlyEnergyCost)
		assert.InDelta(t, -MaintenanceCost(c), res.MonthlyNetProfit, 1e-9)
		assert.True(t, res.PaybackMonths.Never())
	})

	t.Run("excess solar with solar", func(t *testing.T) {
		c := enabledMining().WithStrategy(types.MiningExcessSolar)
		c.FacilityBaseLoadKW = 0
		res := Profitability(c, energy, noSolar.WithEnabled(true), noBattery, market)
		assert.Equal(t, 6.0, res.EffectiveHoursPerDay)
		assert.InDelta(t, 990, res.EnergyFromSolarKWH, 1e-9)
		assert.Zero(t, res.EnergyFromGridKWH)
		assert.Zero(t, res.MonthlyEnergyCost)
		assert.InDelta(t, 100, res.SolarOffsetPercent, 1e-9)
		assert.InDelta(t, 1.47e-4*67000*30/4, res.MonthlyGrossRevenue, 1e-6)
	})

	t.Run("tou arbitrage off peak", func(t *testing.T) {
		c := enabledMining().WithStrategy(types.MiningTOUArbitrage)
		e := energy.WithRateMode(types.RateModeTOU)
		res := Profitability(c, e, noSolar, noBattery.WithEnabled(true), market)
		assert.Equal(t, 12.0, res.EffectiveHoursPerDay)
		demand := 5.5 * 12 * 30.0
		battery := 13.5 * 0.4 * 30
		assert.InDelta(t, battery, res.EnergyFromBatteryKWH, 1e-9)
		assert.InDelta(t, demand-battery, res.EnergyFromGridKWH, 1e-9)
		assert.InDelta(t, (demand-battery)*0.15, res.MonthlyEnergyCost, 1e-9)
	})

	t.Run("continuous blended tou", func(t *testing.T) {
		e := energy.WithRateMode(types.RateModeTOU)
		res := Profitability(enabledMining(), e, noSolar, noBattery, market)
		blended := (0.15*12 + 0.45*5 + 0.25*7) / 24
		assert.InDelta(t, 3960*blended, res.MonthlyEnergyCost, 1e-9)
	})

	t.Run("profitable payback", func(t *testing.T) {
		m := market
		m.Prices.Bitcoin = 500000
		e := energy.WithFlatRate(0.05)
		res := Profitability(enabledMining(), e, noSolar, noBattery, m)
		require.Greater(t, res.MonthlyNetProfit, 0.0)
		v, ok := res.PaybackMonths.Value()
		assert.True(t, ok)
		assert.InDelta(t, 7000/res.MonthlyNetProfit, v, 1e-9)
	})

	t.Run("hours bounded", func(t *testing.T) {
		strategies := []types.MiningStrategy{types.MiningExcessSolar, types.MiningTOUArbitrage, types.MiningContinuous}
		sizes := []float64{0, 1, 10, 100, 1000}
		for _, strategy := range strategies {
			for _, size := range sizes {
				c := enabledMining().WithStrategy(strategy)
				c.FacilityBaseLoadKW = 0
				s := noSolar.WithEnabled(true).WithSystemSize(size)
				res := Profitability(c, energy, s, noBattery, market)
				assert.GreaterOrEqual(t, res.EffectiveHoursPerDay, 0.0, "%s %v", strategy, size)
				assert.LessOrEqual(t, res.EffectiveHoursPerDay, 24.0, "%s %v", strategy, size)
			}
		}
	})
}

func TestProject(t *testing.T) {
	energy := types.DefaultEnergyConfig()
	market := types.DefaultMarketData()

	t.Run("disabled", func(t *testing.T) {
		assert.Empty(t, Project(types.DefaultMiningConfig(), energy, types.DefaultSolarConfig(), types.DefaultBatteryConfig(), market, 24))
	})

	t.Run("difficulty growth", func(t *testing.T) {
		c := enabledMining()
		months := Project(c, energy, types.DefaultSolarConfig(), types.DefaultBatteryConfig(), market, DefaultProjectionMonths)
		require.Len(t, months, 24)
		assert.Equal(t, 1, months[0].Month)
		assert.InDelta(t, -7000+months[0].Profit, months[0].CumulativeProfit, 1e-9)
		for i := 1; i < len(months); i++ {
			assert.Less(t, months[i].Revenue, months[i-1].Revenue)
		}
		// a year of 25% growth cuts revenue by a fifth
		assert.InDelta(t, months[0].Revenue/1.25, months[12].Revenue, 1e-6)
	})

	t.Run("flat difficulty", func(t *testing.T) {
		c := enabledMining()
		c.ModelDifficultyIncreases = false
		months := Project(c, energy, types.DefaultSolarConfig(), types.DefaultBatteryConfig(), market, 3)
		require.Len(t, months, 3)
		assert.InDelta(t, months[0].Revenue, months[2].Revenue, 1e-9)
	})
}
