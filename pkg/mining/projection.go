package mining

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// DefaultProjectionMonths is the default length of a mining projection.
const DefaultProjectionMonths = 24

// Project runs the profitability calculator month by month while the
// network hashrate and difficulty compound at the configured annual growth.
// Cumulative profit starts at minus the hardware cost. Disabled mining
// projects nothing.
func Project(c types.MiningConfig, e types.EnergyConfig, s types.SolarConfig, b types.BatteryConfig, market types.MarketData, months int) []types.MiningProjectionMonth {
	if !c.Enabled || months <= 0 {
		return []types.MiningProjectionMonth{}
	}

	var growth float64
	if c.ModelDifficultyIncreases {
		growth = math.Pow(1+c.AnnualDifficultyGrowthPercent/100, 1.0/12) - 1
	}

	cumulative := -HardwareCost(c)
	out := make([]types.MiningProjectionMonth, 0, months)
	for month := 1; month <= months; month++ {
		market.Network.NetworkHashrateEH *= 1 + growth
		market.Network.Difficulty *= 1 + growth

		res := Profitability(c, e, s, b, market)
		cumulative += res.MonthlyNetProfit
		out = append(out, types.MiningProjectionMonth{
			Month:            month,
			Revenue:          res.MonthlyGrossRevenue,
			Profit:           res.MonthlyNetProfit,
			CumulativeProfit: cumulative,
		})
	}
	return out
}
