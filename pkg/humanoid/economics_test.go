package humanoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

func optimus(qty int, acq types.AcquisitionType) types.HumanoidConfig {
	return types.DefaultHumanoidConfig().
		WithEnabled(true).
		WithPlatform(types.PlatformSelection{PlatformID: "tesla_optimus", Quantity: qty, AcquisitionType: acq})
}

func TestCosts(t *testing.T) {
	c := types.DefaultHumanoidConfig()
	p, ok := types.HumanoidPlatformByID("tesla_optimus")
	require.True(t, ok)

	assert.InDelta(t, (25000+5000)*2, CapitalCost(p, 2, c), 1e-9)
	assert.InDelta(t, 595*2, OperatingCost(2, c), 1e-9)
	assert.InDelta(t, 800*2+595*2, LeaseCost(p, 2, c), 1e-9)
	// 5h run and 2h charge cycles
	assert.InDelta(t, 24.0/7*5*7, WeeklyCoverageHours(p, 1), 1e-9)
	assert.InDelta(t, 22*2080*1.3*2, HumanAnnualCost(c), 1e-9)

	t.Run("no cycle", func(t *testing.T) {
		assert.Zero(t, WeeklyCoverageHours(types.HumanoidPlatform{}, 3))
	})
}

func TestCompareLabor(t *testing.T) {
	t.Run("purchase", func(t *testing.T) {
		lc := CompareLabor(optimus(1, types.AcquirePurchase))
		human := 22 * 2080 * 1.3 * 2
		humanoid := 30000.0/5 + 595*12
		assert.InDelta(t, human, lc.HumanTotalAnnualCost, 1e-9)
		assert.InDelta(t, 80, lc.HumanWeeklyCoverageHours, 1e-9)
		assert.Equal(t, 1, lc.HumanoidQuantity)
		assert.InDelta(t, 30000, lc.HumanoidCapitalTotal, 1e-9)
		assert.InDelta(t, humanoid, lc.HumanoidAnnualCost, 1e-9)
		assert.InDelta(t, human-humanoid, lc.AnnualSavings, 1e-9)
		assert.InDelta(t, (human-humanoid)/12, lc.MonthlySavings, 1e-9)
		assert.InDelta(t, 120.0/80, lc.CoverageMultiplier, 1e-9)

		v, ok := lc.PaybackMonths.Value()
		require.True(t, ok)
		assert.InDelta(t, 30000/(human-humanoid)*12, v, 1e-9)
		assert.InDelta(t, human/(80*52), lc.CostPerHourHuman, 1e-9)
		assert.InDelta(t, humanoid/(120*52), lc.CostPerHourHumanoid, 1e-9)
	})

	t.Run("lease has no capital", func(t *testing.T) {
		lc := CompareLabor(optimus(1, types.AcquireLease))
		assert.Zero(t, lc.HumanoidCapitalTotal)
		assert.InDelta(t, (800+595)*12, lc.HumanoidAnnualOperating, 1e-9)
	})

	t.Run("no savings", func(t *testing.T) {
		c := optimus(10, types.AcquirePurchase)
		c.HumanFTECount = 0
		lc := CompareLabor(c)
		assert.True(t, lc.PaybackMonths.Never())
		assert.Zero(t, lc.CoverageMultiplier)
		assert.Zero(t, lc.CostPerHourHuman)
	})

	t.Run("unknown platform skipped", func(t *testing.T) {
		c := types.DefaultHumanoidConfig()
		c.Platforms = []types.PlatformSelection{{PlatformID: "nope", Quantity: 4, AcquisitionType: types.AcquirePurchase}}
		assert.Zero(t, CompareLabor(c).HumanoidQuantity)
	})
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, types.HumanoidRecommendation{Recommended: 4, Coverage: "Basic"}, Recommend(30, 12))
	assert.Equal(t, types.HumanoidRecommendation{Recommended: 8, Coverage: "Standard"}, Recommend(50, 15))
	assert.Equal(t, types.HumanoidRecommendation{Recommended: 3, Coverage: "Comprehensive"}, Recommend(10, 24))
	assert.Equal(t, types.HumanoidRecommendation{Recommended: 1, Coverage: "Comprehensive"}, Recommend(1, 12))
	assert.Equal(t, types.HumanoidRecommendation{Recommended: 0, Coverage: "Comprehensive"}, Recommend(0, 12))
}

func TestBreakEvenSeries(t *testing.T) {
	lc := CompareLabor(optimus(1, types.AcquirePurchase))
	series := BreakEvenSeries(lc, 60)
	require.Len(t, series, 61)
	assert.Zero(t, series[0].HumanCumulative)
	assert.InDelta(t, 30000, series[0].HumanoidCumulative, 1e-9)
	assert.InDelta(t, lc.HumanTotalAnnualCost*5, series[60].HumanCumulative, 1e-6)
}

func TestEligibleTasks(t *testing.T) {
	p, _ := types.HumanoidPlatformByID("unitree_h1")
	for _, task := range EligibleTasks(p) {
		assert.NotEqual(t, "interior_wipedown", task.ID)
	}

	p, _ = types.HumanoidPlatformByID("figure_02")
	assert.Len(t, EligibleTasks(p), len(types.TaskDefinitions))
}

func TestEconomics(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		res := Economics(types.DefaultHumanoidConfig(), 10, 12)
		assert.Zero(t, res.TotalMonthlyCost)
		assert.True(t, res.LaborComparison.PaybackMonths.Never())
		assert.Empty(t, res.BreakEvenSeries)
	})

	t.Run("no platforms", func(t *testing.T) {
		res := Economics(types.DefaultHumanoidConfig().WithEnabled(true), 10, 12)
		assert.Zero(t, res.TotalPlatforms)
		assert.Zero(t, res.TotalMonthlyCost)
		assert.Greater(t, res.LaborComparison.HumanTotalAnnualCost, 0.0)
	})

	t.Run("mixed order", func(t *testing.T) {
		c := optimus(2, types.AcquirePurchase).
			WithPlatform(types.PlatformSelection{PlatformID: "figure_02", Quantity: 1, AcquisitionType: types.AcquireLease})
		res := Economics(c, 4, 12)
		assert.Equal(t, 3, res.TotalPlatforms)
		assert.InDelta(t, 60000, res.TotalCapitalCost, 1e-9)
		assert.InDelta(t, 595*2+1500+595, res.TotalMonthlyOperating, 1e-9)
		assert.InDelta(t, 1000, res.MonthlyAmortizedCapital, 1e-9)
		assert.InDelta(t, 1000+595*3+1500, res.TotalMonthlyCost, 1e-9)
		assert.InDelta(t, 360.0/4, res.CoveragePerVehicle, 1e-9)
		assert.Len(t, res.BreakEvenSeries, 61)
	})
}
