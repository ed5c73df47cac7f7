package scenario

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

func TestBreakEven(t *testing.T) {
	t.Run("reached", func(t *testing.T) {
		res := BreakEven(100000, 5000)
		months, ok := res.BreakEvenMonths.Value()
		require.True(t, ok)
		assert.InDelta(t, 20, months, 1e-9)
		assert.Equal(t, types.Reached(20), res.BreakEvenMonth)

		require.Len(t, res.CumulativeProfit, types.BreakEvenProjectionMonths+1)
		require.Len(t, res.CumulativeInvestment, types.BreakEvenProjectionMonths+1)
		assert.Equal(t, 0.0, res.CumulativeProfit[0])
		assert.InDelta(t, 100000, res.CumulativeProfit[20], 1e-9)
		assert.Equal(t, 100000.0, res.CumulativeInvestment[60])
	})

	t.Run("never", func(t *testing.T) {
		res := BreakEven(100000, 0)
		assert.True(t, res.BreakEvenMonths.Never())
		assert.Equal(t, types.Never(), res.BreakEvenMonth)

		b, err := json.Marshal(res)
		require.NoError(t, err)
		var raw map[string]any
		require.NoError(t, json.Unmarshal(b, &raw))
		assert.Nil(t, raw["breakEvenMonths"])
		assert.Nil(t, raw["breakEvenMonth"])
	})

	t.Run("losing money", func(t *testing.T) {
		assert.Equal(t, types.Never(), BreakEvenMonth(1000, -50))
	})

	t.Run("beyond the projection", func(t *testing.T) {
		assert.Equal(t, types.Reached(100), BreakEvenMonth(100000, 1000))
	})

	t.Run("partial month rounds up", func(t *testing.T) {
		assert.Equal(t, types.Reached(4), BreakEvenMonth(100, 30))
		assert.Equal(t, types.Reached(3), BreakEvenMonth(0.3, 0.1))
	})

	t.Run("nothing invested", func(t *testing.T) {
		assert.Equal(t, types.Reached(0), BreakEvenMonth(0, 10))
	})
}

func TestBreakEvenMonotonic(t *testing.T) {
	monthOf := func(b types.BreakEven) float64 {
		m, ok := b.Month()
		if !ok {
			return math.Inf(1)
		}
		return float64(m)
	}

	for _, investment := range []float64{0, 1, 999.99, 25000, 100000, 1e7} {
		prev := math.Inf(1)
		for profit := -500.0; profit <= 20000; profit += 137.5 {
			m := monthOf(BreakEvenMonth(investment, profit))
			assert.LessOrEqual(t, m, prev, "investment %v profit %v", investment, profit)
			prev = m
		}
	}
}

func TestMonthlyCosts(t *testing.T) {
	v := types.DefaultVehicleConfig()
	vc := types.VehicleCostCalculation{AmortizedCapitalMonthly: 400, MonthlyFixedCost: 300}
	r := types.DefaultRevenueConfig()
	rc := types.RevenueCalculation{TotalMiles: 4000, PlatformFees: 10, NetRevenue: 3000}
	e := types.EnergyCalculation{
		MonthlyVehicleKWH:    1000,
		MonthlyGridImportKWH: 400,
		MonthlyGridCost:      100,
		MonthlyExportCredit:  20,
		MonthlyNetEnergyCost: 80,
	}

	t.Run("solar off", func(t *testing.T) {
		s := types.DefaultSolarConfig()
		costs := MonthlyCosts(v, vc, r, rc, s, types.SolarCostCalculation{MonthlyAmortizedCost: 99}, e)
		assert.Equal(t, 0.0, costs.SolarAmortized)
		assert.Equal(t, 0.0, costs.EnergySolarOffset)
		assert.InDelta(t, 300+v.OperatingCosts.MaintenancePerMile*4000, costs.VehicleOperating, 1e-9)
		assert.Equal(t, r.Platform.OwnPlatformCostsMonthly, costs.OwnPlatformCosts)
		assert.InDelta(t, 400+costs.VehicleOperating+80+10+costs.OwnPlatformCosts, costs.TotalMonthlyCost, 1e-9)
	})

	t.Run("solar on", func(t *testing.T) {
		s := types.DefaultSolarConfig().WithEnabled(true)
		costs := MonthlyCosts(v, vc, r, rc, s, types.SolarCostCalculation{MonthlyAmortizedCost: 99}, e)
		assert.Equal(t, 99.0, costs.SolarAmortized)
		// 600 kWh of solar at $0.25
		assert.InDelta(t, 150, costs.EnergySolarOffset, 1e-9)
	})

	t.Run("third party platform", func(t *testing.T) {
		r := r.WithPlatform(types.PlatformConfig{Mode: types.PlatformUber, FeePercent: 0.25})
		costs := MonthlyCosts(v, vc, r, rc, types.DefaultSolarConfig(), types.SolarCostCalculation{}, e)
		assert.Equal(t, 0.0, costs.OwnPlatformCosts)
	})

	t.Run("revenue", func(t *testing.T) {
		rev := MonthlyRevenue(rc, e)
		assert.InDelta(t, 3020, rev.TotalMonthlyRevenue, 1e-9)
	})
}

func TestSummary(t *testing.T) {
	s := Summary("x", types.MonthlyCosts{TotalMonthlyCost: 1000}, types.MonthlyRevenue{TotalMonthlyRevenue: 1500}, 10000, true)
	assert.InDelta(t, 500, s.MonthlyProfit, 1e-9)
	m, ok := s.BreakEvenMonths.Value()
	require.True(t, ok)
	assert.InDelta(t, 20, m, 1e-9)

	s = Summary("y", types.MonthlyCosts{TotalMonthlyCost: 1500}, types.MonthlyRevenue{TotalMonthlyRevenue: 1000}, 10000, false)
	assert.True(t, s.BreakEvenMonths.Never())
}
