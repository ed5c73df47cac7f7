package scenario

import (
	"context"
	"log/slog"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/controller"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/energy"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/fleet"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/humanoid"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/mining"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

const (
	vehiclesOnlyName      = "Vehicles Only"
	vehiclesPlusSolarName = "Vehicles + Solar"
	// optimizerDaysPerMonth turns the optimizer's daily savings monthly.
	optimizerDaysPerMonth = 30
)

// MarketSource supplies the prices and network stats the mining calculator
// needs. Implementations substitute fallbacks instead of failing.
type MarketSource interface {
	MarketData(ctx context.Context) types.MarketData
}

type staticMarket struct {
	data types.MarketData
}

func (s staticMarket) MarketData(context.Context) types.MarketData {
	return s.data
}

// StaticMarket returns a MarketSource that always returns data.
func StaticMarket(data types.MarketData) MarketSource {
	return staticMarket{data: data}
}

// Calculator runs every domain calculator over a scenario and rolls the
// results up.
type Calculator struct {
	controller *controller.Controller
	market     MarketSource
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithController replaces the optimizer, typically to pin its clock.
func WithController(c *controller.Controller) Option {
	return func(calc *Calculator) {
		calc.controller = c
	}
}

// WithMarket replaces the market data source. The default uses static
// fallback prices.
func WithMarket(m MarketSource) Option {
	return func(calc *Calculator) {
		calc.market = m
	}
}

// NewCalculator creates a new Calculator.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		controller: controller.NewController(),
		market:     StaticMarket(types.DefaultMarketData()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate derives every result for the scenario. It never fails: disabled
// domains produce their zero records.
func (c *Calculator) Calculate(ctx context.Context, sc types.ScenarioConfig) types.ScenarioCalculations {
	market := c.market.MarketData(ctx)
	rate := utility.EffectiveRate(sc.Energy)

	vehicleCosts := fleet.VehicleCosts(sc.Vehicle, rate)
	revenue := fleet.Revenue(sc.Revenue, sc.Vehicle, rate)
	solarCosts := energy.SolarCost(sc.Solar)

	var batteryCosts types.BatteryCostCalculation
	if sc.Battery.Enabled {
		batteryCosts = energy.BatteryCost(sc.Battery)
	}

	efficiency := sc.Vehicle.Vehicle.EfficiencyMiPerKWH
	miningCfg := sc.Mining.WithFleetChargingKWHPerDay(energy.VehicleKWH(revenue.TotalMiles, efficiency) / optimizerDaysPerMonth)
	miningRes := mining.Profitability(miningCfg, sc.Energy, sc.Solar, sc.Battery, market)
	projection := mining.Project(miningCfg, sc.Energy, sc.Solar, sc.Battery, market, mining.DefaultProjectionMonths)

	humanoidRes := humanoid.Economics(sc.Humanoid, sc.Vehicle.Quantity, sc.Revenue.Utilization.OperatingHoursPerDay)
	optimizerRes := c.controller.Optimize(ctx, sc)

	balance := energy.Balance(revenue.TotalMiles, efficiency, sc.Solar, sc.Energy, sc.Battery)
	costs := MonthlyCosts(sc.Vehicle, vehicleCosts, sc.Revenue, revenue, sc.Solar, solarCosts, balance)
	monthlyRevenue := MonthlyRevenue(revenue, balance)

	investment := TotalInvestment(sc.Vehicle, sc.Solar, solarCosts) + batteryCosts.TotalCost
	if sc.Mining.Enabled {
		investment += miningRes.TotalHardwareCost
	}
	if sc.Humanoid.Enabled {
		investment += humanoidRes.TotalCapitalCost
	}

	profit := monthlyRevenue.TotalMonthlyRevenue -
		costs.TotalMonthlyCost -
		batteryCosts.MonthlyAmortizedCost +
		balance.MonthlyBatterySavings
	if sc.Optimizer.Enabled {
		profit += optimizerRes.Costs.SavingsVsBaseline * optimizerDaysPerMonth
	}
	if sc.Mining.Enabled {
		profit += miningRes.MonthlyNetProfit
	}
	if sc.Humanoid.Enabled && sc.Humanoid.LaborComparisonEnabled {
		profit += humanoidRes.LaborComparison.MonthlySavings
	}

	log.Ctx(ctx).DebugContext(ctx, "scenario calculated",
		slog.String("name", sc.Name),
		slog.Float64("monthlyProfit", profit),
		slog.Float64("totalInvestment", investment),
	)

	return types.ScenarioCalculations{
		VehicleCosts:     vehicleCosts,
		Revenue:          revenue,
		SolarCosts:       solarCosts,
		BatteryCosts:     batteryCosts,
		Energy:           balance,
		MonthlyEnergy:    energy.MonthlyBreakdown(revenue.TotalMiles, efficiency, sc.Solar, sc.Battery),
		Mining:           miningRes,
		MiningProjection: projection,
		Humanoid:         humanoidRes,
		Optimizer:        optimizerRes,
		MonthlyCosts:     costs,
		MonthlyRevenue:   monthlyRevenue,
		BreakEven:        BreakEven(investment, profit),
		Comparison:       Compare(sc),
	}
}

// Compare runs the fleet with solar forced off and on, holding everything
// else fixed. Battery, mining, humanoid and optimizer lines are left out of
// both sides.
func Compare(sc types.ScenarioConfig) types.ScenarioComparison {
	return types.ScenarioComparison{
		VehiclesOnly:      summarize(vehiclesOnlyName, sc, sc.Solar.WithEnabled(false)),
		VehiclesPlusSolar: summarize(vehiclesPlusSolarName, sc, sc.Solar.WithEnabled(true)),
	}
}

func summarize(name string, sc types.ScenarioConfig, s types.SolarConfig) types.ScenarioSummary {
	rate := utility.EffectiveRate(sc.Energy)
	vehicleCosts := fleet.VehicleCosts(sc.Vehicle, rate)
	revenue := fleet.Revenue(sc.Revenue, sc.Vehicle, rate)
	solarCosts := energy.SolarCost(s)
	balance := energy.Balance(revenue.TotalMiles, sc.Vehicle.Vehicle.EfficiencyMiPerKWH, s, sc.Energy, types.BatteryConfig{})

	costs := MonthlyCosts(sc.Vehicle, vehicleCosts, sc.Revenue, revenue, s, solarCosts, balance)
	return Summary(name, costs, MonthlyRevenue(revenue, balance), TotalInvestment(sc.Vehicle, s, solarCosts), s.Enabled)
}
