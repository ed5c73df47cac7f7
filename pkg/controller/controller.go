package controller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

const (
	// startingSoC is the battery state of charge assumed at midnight.
	startingSoC = 50
	// readyFleetShare and assumedFleetSoC estimate fleet readiness.
	readyFleetShare = 0.9
	assumedFleetSoC = 85
	// lowBatteryCycles flags a battery that barely cycled.
	lowBatteryCycles = 0.5
	// peakGridShare flags a day that leans on the grid during peak.
	peakGridShare = 0.3
)

// Controller plans how the site's energy is shared between its consumers
// hour by hour.
type Controller struct {
	now func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the clock used to pick the current allocation.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a new Controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Optimize allocates a day of energy for the scenario and simulates the
// battery over it. A disabled optimizer returns an empty result.
func (c *Controller) Optimize(ctx context.Context, sc types.ScenarioConfig) types.OptimizerCalculation {
	if !sc.Optimizer.Enabled {
		return Disabled()
	}

	now := c.now()
	s := newSite(sc)
	log.Ctx(ctx).DebugContext(ctx, "optimizer started",
		slog.Float64("solarKW", s.solarKW),
		slog.Float64("batteryKWH", s.capacity),
		slog.Int("vehicles", s.vehicles),
		slog.Float64("maxGridImportKW", s.cfg.MaxGridImportKW),
	)

	sim, simTrace := s.simulate()

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	plans := make([]types.AllocationPlan, 0, 24)
	allocTrace := make([]float64, 0, 24)
	soc := float64(startingSoC)
	for h := 0; h < 24; h++ {
		plan := s.allocate(h, day.Add(time.Duration(h)*time.Hour), soc)
		plans = append(plans, plan)
		soc = s.nextAllocationSoC(soc, plan)
		allocTrace = append(allocTrace, soc)
	}

	res := types.OptimizerCalculation{
		CurrentAllocation:       plans[now.Hour()],
		HourlyAllocations:       plans,
		Simulation:              sim,
		DailyTotals:             totals(sim),
		AllocationSoCTrace:      allocTrace,
		DailySimulationSoCTrace: simTrace,
	}

	for _, p := range plans {
		res.Costs.TotalGridCost += p.Costs.GridCost
		res.Costs.TotalExportRevenue += p.Costs.ExportRevenue
	}
	res.Costs.NetEnergyCost = res.Costs.TotalGridCost - res.Costs.TotalExportRevenue
	res.Costs.BaselineCost = s.baselineCost()
	res.Costs.SavingsVsBaseline = res.Costs.BaselineCost - res.Costs.NetEnergyCost
	if res.Costs.BaselineCost > 0 {
		res.Costs.OptimizationEfficiency = res.Costs.SavingsVsBaseline / res.Costs.BaselineCost * 100
	}

	cycleBase := s.capacity * 2
	if cycleBase == 0 {
		cycleBase = 1
	}
	res.BatteryState = types.BatteryState{
		CurrentSoC:           soc,
		ProjectedEndOfDaySoC: soc,
		CyclesUsedToday:      res.DailyTotals.BatteryThroughput / cycleBase,
	}
	res.FleetReadiness = types.FleetReadiness{
		VehiclesAtTargetSoC: int(float64(s.vehicles) * readyFleetShare),
		TotalVehicles:       s.vehicles,
		AverageSoC:          assumedFleetSoC,
	}
	res.Recommendations = Recommendations(res)

	log.Ctx(ctx).DebugContext(ctx, "optimizer finished",
		slog.Float64("netEnergyCost", res.Costs.NetEnergyCost),
		slog.Float64("baselineCost", res.Costs.BaselineCost),
		slog.Float64("endSoC", soc),
	)
	return res
}

// Disabled is the result of a disabled optimizer: a placeholder off-peak
// allocation at hour 0 and no hourly data.
func Disabled() types.OptimizerCalculation {
	return types.OptimizerCalculation{
		CurrentAllocation:       types.AllocationPlan{Period: types.PeriodOffPeak},
		HourlyAllocations:       []types.AllocationPlan{},
		Simulation:              []types.SimulationHour{},
		AllocationSoCTrace:      []float64{},
		DailySimulationSoCTrace: []float64{},
		Recommendations:         []string{},
	}
}

// Recommendations turns an optimized day into advice for the operator.
func Recommendations(res types.OptimizerCalculation) []string {
	recs := []string{}
	if res.Costs.SavingsVsBaseline > 0 {
		recs = append(recs, fmt.Sprintf("Optimization is saving $%.2f/day vs baseline.", res.Costs.SavingsVsBaseline))
	}
	if res.BatteryState.CyclesUsedToday < lowBatteryCycles {
		recs = append(recs, "Battery utilization is low. Consider enabling auto-arbitrage to maximize savings.")
	}

	var unmet, peakGrid float64
	for _, p := range res.HourlyAllocations {
		unmet += p.UnmetDemand
		if p.Period == types.PeriodPeak {
			peakGrid += p.Sources.Grid
		}
	}
	if unmet > 0 {
		recs = append(recs, fmt.Sprintf("%.1f kWh of demand went unmet. Consider increasing grid import limit.", unmet))
	}
	if res.Costs.TotalExportRevenue > 0 {
		recs = append(recs, fmt.Sprintf("Earned $%.2f from grid export today.", res.Costs.TotalExportRevenue))
	}
	if peakGrid > res.DailyTotals.GridImport*peakGridShare {
		recs = append(recs, "High grid usage during peak hours. Consider shifting loads to off-peak.")
	}
	return recs
}

// site is the scenario reduced to what the optimizer needs.
type site struct {
	cfg      types.OptimizerConfig
	tariff   utility.Tariff
	energy   types.EnergyConfig
	mining   types.MiningConfig
	solarKW  float64
	battery  bool
	capacity float64
	vehicles int
}

func newSite(sc types.ScenarioConfig) site {
	s := site{
		cfg:      sc.Optimizer,
		tariff:   utility.NewTariff(sc.Energy, sc.Optimizer),
		energy:   sc.Energy,
		mining:   sc.Mining,
		battery:  sc.Battery.Enabled,
		vehicles: sc.Vehicle.Quantity,
	}
	if sc.Solar.Enabled {
		s.solarKW = sc.Solar.SystemSizeKW
	}
	if s.battery {
		s.capacity = sc.Battery.TotalCapacityKWH()
	}
	return s
}
