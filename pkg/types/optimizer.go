package types

import (
	"fmt"
	"time"
)

// TOUPeriod is the optimizer's three tier classification of an hour.
type TOUPeriod string

const (
	PeriodSuperOffPeak TOUPeriod = "superOffPeak"
	PeriodOffPeak      TOUPeriod = "offPeak"
	PeriodPeak         TOUPeriod = "peak"
)

// ConsumerType identifies an energy consumer. The ordinal order is the
// tie-break when two consumers share a priority.
type ConsumerType int

const (
	ConsumerFleetCharging ConsumerType = iota
	ConsumerFacilityOps
	ConsumerBatteryCharging
	ConsumerCryptoMining
	ConsumerGridExport
)

// DemandConsumers are the consumers that place demand on the sources.
var DemandConsumers = []ConsumerType{
	ConsumerFleetCharging,
	ConsumerFacilityOps,
	ConsumerBatteryCharging,
	ConsumerCryptoMining,
}

func (c ConsumerType) String() string {
	switch c {
	case ConsumerFleetCharging:
		return "fleetCharging"
	case ConsumerFacilityOps:
		return "facilityOps"
	case ConsumerBatteryCharging:
		return "batteryCharging"
	case ConsumerCryptoMining:
		return "cryptoMining"
	case ConsumerGridExport:
		return "gridExport"
	}
	return fmt.Sprintf("ConsumerType(%d)", int(c))
}

// Label is the human readable name of the consumer.
func (c ConsumerType) Label() string {
	switch c {
	case ConsumerFleetCharging:
		return "Fleet Charging"
	case ConsumerFacilityOps:
		return "Facility Operations"
	case ConsumerBatteryCharging:
		return "Battery Charging"
	case ConsumerCryptoMining:
		return "Crypto Mining"
	case ConsumerGridExport:
		return "Grid Export"
	}
	return "Unknown"
}

// Priorities ranks the consumers, 1 is served first.
type Priorities struct {
	FleetCharging   int `json:"fleetCharging"`
	FacilityOps     int `json:"facilityOps"`
	BatteryCharging int `json:"batteryCharging"`
	CryptoMining    int `json:"cryptoMining"`
	GridExport      int `json:"gridExport"`
}

// Rank returns the configured priority of a consumer.
func (p Priorities) Rank(c ConsumerType) int {
	switch c {
	case ConsumerFleetCharging:
		return p.FleetCharging
	case ConsumerFacilityOps:
		return p.FacilityOps
	case ConsumerBatteryCharging:
		return p.BatteryCharging
	case ConsumerCryptoMining:
		return p.CryptoMining
	case ConsumerGridExport:
		return p.GridExport
	}
	return 0
}

// PriorityLabel names a priority rank.
func PriorityLabel(rank int) string {
	switch rank {
	case 1:
		return "Critical"
	case 2:
		return "High"
	case 3:
		return "Medium"
	case 4:
		return "Low"
	case 5:
		return "Optional"
	}
	return "Unknown"
}

// OptimizerConfig configures the hourly energy optimizer.
type OptimizerConfig struct {
	Enabled    bool       `json:"enabled"`
	Priorities Priorities `json:"priorities"`

	MinFleetSoC           float64 `json:"minFleetSoC"`
	MaxGridImportKW       float64 `json:"maxGridImportKw"`
	ReserveBatteryPercent float64 `json:"reserveBatteryPercent"`
	FacilityBaseLoadKW    float64 `json:"facilityBaseLoadKw"`

	AutoArbitrage bool `json:"autoArbitrage"`
	AutoMining    bool `json:"autoMining"`
	AutoExport    bool `json:"autoExport"`

	PeakHoursStart    int `json:"peakHoursStart"`
	PeakHoursEnd      int `json:"peakHoursEnd"`
	SuperOffPeakStart int `json:"superOffPeakStart"`
	SuperOffPeakEnd   int `json:"superOffPeakEnd"`
}

// PeakWindow returns the configured peak hours.
func (c OptimizerConfig) PeakWindow() HourWindow {
	return HourWindow{Start: c.PeakHoursStart, End: c.PeakHoursEnd}
}

// SuperOffPeakWindow returns the configured super off-peak hours.
func (c OptimizerConfig) SuperOffPeakWindow() HourWindow {
	return HourWindow{Start: c.SuperOffPeakStart, End: c.SuperOffPeakEnd}
}

// SourceKW is the supply available in an hour.
type SourceKW struct {
	Solar   float64 `json:"solar"`
	Battery float64 `json:"battery"`
	Grid    float64 `json:"grid"`
	Total   float64 `json:"total"`
}

// DemandKW is the demand placed in an hour.
type DemandKW struct {
	FleetCharging   float64 `json:"fleetCharging"`
	FacilityOps     float64 `json:"facilityOps"`
	BatteryCharging float64 `json:"batteryCharging"`
	CryptoMining    float64 `json:"cryptoMining"`
	Total           float64 `json:"total"`
}

// Get returns the demand of a consumer.
func (d DemandKW) Get(c ConsumerType) float64 {
	switch c {
	case ConsumerFleetCharging:
		return d.FleetCharging
	case ConsumerFacilityOps:
		return d.FacilityOps
	case ConsumerBatteryCharging:
		return d.BatteryCharging
	case ConsumerCryptoMining:
		return d.CryptoMining
	}
	return 0
}

// AllocationKW is the power given to each consumer in an hour.
type AllocationKW struct {
	FleetCharging   float64 `json:"fleetCharging"`
	FacilityOps     float64 `json:"facilityOps"`
	BatteryCharging float64 `json:"batteryCharging"`
	CryptoMining    float64 `json:"cryptoMining"`
	GridExport      float64 `json:"gridExport"`
}

// Get returns the allocation of a consumer.
func (a AllocationKW) Get(c ConsumerType) float64 {
	switch c {
	case ConsumerFleetCharging:
		return a.FleetCharging
	case ConsumerFacilityOps:
		return a.FacilityOps
	case ConsumerBatteryCharging:
		return a.BatteryCharging
	case ConsumerCryptoMining:
		return a.CryptoMining
	case ConsumerGridExport:
		return a.GridExport
	}
	return 0
}

// Add increases the allocation of a consumer.
func (a *AllocationKW) Add(c ConsumerType, kw float64) {
	switch c {
	case ConsumerFleetCharging:
		a.FleetCharging += kw
	case ConsumerFacilityOps:
		a.FacilityOps += kw
	case ConsumerBatteryCharging:
		a.BatteryCharging += kw
	case ConsumerCryptoMining:
		a.CryptoMining += kw
	case ConsumerGridExport:
		a.GridExport += kw
	}
}

// Demand is the sum of the allocations to the demand consumers, excluding
// grid export.
func (a AllocationKW) Demand() float64 {
	return a.FleetCharging + a.FacilityOps + a.BatteryCharging + a.CryptoMining
}

type HourCosts struct {
	GridCost      float64 `json:"gridCost"`
	ExportRevenue float64 `json:"exportRevenue"`
	NetCost       float64 `json:"netCost"`
}

// AllocationPlan is one hour of the priority allocation.
type AllocationPlan struct {
	Timestamp time.Time `json:"timestamp"`
	Period    TOUPeriod `json:"period"`
	HourOfDay int       `json:"hourOfDay"`

	Sources     SourceKW     `json:"sources"`
	Demands     DemandKW     `json:"demands"`
	Allocations AllocationKW `json:"allocations"`

	UnmetDemand  float64   `json:"unmetDemand"`
	ExcessEnergy float64   `json:"excessEnergy"`
	Costs        HourCosts `json:"costs"`
}

type BatteryAction string

const (
	BatteryCharge    BatteryAction = "charge"
	BatteryDischarge BatteryAction = "discharge"
	BatteryHold      BatteryAction = "hold"
)

// SimulationHour is one hour of the daily battery simulation.
type SimulationHour struct {
	Hour           int           `json:"hour"`
	Period         TOUPeriod     `json:"touPeriod"`
	SolarOutput    float64       `json:"solarOutput"`
	GridRate       float64       `json:"gridRate"`
	FleetDemand    float64       `json:"fleetDemand"`
	MiningDemand   float64       `json:"miningDemand"`
	FacilityDemand float64       `json:"facilityDemand"`
	BatteryAction  BatteryAction `json:"batteryAction"`
	BatteryKW      float64       `json:"batteryKw"`
	GridImport     float64       `json:"gridImport"`
	GridExport     float64       `json:"gridExport"`
}

// DailyTotals are kWh sums over the daily simulation.
type DailyTotals struct {
	SolarGeneration   float64 `json:"solarGeneration"`
	BatteryThroughput float64 `json:"batteryThroughput"`
	GridImport        float64 `json:"gridImport"`
	GridExport        float64 `json:"gridExport"`
	FleetCharging     float64 `json:"fleetCharging"`
	FacilityOps       float64 `json:"facilityOps"`
	MiningConsumption float64 `json:"miningConsumption"`
}

type OptimizerCosts struct {
	TotalGridCost          float64 `json:"totalGridCost"`
	TotalExportRevenue     float64 `json:"totalExportRevenue"`
	NetEnergyCost          float64 `json:"netEnergyCost"`
	BaselineCost           float64 `json:"baselineCost"`
	SavingsVsBaseline      float64 `json:"savingsVsBaseline"`
	OptimizationEfficiency float64 `json:"optimizationEfficiency"`
}

type BatteryState struct {
	CurrentSoC           float64 `json:"currentSoC"`
	ProjectedEndOfDaySoC float64 `json:"projectedEndOfDaySoC"`
	CyclesUsedToday      float64 `json:"cyclesUsedToday"`
}

// FleetReadiness is an estimate, it is not derived from the simulation.
type FleetReadiness struct {
	VehiclesAtTargetSoC int     `json:"vehiclesAtTargetSoC"`
	TotalVehicles       int     `json:"totalVehicles"`
	AverageSoC          float64 `json:"averageSoC"`
}

// OptimizerCalculation is the optimizer result for a day.
//
// AllocationSoCTrace and DailySimulationSoCTrace are two independent
// approximations of the battery over the day and are not reconciled.
type OptimizerCalculation struct {
	CurrentAllocation AllocationPlan   `json:"currentAllocation"`
	HourlyAllocations []AllocationPlan `json:"hourlyAllocations"`
	Simulation        []SimulationHour `json:"simulation"`
	DailyTotals       DailyTotals      `json:"dailyTotals"`
	Costs             OptimizerCosts   `json:"costs"`
	BatteryState      BatteryState     `json:"batteryState"`
	FleetReadiness    FleetReadiness   `json:"fleetReadiness"`

	AllocationSoCTrace      []float64 `json:"allocationSoCTrace"`
	DailySimulationSoCTrace []float64 `json:"dailySimulationSoCTrace"`

	Recommendations []string `json:"recommendations"`
}

// SolarProductionCurve is normalized solar output by hour of day.
var SolarProductionCurve = [24]float64{
	0, 0, 0, 0, 0, 0,
	0.05, 0.15, 0.35, 0.55, 0.75, 0.9,
	1.0, 0.95, 0.85, 0.7, 0.5, 0.3,
	0.1, 0.02, 0, 0, 0, 0,
}

// FleetDemandCurve is normalized fleet charging demand by hour of day.
var FleetDemandCurve = [24]float64{
	0.8, 0.7, 0.6, 0.5, 0.4, 0.3,
	0.2, 0.15, 0.1, 0.1, 0.15, 0.2,
	0.25, 0.3, 0.35, 0.4, 0.5, 0.6,
	0.7, 0.8, 0.85, 0.9, 0.85, 0.8,
}

// DefaultOptimizerConfig returns a disabled optimizer with the stock
// priority order.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		Priorities: Priorities{
			FleetCharging:   1,
			FacilityOps:     2,
			BatteryCharging: 3,
			CryptoMining:    4,
			GridExport:      5,
		},
		MinFleetSoC:           80,
		MaxGridImportKW:       100,
		ReserveBatteryPercent: 20,
		FacilityBaseLoadKW:    5,
		AutoArbitrage:         true,
		AutoMining:            true,
		AutoExport:            true,
		PeakHoursStart:        16,
		PeakHoursEnd:          21,
		SuperOffPeakStart:     0,
		SuperOffPeakEnd:       9,
	}
}

// WithEnabled toggles the optimizer.
func (c OptimizerConfig) WithEnabled(enabled bool) OptimizerConfig {
	c.Enabled = enabled
	return c
}

// WithPriorities replaces the consumer priorities.
func (c OptimizerConfig) WithPriorities(p Priorities) OptimizerConfig {
	c.Priorities = p
	return c
}

// WithPeakHours changes the peak window.
func (c OptimizerConfig) WithPeakHours(start, end int) OptimizerConfig {
	c.PeakHoursStart = start
	c.PeakHoursEnd = end
	return c
}

// WithSuperOffPeakHours changes the super off-peak window.
func (c OptimizerConfig) WithSuperOffPeakHours(start, end int) OptimizerConfig {
	c.SuperOffPeakStart = start
	c.SuperOffPeakEnd = end
	return c
}

// WithMaxGridImport changes the per-hour grid import limit.
func (c OptimizerConfig) WithMaxGridImport(kw float64) OptimizerConfig {
	c.MaxGridImportKW = kw
	return c
}

// Validate checks the optimizer config.
func (c OptimizerConfig) Validate() error {
	for _, consumer := range []ConsumerType{ConsumerFleetCharging, ConsumerFacilityOps, ConsumerBatteryCharging, ConsumerCryptoMining, ConsumerGridExport} {
		if r := c.Priorities.Rank(consumer); r < 1 || r > 5 {
			return fmt.Errorf("%w: %s priority must be between 1 and 5, got %d", ErrInvalidConfig, consumer, r)
		}
	}
	if err := c.PeakWindow().Validate(); err != nil {
		return fmt.Errorf("%w: peak hours: %w", ErrInvalidConfig, err)
	}
	if err := c.SuperOffPeakWindow().Validate(); err != nil {
		return fmt.Errorf("%w: super off-peak hours: %w", ErrInvalidConfig, err)
	}
	if c.MaxGridImportKW < 0 || c.FacilityBaseLoadKW < 0 {
		return fmt.Errorf("%w: grid import limit and facility load must not be negative", ErrInvalidConfig)
	}
	if c.ReserveBatteryPercent < 0 || c.ReserveBatteryPercent > 100 || c.MinFleetSoC < 0 || c.MinFleetSoC > 100 {
		return fmt.Errorf("%w: state of charge limits must be between 0 and 100", ErrInvalidConfig)
	}
	return nil
}
