package types

import (
	"fmt"
)

type AcquisitionType string

const (
	AcquirePurchase AcquisitionType = "purchase"
	AcquireLease    AcquisitionType = "lease"
)

// CapabilityRating scores a platform 1-10 per capability.
type CapabilityRating struct {
	FineManipulation  float64 `json:"fineManipulation"`
	HeavyLifting      float64 `json:"heavyLifting"`
	Mobility          float64 `json:"mobility"`
	OutdoorOperation  float64 `json:"outdoorOperation"`
	VehicleInterior   float64 `json:"vehicleInterior"`
	ChargingOps       float64 `json:"chargingOps"`
	HumanInteraction  float64 `json:"humanInteraction"`
	RuntimeEfficiency float64 `json:"runtimeEfficiency"`
}

// Score returns the rating for a capability by its JSON name.
func (r CapabilityRating) Score(capability string) (float64, bool) {
	switch capability {
	case "fineManipulation":
		return r.FineManipulation, true
	case "heavyLifting":
		return r.HeavyLifting, true
	case "mobility":
		return r.Mobility, true
	case "outdoorOperation":
		return r.OutdoorOperation, true
	case "vehicleInterior":
		return r.VehicleInterior, true
	case "chargingOps":
		return r.ChargingOps, true
	case "humanInteraction":
		return r.HumanInteraction, true
	case "runtimeEfficiency":
		return r.RuntimeEfficiency, true
	}
	return 0, false
}

// HumanoidPlatform is a catalog entry for a humanoid robot.
type HumanoidPlatform struct {
	ID                   string           `json:"id"`
	DisplayName          string           `json:"displayName"`
	Manufacturer         string           `json:"manufacturer"`
	PayloadCapacityKg    float64          `json:"payloadCapacityKg"`
	BatteryKWH           float64          `json:"batteryKwh"`
	RuntimeHours         float64          `json:"runtimeHours"`
	ChargeTimeHours      float64          `json:"chargeTimeHours"`
	EstimatedMSRP        float64          `json:"estimatedMsrp"`
	MonthlyLeaseEstimate float64          `json:"monthlyLeaseEstimate"`
	Availability         string           `json:"availability"`
	Capabilities         CapabilityRating `json:"capabilities"`
}

// TaskDefinition is a depot task a humanoid may take over.
type TaskDefinition struct {
	ID                   string   `json:"id"`
	Category             string   `json:"category"`
	Name                 string   `json:"name"`
	DurationMinutes      float64  `json:"durationMinutes"`
	Frequency            string   `json:"frequency"`
	RequiredCapabilities []string `json:"requiredCapabilities"`
	MinCapabilityScore   float64  `json:"minCapabilityScore"`
}

var HumanoidPlatforms = []HumanoidPlatform{
	{
		ID: "tesla_optimus", DisplayName: "Tesla Optimus Gen 2", Manufacturer: "Tesla",
		PayloadCapacityKg: 20, BatteryKWH: 2.3, RuntimeHours: 5, ChargeTimeHours: 2,
		EstimatedMSRP: 25000, MonthlyLeaseEstimate: 800, Availability: "2025-2026",
		Capabilities: CapabilityRating{8, 7, 6, 7, 8, 9, 7, 8},
	},
	{
		ID: "figure_02", DisplayName: "Figure 02", Manufacturer: "Figure AI",
		PayloadCapacityKg: 25, BatteryKWH: 2.0, RuntimeHours: 5, ChargeTimeHours: 2,
		EstimatedMSRP: 50000, MonthlyLeaseEstimate: 1500, Availability: "2025",
		Capabilities: CapabilityRating{9, 8, 7, 6, 9, 8, 8, 7},
	},
	{
		ID: "1x_neo", DisplayName: "1X Neo", Manufacturer: "1X Technologies",
		PayloadCapacityKg: 15, BatteryKWH: 1.5, RuntimeHours: 4, ChargeTimeHours: 1.5,
		EstimatedMSRP: 30000, MonthlyLeaseEstimate: 950, Availability: "2025",
		Capabilities: CapabilityRating{7, 5, 8, 7, 7, 7, 8, 8},
	},
	{
		ID: "agility_digit", DisplayName: "Agility Digit", Manufacturer: "Agility Robotics",
		PayloadCapacityKg: 35, BatteryKWH: 2.5, RuntimeHours: 4, ChargeTimeHours: 2.5,
		EstimatedMSRP: 40000, MonthlyLeaseEstimate: 1200, Availability: "Available",
		Capabilities: CapabilityRating{5, 9, 8, 8, 5, 8, 6, 6},
	},
	{
		ID: "unitree_h1", DisplayName: "Unitree H1", Manufacturer: "Unitree Robotics",
		PayloadCapacityKg: 10, BatteryKWH: 1.8, RuntimeHours: 3, ChargeTimeHours: 2,
		EstimatedMSRP: 90000, MonthlyLeaseEstimate: 2500, Availability: "Available",
		Capabilities: CapabilityRating{5, 4, 9, 8, 4, 5, 5, 5},
	},
}

var TaskDefinitions = []TaskDefinition{
	{ID: "interior_wipedown", Category: "vehicle_turnaround", Name: "Interior Wipe-down", DurationMinutes: 5, Frequency: "Every ride", RequiredCapabilities: []string{"fineManipulation", "vehicleInterior"}, MinCapabilityScore: 6},
	{ID: "deep_clean", Category: "vehicle_turnaround", Name: "Deep Clean", DurationMinutes: 20, Frequency: "Daily", RequiredCapabilities: []string{"fineManipulation", "vehicleInterior"}, MinCapabilityScore: 7},
	{ID: "exterior_wash", Category: "vehicle_turnaround", Name: "Exterior Wash", DurationMinutes: 15, Frequency: "Weekly", RequiredCapabilities: []string{"outdoorOperation", "mobility"}, MinCapabilityScore: 6},
	{ID: "trash_removal", Category: "vehicle_turnaround", Name: "Trash Removal", DurationMinutes: 3, Frequency: "Every ride", RequiredCapabilities: []string{"fineManipulation", "vehicleInterior"}, MinCapabilityScore: 5},
	{ID: "cable_connect", Category: "charging_ops", Name: "Cable Connection", DurationMinutes: 2, Frequency: "Per charge", RequiredCapabilities: []string{"fineManipulation", "chargingOps"}, MinCapabilityScore: 7},
	{ID: "cable_disconnect", Category: "charging_ops", Name: "Cable Disconnection", DurationMinutes: 1, Frequency: "Per charge", RequiredCapabilities: []string{"fineManipulation", "chargingOps"}, MinCapabilityScore: 6},
	{ID: "charge_monitoring", Category: "charging_ops", Name: "Charge Monitoring", Frequency: "Continuous", RequiredCapabilities: []string{"chargingOps"}, MinCapabilityScore: 5},
	{ID: "visual_inspection", Category: "maintenance", Name: "Visual Inspection", DurationMinutes: 10, Frequency: "Daily", RequiredCapabilities: []string{"vehicleInterior", "outdoorOperation"}, MinCapabilityScore: 6},
	{ID: "tire_check", Category: "maintenance", Name: "Tire Pressure Check", DurationMinutes: 5, Frequency: "Weekly", RequiredCapabilities: []string{"fineManipulation", "outdoorOperation"}, MinCapabilityScore: 5},
	{ID: "luggage_loading", Category: "passenger_assist", Name: "Luggage Loading", DurationMinutes: 3, Frequency: "Per request", RequiredCapabilities: []string{"heavyLifting", "humanInteraction"}, MinCapabilityScore: 7},
	{ID: "passenger_greeting", Category: "passenger_assist", Name: "Greeting/Wayfinding", DurationMinutes: 2, Frequency: "Per pickup", RequiredCapabilities: []string{"humanInteraction"}, MinCapabilityScore: 6},
	{ID: "depot_patrol", Category: "security", Name: "Depot Patrol", Frequency: "Continuous", RequiredCapabilities: []string{"mobility", "outdoorOperation"}, MinCapabilityScore: 6},
	{ID: "asic_cleaning", Category: "mining_support", Name: "ASIC Cleaning", DurationMinutes: 30, Frequency: "Monthly", RequiredCapabilities: []string{"fineManipulation"}, MinCapabilityScore: 7},
	{ID: "hardware_monitoring", Category: "mining_support", Name: "Hardware Monitoring", Frequency: "Continuous", RequiredCapabilities: []string{"fineManipulation"}, MinCapabilityScore: 5},
	{ID: "facility_cleaning", Category: "facility", Name: "Facility Cleaning", DurationMinutes: 60, Frequency: "Daily", RequiredCapabilities: []string{"mobility", "fineManipulation"}, MinCapabilityScore: 5},
}

// HumanoidPlatformByID looks up a humanoid platform.
func HumanoidPlatformByID(id string) (HumanoidPlatform, bool) {
	for _, p := range HumanoidPlatforms {
		if p.ID == id {
			return p, true
		}
	}
	return HumanoidPlatform{}, false
}

// CanPerform reports whether the platform meets the task's minimum score on
// every required capability.
func (p HumanoidPlatform) CanPerform(task TaskDefinition) bool {
	for _, c := range task.RequiredCapabilities {
		s, ok := p.Capabilities.Score(c)
		if !ok || s < task.MinCapabilityScore {
			return false
		}
	}
	return true
}

// PlatformSelection is a line in the humanoid order.
type PlatformSelection struct {
	PlatformID      string          `json:"platformId"`
	Quantity        int             `json:"quantity"`
	AcquisitionType AcquisitionType `json:"acquisitionType"`
}

// HumanoidConfig describes the humanoid labor option.
type HumanoidConfig struct {
	Enabled   bool                `json:"enabled"`
	Platforms []PlatformSelection `json:"platforms"`

	LaborComparisonEnabled bool    `json:"laborComparisonEnabled"`
	HumanHourlyWage        float64 `json:"humanHourlyWage"`
	HumanBenefitsPercent   float64 `json:"humanBenefitsPercent"`
	HumanFTECount          float64 `json:"humanFteCount"`
	HumanWeeklyHours       float64 `json:"humanWeeklyHours"`

	EnergyCostMonthly      float64 `json:"energyCostMonthly"`
	MaintenanceCostMonthly float64 `json:"maintenanceCostMonthly"`
	PartsCostMonthly       float64 `json:"partsCostMonthly"`
	SoftwareCostMonthly    float64 `json:"softwareCostMonthly"`
	InsuranceCostMonthly   float64 `json:"insuranceCostMonthly"`

	CustomizationCost   float64 `json:"customizationCost"`
	ChargingStationCost float64 `json:"chargingStationCost"`
	SafetySystemsCost   float64 `json:"safetySystemsCost"`
	InstallationCost    float64 `json:"installationCost"`

	DepreciationYears float64 `json:"depreciationYears"`
}

// LaborComparison compares humanoid and human labor for the same depot work.
type LaborComparison struct {
	HumanAnnualCostPerFTE    float64 `json:"humanAnnualCostPerFte"`
	HumanTotalAnnualCost     float64 `json:"humanTotalAnnualCost"`
	HumanWeeklyCoverageHours float64 `json:"humanWeeklyCoverageHours"`

	HumanoidQuantity            int     `json:"humanoidQuantity"`
	HumanoidCapitalTotal        float64 `json:"humanoidCapitalTotal"`
	HumanoidAnnualCapital       float64 `json:"humanoidAnnualCapital"`
	HumanoidAnnualOperating     float64 `json:"humanoidAnnualOperating"`
	HumanoidWeeklyCoverageHours float64 `json:"humanoidWeeklyCoverageHours"`
	HumanoidAnnualCost          float64 `json:"humanoidAnnualCost"`

	AnnualSavings       float64 `json:"annualSavings"`
	MonthlySavings      float64 `json:"monthlySavings"`
	CoverageMultiplier  float64 `json:"coverageMultiplier"`
	PaybackMonths       Months  `json:"paybackMonths"`
	CostPerHourHuman    float64 `json:"costPerHourHuman"`
	CostPerHourHumanoid float64 `json:"costPerHourHumanoid"`
}

// HumanoidRecommendation is the suggested robot count for a fleet.
type HumanoidRecommendation struct {
	Recommended int    `json:"recommended"`
	Coverage    string `json:"coverage"`
}

// HumanoidBreakEvenMonth is one month of the human vs humanoid cost series.
type HumanoidBreakEvenMonth struct {
	Month              int     `json:"month"`
	HumanCumulative    float64 `json:"humanCumulative"`
	HumanoidCumulative float64 `json:"humanoidCumulative"`
}

// HumanoidCalculation is the result of the humanoid economics calculator.
type HumanoidCalculation struct {
	TotalPlatforms          int     `json:"totalPlatforms"`
	TotalCapitalCost        float64 `json:"totalCapitalCost"`
	TotalMonthlyOperating   float64 `json:"totalMonthlyOperating"`
	MonthlyAmortizedCapital float64 `json:"monthlyAmortizedCapital"`
	TotalMonthlyCost        float64 `json:"totalMonthlyCost"`

	TotalWeeklyCoverageHours float64 `json:"totalWeeklyCoverageHours"`
	CoveragePerVehicle       float64 `json:"coveragePerVehicle"`

	LaborComparison LaborComparison          `json:"laborComparison"`
	Recommendation  HumanoidRecommendation   `json:"recommendation"`
	BreakEvenSeries []HumanoidBreakEvenMonth `json:"breakEvenSeries"`
}

// DefaultHumanoidConfig returns a disabled config with labor comparison on.
func DefaultHumanoidConfig() HumanoidConfig {
	return HumanoidConfig{
		Platforms:              []PlatformSelection{},
		LaborComparisonEnabled: true,
		HumanHourlyWage:        22,
		HumanBenefitsPercent:   30,
		HumanFTECount:          2,
		HumanWeeklyHours:       40,
		EnergyCostMonthly:      45,
		MaintenanceCostMonthly: 200,
		PartsCostMonthly:       100,
		SoftwareCostMonthly:    150,
		InsuranceCostMonthly:   100,
		CustomizationCost:      2000,
		ChargingStationCost:    1500,
		SafetySystemsCost:      1000,
		InstallationCost:       500,
		DepreciationYears:      5,
	}
}

// WithEnabled toggles the humanoid option.
func (c HumanoidConfig) WithEnabled(enabled bool) HumanoidConfig {
	c.Enabled = enabled
	return c
}

// WithPlatform adds a platform selection, merging into an existing line for
// the same platform and acquisition type.
func (c HumanoidConfig) WithPlatform(sel PlatformSelection) HumanoidConfig {
	platforms := make([]PlatformSelection, 0, len(c.Platforms)+1)
	merged := false
	for _, p := range c.Platforms {
		if p.PlatformID == sel.PlatformID && p.AcquisitionType == sel.AcquisitionType {
			p.Quantity += sel.Quantity
			merged = true
		}
		platforms = append(platforms, p)
	}
	if !merged {
		platforms = append(platforms, sel)
	}
	c.Platforms = platforms
	return c
}

// WithoutPlatform removes every selection of a platform.
func (c HumanoidConfig) WithoutPlatform(platformID string) HumanoidConfig {
	platforms := make([]PlatformSelection, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		if p.PlatformID != platformID {
			platforms = append(platforms, p)
		}
	}
	c.Platforms = platforms
	return c
}

// Validate checks the humanoid config.
func (c HumanoidConfig) Validate() error {
	for _, p := range c.Platforms {
		if _, ok := HumanoidPlatformByID(p.PlatformID); !ok {
			return fmt.Errorf("%w: unknown humanoid platform: %s", ErrInvalidConfig, p.PlatformID)
		}
		if p.Quantity < 0 {
			return fmt.Errorf("%w: humanoid quantity must not be negative", ErrInvalidConfig)
		}
		switch p.AcquisitionType {
		case AcquirePurchase, AcquireLease:
		default:
			return fmt.Errorf("%w: unknown acquisition type: %s", ErrInvalidConfig, p.AcquisitionType)
		}
	}
	if c.HumanFTECount < 0 || c.HumanWeeklyHours < 0 || c.HumanHourlyWage < 0 {
		return fmt.Errorf("%w: human labor figures must not be negative", ErrInvalidConfig)
	}
	return nil
}
