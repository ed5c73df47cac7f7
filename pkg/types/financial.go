package types

// MonthlyCosts is the monthly cost roll-up of the fleet, energy, platform
// and solar lines.
type MonthlyCosts struct {
	VehicleCapital   float64 `json:"vehicleCapital"`
	VehicleOperating float64 `json:"vehicleOperating"`

	EnergyGross        float64 `json:"energyGross"`
	EnergySolarOffset  float64 `json:"energySolarOffset"`
	EnergyExportCredit float64 `json:"energyExportCredit"`
	EnergyNet          float64 `json:"energyNet"`

	PlatformFees     float64 `json:"platformFees"`
	OwnPlatformCosts float64 `json:"ownPlatformCosts"`

	SolarAmortized float64 `json:"solarAmortized"`

	TotalMonthlyCost float64 `json:"totalMonthlyCost"`
}

type MonthlyRevenue struct {
	RideRevenue         float64 `json:"rideRevenue"`
	ExportRevenue       float64 `json:"exportRevenue"`
	TotalMonthlyRevenue float64 `json:"totalMonthlyRevenue"`
}

// BreakEvenProjectionMonths is the length of the cumulative projection.
const BreakEvenProjectionMonths = 60

// BreakEvenAnalysis is the payback of the total investment at a constant
// monthly profit.
type BreakEvenAnalysis struct {
	TotalInvestment float64 `json:"totalInvestment"`
	MonthlyProfit   float64 `json:"monthlyProfit"`
	// BreakEvenMonths is the fractional number of months to recover the
	// investment.
	BreakEvenMonths Months `json:"breakEvenMonths"`
	// BreakEvenMonth is the first whole month where cumulative profit covers
	// the investment.
	BreakEvenMonth BreakEven `json:"breakEvenMonth"`

	// CumulativeInvestment and CumulativeProfit cover months 0 through
	// BreakEvenProjectionMonths.
	CumulativeInvestment []float64 `json:"cumulativeInvestment"`
	CumulativeProfit     []float64 `json:"cumulativeProfit"`
}

type ScenarioSummary struct {
	Name            string  `json:"name"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
	MonthlyCosts    float64 `json:"monthlyCosts"`
	MonthlyProfit   float64 `json:"monthlyProfit"`
	TotalInvestment float64 `json:"totalInvestment"`
	BreakEvenMonths Months  `json:"breakEvenMonths"`
	SolarEnabled    bool    `json:"solarEnabled"`
}

// ScenarioComparison is the same scenario with solar forced off and on.
type ScenarioComparison struct {
	VehiclesOnly      ScenarioSummary `json:"vehiclesOnly"`
	VehiclesPlusSolar ScenarioSummary `json:"vehiclesPlusSolar"`
}

// ScenarioCalculations is every derived result of a scenario.
type ScenarioCalculations struct {
	VehicleCosts     VehicleCostCalculation  `json:"vehicleCosts"`
	Revenue          RevenueCalculation      `json:"revenue"`
	SolarCosts       SolarCostCalculation    `json:"solarCosts"`
	BatteryCosts     BatteryCostCalculation  `json:"batteryCosts"`
	Energy           EnergyCalculation       `json:"energy"`
	MonthlyEnergy    []MonthlyEnergyData     `json:"monthlyEnergy"`
	Mining           MiningRevenue           `json:"mining"`
	MiningProjection []MiningProjectionMonth `json:"miningProjection"`
	Humanoid         HumanoidCalculation     `json:"humanoid"`
	Optimizer        OptimizerCalculation    `json:"optimizer"`
	MonthlyCosts     MonthlyCosts            `json:"monthlyCosts"`
	MonthlyRevenue   MonthlyRevenue          `json:"monthlyRevenue"`
	BreakEven        BreakEvenAnalysis       `json:"breakEven"`
	Comparison       ScenarioComparison      `json:"comparison"`
}
