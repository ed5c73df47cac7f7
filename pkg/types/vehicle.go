package types

import (
	"fmt"
)

// FinancingMode is how the fleet vehicles are acquired.
type FinancingMode string

const (
	FinancingCash  FinancingMode = "cash"
	FinancingLoan  FinancingMode = "loan"
	FinancingLease FinancingMode = "lease"
)

// Vehicle is a catalog entry for a fleet vehicle.
type Vehicle struct {
	ID                 string  `json:"id"`
	Key                string  `json:"vehicleKey"`
	DisplayName        string  `json:"displayName"`
	Manufacturer       string  `json:"manufacturer"`
	MSRP               float64 `json:"msrp"`
	BatteryKWH         float64 `json:"batteryKwh"`
	EfficiencyMiPerKWH float64 `json:"efficiencyMiPerKwh"`
	RangeMiles         float64 `json:"rangeMiles"`
	ModelYear          int     `json:"modelYear"`
	IsDefault          bool    `json:"isDefault"`
}

type LoanDetails struct {
	DownPayment     float64 `json:"downPayment"`
	LoanTermMonths  int     `json:"loanTermMonths"`
	InterestRateAPR float64 `json:"interestRateApr"`
}

type LeaseDetails struct {
	MonthlyLease    float64 `json:"monthlyLease"`
	LeaseTermMonths int     `json:"leaseTermMonths"`
	ResidualValue   float64 `json:"residualValue"`
}

// VehicleCapitalCosts are the one-time per-vehicle costs.
type VehicleCapitalCosts struct {
	PurchasePrice      float64 `json:"purchasePrice"`
	TaxesFees          float64 `json:"taxesFees"`
	AVHardwareRetrofit float64 `json:"avHardwareRetrofit"`
	BrandingWrap       float64 `json:"brandingWrap"`
	InitialAccessories float64 `json:"initialAccessories"`
}

// VehicleOperatingCosts are the recurring per-vehicle costs.
type VehicleOperatingCosts struct {
	InsuranceMonthly     float64 `json:"insuranceMonthly"`
	MaintenancePerMile   float64 `json:"maintenancePerMile"`
	CleaningPerDay       float64 `json:"cleaningPerDay"`
	ConnectivityMonthly  float64 `json:"connectivityMonthly"`
	SoftwareSubscription float64 `json:"softwareSubscription"`
	ParkingMonthly       float64 `json:"parkingMonthly"`
	RegistrationAnnual   float64 `json:"registrationAnnual"`
}

// VehicleConfig describes the fleet.
type VehicleConfig struct {
	Vehicle           Vehicle               `json:"vehicle"`
	Quantity          int                   `json:"quantity"`
	FinancingMode     FinancingMode         `json:"financingMode"`
	LoanDetails       LoanDetails           `json:"loanDetails"`
	LeaseDetails      LeaseDetails          `json:"leaseDetails"`
	CapitalCosts      VehicleCapitalCosts   `json:"capitalCosts"`
	OperatingCosts    VehicleOperatingCosts `json:"operatingCosts"`
	DepreciationYears float64               `json:"depreciationYears"`
	TaxFeePercent     float64               `json:"taxFeePercent"`
}

// VehicleCostCalculation is the result of the vehicle cost calculator.
type VehicleCostCalculation struct {
	TotalCapitalCost        float64 `json:"totalCapitalCost"`
	MonthlyFixedCost        float64 `json:"monthlyFixedCost"`
	CostPerMile             float64 `json:"costPerMile"`
	AmortizedCapitalMonthly float64 `json:"amortizedCapitalMonthly"`
	DepreciationMonthly     float64 `json:"depreciationMonthly"`
	MonthlyPayment          float64 `json:"monthlyPayment"`
	TotalMonthlyVehicleCost float64 `json:"totalMonthlyVehicleCost"`
}

// VehicleCatalog lists the selectable fleet vehicles.
var VehicleCatalog = []Vehicle{
	{
		Key:                "tesla_model3_lr",
		DisplayName:        "Tesla Model 3 Long Range",
		Manufacturer:       "Tesla",
		MSRP:               42490,
		BatteryKWH:         82,
		EfficiencyMiPerKWH: 4.2,
		RangeMiles:         341,
		ModelYear:          2024,
		IsDefault:          true,
	},
	{
		Key:                "tesla_modely_lr",
		DisplayName:        "Tesla Model Y Long Range",
		Manufacturer:       "Tesla",
		MSRP:               45490,
		BatteryKWH:         82,
		EfficiencyMiPerKWH: 3.8,
		RangeMiles:         310,
		ModelYear:          2024,
	},
	{
		Key:                "tesla_cybertruck",
		DisplayName:        "Tesla Cybertruck AWD",
		Manufacturer:       "Tesla",
		MSRP:               79990,
		BatteryKWH:         123,
		EfficiencyMiPerKWH: 2.9,
		RangeMiles:         340,
		ModelYear:          2024,
	},
}

// VehicleByKey looks up a catalog vehicle.
func VehicleByKey(key string) (Vehicle, bool) {
	for _, v := range VehicleCatalog {
		if v.Key == key {
			return v, true
		}
	}
	return Vehicle{}, false
}

// DefaultVehicleConfig returns a single cash-purchased Model 3.
func DefaultVehicleConfig() VehicleConfig {
	v, _ := VehicleByKey("tesla_model3_lr")
	return VehicleConfig{
		Vehicle:       v,
		Quantity:      1,
		FinancingMode: FinancingCash,
		LoanDetails: LoanDetails{
			DownPayment:     10000,
			LoanTermMonths:  60,
			InterestRateAPR: 0.06,
		},
		LeaseDetails: LeaseDetails{
			MonthlyLease:    500,
			LeaseTermMonths: 36,
			ResidualValue:   25000,
		},
		CapitalCosts: VehicleCapitalCosts{
			PurchasePrice:      v.MSRP,
			TaxesFees:          v.MSRP * 0.1,
			BrandingWrap:       3000,
			InitialAccessories: 500,
		},
		OperatingCosts: VehicleOperatingCosts{
			InsuranceMonthly:     350,
			MaintenancePerMile:   0.05,
			CleaningPerDay:       15,
			ConnectivityMonthly:  100,
			SoftwareSubscription: 200,
			RegistrationAnnual:   500,
		},
		DepreciationYears: 5,
		TaxFeePercent:     0.1,
	}
}

// WithVehicle swaps the vehicle model and re-derives the purchase price and
// taxes from its MSRP.
func (c VehicleConfig) WithVehicle(v Vehicle) VehicleConfig {
	c.Vehicle = v
	c.CapitalCosts.PurchasePrice = v.MSRP
	c.CapitalCosts.TaxesFees = v.MSRP * c.TaxFeePercent
	return c
}

// WithQuantity changes the fleet size.
func (c VehicleConfig) WithQuantity(n int) VehicleConfig {
	c.Quantity = n
	return c
}

// WithFinancing changes the financing mode.
func (c VehicleConfig) WithFinancing(mode FinancingMode) VehicleConfig {
	c.FinancingMode = mode
	return c
}

// Validate checks the vehicle config.
func (c VehicleConfig) Validate() error {
	if c.Quantity < 0 {
		return fmt.Errorf("%w: vehicle quantity must not be negative", ErrInvalidConfig)
	}
	if c.Vehicle.EfficiencyMiPerKWH <= 0 {
		return fmt.Errorf("%w: vehicle efficiency must be positive", ErrInvalidConfig)
	}
	if c.DepreciationYears <= 0 {
		return fmt.Errorf("%w: depreciation years must be positive", ErrInvalidConfig)
	}
	switch c.FinancingMode {
	case FinancingCash:
	case FinancingLoan:
		if c.LoanDetails.LoanTermMonths <= 0 {
			return fmt.Errorf("%w: loan term must be positive", ErrInvalidConfig)
		}
	case FinancingLease:
	default:
		return fmt.Errorf("%w: unknown financing mode: %s", ErrInvalidConfig, c.FinancingMode)
	}
	return nil
}
