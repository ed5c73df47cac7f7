// Package fleet computes what the vehicles cost to own and what they earn.
package fleet

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// VehicleCapitalCost is the upfront cost of every vehicle in the fleet.
func VehicleCapitalCost(c types.VehicleConfig) float64 {
	cc := c.CapitalCosts
	perVehicle := cc.PurchasePrice + cc.TaxesFees + cc.AVHardwareRetrofit + cc.BrandingWrap + cc.InitialAccessories
	return perVehicle * float64(c.Quantity)
}

// MonthlyLoanPayment is the standard amortized payment of a loan.
func MonthlyLoanPayment(principal, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return principal
	}
	n := float64(termMonths)
	if annualRate == 0 {
		return principal / n
	}
	r := annualRate / 12
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// MonthlyPayment is the fleet's financing payment, zero for cash purchases.
func MonthlyPayment(c types.VehicleConfig) float64 {
	qty := float64(c.Quantity)
	switch c.FinancingMode {
	case types.FinancingLoan:
		principal := (c.CapitalCosts.PurchasePrice+c.CapitalCosts.TaxesFees)*qty - c.LoanDetails.DownPayment
		return MonthlyLoanPayment(principal, c.LoanDetails.InterestRateAPR, c.LoanDetails.LoanTermMonths)
	case types.FinancingLease:
		return c.LeaseDetails.MonthlyLease * qty
	}
	return 0
}

// MonthlyDepreciation spreads the fleet's MSRP over the depreciation period.
func MonthlyDepreciation(c types.VehicleConfig) float64 {
	if c.DepreciationYears <= 0 {
		return 0
	}
	return c.Vehicle.MSRP * float64(c.Quantity) / (c.DepreciationYears * 12)
}

// MonthlyFixedCost is the fleet's mileage-independent operating cost,
// assuming 30 cleaning days a month.
func MonthlyFixedCost(c types.VehicleConfig) float64 {
	oc := c.OperatingCosts
	perVehicle := oc.InsuranceMonthly +
		oc.ConnectivityMonthly +
		oc.SoftwareSubscription +
		oc.ParkingMonthly +
		oc.RegistrationAnnual/12 +
		oc.CleaningPerDay*30
	return perVehicle * float64(c.Quantity)
}

// CostPerMile is maintenance plus the energy needed for a mile.
func CostPerMile(c types.VehicleConfig, energyRatePerKWH float64) float64 {
	if c.Vehicle.EfficiencyMiPerKWH <= 0 {
		return c.OperatingCosts.MaintenancePerMile
	}
	return c.OperatingCosts.MaintenancePerMile + energyRatePerKWH/c.Vehicle.EfficiencyMiPerKWH
}

// UpfrontInvestment is the cash needed to put the fleet on the road: the full
// capital cost for cash, the down payment for a loan, and first month plus
// deposit for a lease.
func UpfrontInvestment(c types.VehicleConfig) float64 {
	switch c.FinancingMode {
	case types.FinancingLoan:
		return c.LoanDetails.DownPayment
	case types.FinancingLease:
		return c.LeaseDetails.MonthlyLease * 2
	}
	return VehicleCapitalCost(c)
}

// VehicleCosts computes the ownership costs of the fleet. Cash purchases
// amortize through depreciation, financed fleets through their payment.
func VehicleCosts(c types.VehicleConfig, energyRatePerKWH float64) types.VehicleCostCalculation {
	depreciation := MonthlyDepreciation(c)
	payment := MonthlyPayment(c)
	fixed := MonthlyFixedCost(c)

	amortized := payment
	total := fixed + payment + depreciation
	if c.FinancingMode == types.FinancingCash {
		amortized = depreciation
		total = fixed + depreciation
	}

	return types.VehicleCostCalculation{
		TotalCapitalCost:        VehicleCapitalCost(c),
		MonthlyFixedCost:        fixed,
		CostPerMile:             CostPerMile(c, energyRatePerKWH),
		AmortizedCapitalMonthly: amortized,
		DepreciationMonthly:     depreciation,
		MonthlyPayment:          payment,
		TotalMonthlyVehicleCost: total,
	}
}
