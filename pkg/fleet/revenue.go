package fleet

import (
	"math"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const (
	// subscriptionTripMiles and subscriptionTripMinutes describe the typical
	// member trip.
	subscriptionTripMiles   = 5
	subscriptionTripMinutes = 15
)

// SubscriptionRevenue is the monthly revenue of one subscriber, including
// overage beyond the included miles.
func SubscriptionRevenue(p types.SubscriptionPricing) float64 {
	overage := math.Max(0, p.AvgMemberUsageMiles-p.IncludedMiles)
	return p.MonthlyFee + overage*p.OveragePerMile
}

// AverageFare is the revenue of an average trip under the pricing model.
// Subscriptions are converted to a per-trip equivalent.
func AverageFare(c types.RevenueConfig) float64 {
	switch c.PricingModel {
	case types.PricingRideHail:
		p := c.RideHailPricing
		return p.BaseFare + p.PerMileRate*p.AvgTripMiles + p.PerMinuteRate*p.AvgTripMinutes + p.BookingFee
	case types.PricingFlatRate:
		return c.FlatRatePricing.FlatFare
	case types.PricingSubscription:
		trips := c.SubscriptionPricing.AvgMemberUsageMiles / subscriptionTripMiles
		if trips <= 0 {
			return 0
		}
		return SubscriptionRevenue(c.SubscriptionPricing) / trips
	}
	return 0
}

// AverageTrip returns the miles and minutes of an average trip.
func AverageTrip(c types.RevenueConfig) (miles, minutes float64) {
	switch c.PricingModel {
	case types.PricingRideHail:
		return c.RideHailPricing.AvgTripMiles, c.RideHailPricing.AvgTripMinutes
	case types.PricingFlatRate:
		return c.FlatRatePricing.RouteMiles, c.FlatRatePricing.RouteMinutes
	}
	return subscriptionTripMiles, subscriptionTripMinutes
}

// Revenue computes the fleet's monthly ride revenue and the economics of a
// single trip. The vehicle config supplies the fleet size, efficiency and
// maintenance cost.
func Revenue(c types.RevenueConfig, v types.VehicleConfig, energyRatePerKWH float64) types.RevenueCalculation {
	u := c.Utilization
	avgFare := AverageFare(c)
	tripMiles, tripMinutes := AverageTrip(c)

	tripsPerDay := u.OperatingHoursPerDay * u.TripsPerHour
	monthlyTrips := tripsPerDay * u.OperatingDaysPerMonth * float64(v.Quantity)
	gross := monthlyTrips * avgFare
	fees := gross * c.Platform.FeePercent
	revenueMiles := monthlyTrips * tripMiles

	// per trip costs include the deadhead miles
	totalTripMiles := tripMiles * (1 + u.DeadheadPercent)
	var tripKWH float64
	if v.Vehicle.EfficiencyMiPerKWH > 0 {
		tripKWH = totalTripMiles / v.Vehicle.EfficiencyMiPerKWH
	}
	energyCost := tripKWH * energyRatePerKWH
	maintenanceCost := totalTripMiles * v.OperatingCosts.MaintenancePerMile
	variableCost := energyCost + maintenanceCost
	revenuePerTrip := avgFare * (1 - c.Platform.FeePercent)
	profitPerTrip := revenuePerTrip - variableCost
	var margin float64
	if avgFare > 0 {
		margin = profitPerTrip / avgFare * 100
	}

	return types.RevenueCalculation{
		AvgFare:      avgFare,
		TripsPerDay:  tripsPerDay,
		MonthlyTrips: monthlyTrips,
		GrossRevenue: gross,
		PlatformFees: fees,
		NetRevenue:   gross - fees,
		RevenueMiles: revenueMiles,
		TotalMiles:   revenueMiles * (1 + u.DeadheadPercent),

		AvgTripMiles:           tripMiles,
		AvgTripMinutes:         tripMinutes,
		RevenuePerTrip:         revenuePerTrip,
		EnergyCostPerTrip:      energyCost,
		MaintenanceCostPerTrip: maintenanceCost,
		VariableCostPerTrip:    variableCost,
		ProfitPerTrip:          profitPerTrip,
		ProfitMarginPerTrip:    margin,
	}
}
