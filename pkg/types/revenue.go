package types

import (
	"fmt"
)

// PricingModel selects how rides are priced.
type PricingModel string

const (
	PricingRideHail     PricingModel = "ride_hail"
	PricingFlatRate     PricingModel = "flat_rate"
	PricingSubscription PricingModel = "subscription"
)

// PlatformMode selects who dispatches the rides.
type PlatformMode string

const (
	PlatformOwn    PlatformMode = "own_platform"
	PlatformUber   PlatformMode = "uber"
	PlatformLyft   PlatformMode = "lyft"
	PlatformHybrid PlatformMode = "hybrid"
)

type RideHailPricing struct {
	BaseFare       float64 `json:"baseFare"`
	PerMileRate    float64 `json:"perMileRate"`
	PerMinuteRate  float64 `json:"perMinuteRate"`
	BookingFee     float64 `json:"bookingFee"`
	AvgTripMiles   float64 `json:"avgTripMiles"`
	AvgTripMinutes float64 `json:"avgTripMinutes"`
}

type FlatRatePricing struct {
	RouteName    string  `json:"routeName"`
	FlatFare     float64 `json:"flatFare"`
	RouteMiles   float64 `json:"routeMiles"`
	RouteMinutes float64 `json:"routeMinutes"`
}

type SubscriptionPricing struct {
	MonthlyFee          float64 `json:"monthlyFee"`
	IncludedMiles       float64 `json:"includedMiles"`
	OveragePerMile      float64 `json:"overagePerMile"`
	AvgMemberUsageMiles float64 `json:"avgMemberUsageMiles"`
}

// Utilization describes how hard each vehicle is worked.
type Utilization struct {
	OperatingHoursPerDay  float64 `json:"operatingHoursPerDay"`
	TripsPerHour          float64 `json:"tripsPerHour"`
	OperatingDaysPerMonth float64 `json:"operatingDaysPerMonth"`
	// DeadheadPercent is a fraction (0.2 = 20%).
	DeadheadPercent float64 `json:"deadheadPercent"`
}

type PlatformConfig struct {
	Mode PlatformMode `json:"mode"`
	// FeePercent is a fraction of gross revenue.
	FeePercent              float64 `json:"feePercent"`
	OwnPlatformCostsMonthly float64 `json:"ownPlatformCostsMonthly"`
}

// RevenueConfig describes how the fleet earns money.
type RevenueConfig struct {
	PricingModel        PricingModel        `json:"pricingModel"`
	RideHailPricing     RideHailPricing     `json:"rideHailPricing"`
	FlatRatePricing     FlatRatePricing     `json:"flatRatePricing"`
	SubscriptionPricing SubscriptionPricing `json:"subscriptionPricing"`
	Utilization         Utilization         `json:"utilization"`
	Platform            PlatformConfig      `json:"platform"`
}

// RevenueCalculation is the result of the revenue model.
type RevenueCalculation struct {
	AvgFare      float64 `json:"avgFare"`
	TripsPerDay  float64 `json:"tripsPerDay"`
	MonthlyTrips float64 `json:"monthlyTrips"`
	GrossRevenue float64 `json:"grossRevenue"`
	PlatformFees float64 `json:"platformFees"`
	NetRevenue   float64 `json:"netRevenue"`
	RevenueMiles float64 `json:"revenueMiles"`
	// TotalMiles includes deadhead miles.
	TotalMiles float64 `json:"totalMiles"`

	AvgTripMiles           float64 `json:"avgTripMiles"`
	AvgTripMinutes         float64 `json:"avgTripMinutes"`
	RevenuePerTrip         float64 `json:"revenuePerTrip"`
	EnergyCostPerTrip      float64 `json:"energyCostPerTrip"`
	MaintenanceCostPerTrip float64 `json:"maintenanceCostPerTrip"`
	VariableCostPerTrip    float64 `json:"variableCostPerTrip"`
	ProfitPerTrip          float64 `json:"profitPerTrip"`
	ProfitMarginPerTrip    float64 `json:"profitMarginPerTrip"`
}

// DefaultRevenueConfig returns ride-hail pricing on an owned platform.
func DefaultRevenueConfig() RevenueConfig {
	return RevenueConfig{
		PricingModel: PricingRideHail,
		RideHailPricing: RideHailPricing{
			BaseFare:       2.5,
			PerMileRate:    0.3,
			BookingFee:     2.0,
			AvgTripMiles:   5.0,
			AvgTripMinutes: 15,
		},
		FlatRatePricing: FlatRatePricing{
			RouteName:    "Airport Shuttle",
			FlatFare:     35,
			RouteMiles:   20,
			RouteMinutes: 35,
		},
		SubscriptionPricing: SubscriptionPricing{
			MonthlyFee:          299,
			IncludedMiles:       500,
			OveragePerMile:      0.5,
			AvgMemberUsageMiles: 400,
		},
		Utilization: Utilization{
			OperatingHoursPerDay:  12,
			TripsPerHour:          2.0,
			OperatingDaysPerMonth: 28,
			DeadheadPercent:       0.2,
		},
		Platform: PlatformConfig{
			Mode:                    PlatformOwn,
			OwnPlatformCostsMonthly: 500,
		},
	}
}

// WithPricingModel changes the pricing model.
func (c RevenueConfig) WithPricingModel(m PricingModel) RevenueConfig {
	c.PricingModel = m
	return c
}

// WithUtilization replaces the utilization assumptions.
func (c RevenueConfig) WithUtilization(u Utilization) RevenueConfig {
	c.Utilization = u
	return c
}

// WithPlatform replaces the platform config. Switching to a third-party
// platform with no fee set picks up the usual 25% take rate.
func (c RevenueConfig) WithPlatform(p PlatformConfig) RevenueConfig {
	if p.Mode != PlatformOwn && p.FeePercent == 0 {
		p.FeePercent = 0.25
	}
	c.Platform = p
	return c
}

// Validate checks the revenue config.
func (c RevenueConfig) Validate() error {
	switch c.PricingModel {
	case PricingRideHail, PricingFlatRate:
	case PricingSubscription:
		if c.SubscriptionPricing.AvgMemberUsageMiles <= 0 {
			return fmt.Errorf("%w: subscription usage must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown pricing model: %s", ErrInvalidConfig, c.PricingModel)
	}
	u := c.Utilization
	if u.OperatingHoursPerDay < 0 || u.OperatingHoursPerDay > 24 {
		return fmt.Errorf("%w: operating hours must be within [0, 24]", ErrInvalidConfig)
	}
	if u.TripsPerHour < 0 || u.OperatingDaysPerMonth < 0 || u.OperatingDaysPerMonth > 31 {
		return fmt.Errorf("%w: invalid utilization", ErrInvalidConfig)
	}
	if u.DeadheadPercent < 0 {
		return fmt.Errorf("%w: deadhead must not be negative", ErrInvalidConfig)
	}
	if c.Platform.FeePercent < 0 || c.Platform.FeePercent > 1 {
		return fmt.Errorf("%w: platform fee must be a fraction", ErrInvalidConfig)
	}
	return nil
}
