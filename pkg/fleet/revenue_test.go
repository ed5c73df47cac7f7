package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

func TestRevenue(t *testing.T) {
	vehicle := types.DefaultVehicleConfig()

	t.Run("default ride hail", func(t *testing.T) {
		res := Revenue(types.DefaultRevenueConfig(), vehicle, 0.25)

		assert.InDelta(t, 5.50, res.AvgFare, 1e-9)
		assert.InDelta(t, 24, res.TripsPerDay, 1e-9)
		assert.InDelta(t, 672, res.MonthlyTrips, 1e-9)
		assert.InDelta(t, 3696, res.GrossRevenue, 1e-9)
		assert.Zero(t, res.PlatformFees)
		assert.InDelta(t, 3696, res.NetRevenue, 1e-9)
		assert.InDelta(t, 3360, res.RevenueMiles, 1e-9)
		assert.InDelta(t, 4032, res.TotalMiles, 1e-9)
	})

	t.Run("per trip economics", func(t *testing.T) {
		res := Revenue(types.DefaultRevenueConfig(), vehicle, 0.25)

		// 5 miles plus 20% deadhead
		assert.InDelta(t, 6.0/4.2*0.25, res.EnergyCostPerTrip, 1e-9)
		assert.InDelta(t, 0.30, res.MaintenanceCostPerTrip, 1e-9)
		assert.InDelta(t, 5.50, res.RevenuePerTrip, 1e-9)
		profit := 5.50 - 6.0/4.2*0.25 - 0.30
		assert.InDelta(t, profit, res.ProfitPerTrip, 1e-9)
		assert.InDelta(t, profit/5.50*100, res.ProfitMarginPerTrip, 1e-9)
	})

	t.Run("platform fees", func(t *testing.T) {
		c := types.DefaultRevenueConfig().WithPlatform(types.PlatformConfig{Mode: types.PlatformUber})
		res := Revenue(c, vehicle, 0.25)
		assert.InDelta(t, 3696*0.25, res.PlatformFees, 1e-9)
		assert.InDelta(t, 3696*0.75, res.NetRevenue, 1e-9)
		assert.InDelta(t, 5.50*0.75, res.RevenuePerTrip, 1e-9)
	})

	t.Run("flat rate", func(t *testing.T) {
		c := types.DefaultRevenueConfig().WithPricingModel(types.PricingFlatRate)
		res := Revenue(c, vehicle.WithQuantity(2), 0.25)
		assert.InDelta(t, 35, res.AvgFare, 1e-9)
		assert.InDelta(t, 1344, res.MonthlyTrips, 1e-9)
		assert.InDelta(t, 20, res.AvgTripMiles, 1e-9)
		assert.InDelta(t, 35, res.AvgTripMinutes, 1e-9)
	})

	t.Run("subscription", func(t *testing.T) {
		c := types.DefaultRevenueConfig().WithPricingModel(types.PricingSubscription)
		// 400 of 500 miles used, no overage, 80 trips per member
		assert.InDelta(t, 299.0/80, AverageFare(c), 1e-9)

		c.SubscriptionPricing.AvgMemberUsageMiles = 600
		assert.InDelta(t, 349, SubscriptionRevenue(c.SubscriptionPricing), 1e-9)
		assert.InDelta(t, 349.0/120, AverageFare(c), 1e-9)
	})

	t.Run("no fare", func(t *testing.T) {
		c := types.DefaultRevenueConfig().WithPricingModel(types.PricingFlatRate)
		c.FlatRatePricing.FlatFare = 0
		res := Revenue(c, vehicle, 0.25)
		assert.Zero(t, res.ProfitMarginPerTrip)
		assert.Zero(t, res.GrossRevenue)
	})
}
