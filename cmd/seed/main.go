package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/levenlabs/go-lflag"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/storage"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// sampleScenarios builds a ladder of scenarios, each adding one domain to
// the previous one.
func sampleScenarios() ([]types.ScenarioConfig, error) {
	base := types.DefaultScenarioConfig()
	base.Name = "Starter Fleet"
	base.Description = "Ten vehicles on flat-rate power"

	var err error
	base, err = base.WithVehicle(base.Vehicle.WithQuantity(10))
	if err != nil {
		return nil, err
	}

	solar := base
	solar.Name = "Fleet + Solar"
	solar.Description = "Starter fleet with a 10 kW array"
	solar, err = solar.WithSolar(solar.Solar.WithEnabled(true))
	if err != nil {
		return nil, err
	}

	battery := solar
	battery.Name = "Fleet + Solar + Storage"
	battery.Description = "Two Powerwalls arbitraging a time-of-use tariff"
	battery, err = battery.WithEnergy(battery.Energy.WithRateMode(types.RateModeTOU))
	if err != nil {
		return nil, err
	}
	battery, err = battery.WithBattery(battery.Battery.WithEnabled(true).WithQuantity(2).WithStrategy(types.BatteryTOUArbitrage))
	if err != nil {
		return nil, err
	}

	full := battery
	full.Name = "Full Stack"
	full.Description = "Excess-solar mining, a humanoid crew and the hourly optimizer"
	full, err = full.WithMining(full.Mining.WithEnabled(true).WithStrategy(types.MiningExcessSolar))
	if err != nil {
		return nil, err
	}
	full, err = full.WithHumanoid(full.Humanoid.WithEnabled(true).WithPlatform(types.PlatformSelection{
		PlatformID:      "tesla_optimus",
		Quantity:        2,
		AcquisitionType: types.AcquirePurchase,
	}))
	if err != nil {
		return nil, err
	}
	full, err = full.WithOptimizer(full.Optimizer.WithEnabled(true))
	if err != nil {
		return nil, err
	}

	return []types.ScenarioConfig{base, solar, battery, full}, nil
}

func main() {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		os.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8087")
	}
	s := storage.Configured()
	lflag.Configure()

	ctx := context.Background()
	defer s.Close()

	log.Ctx(ctx).InfoContext(ctx, "seeding sample scenarios")

	scenarios, err := sampleScenarios()
	if err != nil {
		panic(fmt.Errorf("failed to build sample scenarios: %w", err))
	}

	now := time.Now().UTC()
	for i, sc := range scenarios {
		sc.ID = uuid.NewString()
		sc.CreatedAt = now
		// stagger so the list keeps the ladder order
		sc.UpdatedAt = now.Add(-time.Duration(i) * time.Minute)
		if err := s.SaveScenario(ctx, sc, types.CurrentScenarioVersion); err != nil {
			panic(fmt.Errorf("failed to save scenario %q: %w", sc.Name, err))
		}
		log.Ctx(ctx).InfoContext(ctx, "seeded scenario", slog.String("id", sc.ID), slog.String("name", sc.Name))
	}

	log.Ctx(ctx).InfoContext(ctx, "seeding complete", slog.Int("count", len(scenarios)))
}
