package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnsupportedVersion is returned for documents newer than this build.
	ErrUnsupportedVersion = errors.New("unsupported scenario version")
)

// CurrentScenarioVersion is the current version of the scenario document.
// Increment this value when adding new fields that require default values.
const CurrentScenarioVersion = 4

// ScenarioConfig is a complete, named set of inputs to every calculator.
type ScenarioConfig struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Vehicle   VehicleConfig   `json:"vehicle"`
	Revenue   RevenueConfig   `json:"revenue"`
	Solar     SolarConfig     `json:"solar"`
	Battery   BatteryConfig   `json:"battery"`
	Energy    EnergyConfig    `json:"energy"`
	Mining    MiningConfig    `json:"mining"`
	Humanoid  HumanoidConfig  `json:"humanoid"`
	Optimizer OptimizerConfig `json:"optimizer"`
}

// DefaultScenarioConfig returns a one vehicle, flat rate scenario with every
// optional domain disabled.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Name:      "New Scenario",
		Vehicle:   DefaultVehicleConfig(),
		Revenue:   DefaultRevenueConfig(),
		Solar:     DefaultSolarConfig(),
		Battery:   DefaultBatteryConfig(),
		Energy:    DefaultEnergyConfig(),
		Mining:    DefaultMiningConfig(),
		Humanoid:  DefaultHumanoidConfig(),
		Optimizer: DefaultOptimizerConfig(),
	}
}

// Validate checks every field group of the scenario.
func (c ScenarioConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: scenario name is required", ErrInvalidConfig)
	}
	checks := []struct {
		group string
		fn    func() error
	}{
		{"vehicle", c.Vehicle.Validate},
		{"revenue", c.Revenue.Validate},
		{"solar", c.Solar.Validate},
		{"battery", c.Battery.Validate},
		{"energy", c.Energy.Validate},
		{"mining", c.Mining.Validate},
		{"humanoid", c.Humanoid.Validate},
		{"optimizer", c.Optimizer.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.group, err)
		}
	}
	return nil
}

// WithVehicle returns a copy of the scenario with the vehicle group replaced.
func (c ScenarioConfig) WithVehicle(v VehicleConfig) (ScenarioConfig, error) {
	if err := v.Validate(); err != nil {
		return c, fmt.Errorf("vehicle: %w", err)
	}
	c.Vehicle = v
	return c, nil
}

// WithRevenue returns a copy of the scenario with the revenue group replaced.
func (c ScenarioConfig) WithRevenue(r RevenueConfig) (ScenarioConfig, error) {
	if err := r.Validate(); err != nil {
		return c, fmt.Errorf("revenue: %w", err)
	}
	c.Revenue = r
	return c, nil
}

// WithSolar returns a copy of the scenario with the solar group replaced.
func (c ScenarioConfig) WithSolar(s SolarConfig) (ScenarioConfig, error) {
	if err := s.Validate(); err != nil {
		return c, fmt.Errorf("solar: %w", err)
	}
	c.Solar = s
	return c, nil
}

// WithBattery returns a copy of the scenario with the battery group replaced.
func (c ScenarioConfig) WithBattery(b BatteryConfig) (ScenarioConfig, error) {
	if err := b.Validate(); err != nil {
		return c, fmt.Errorf("battery: %w", err)
	}
	c.Battery = b
	return c, nil
}

// WithEnergy returns a copy of the scenario with the energy group replaced.
func (c ScenarioConfig) WithEnergy(e EnergyConfig) (ScenarioConfig, error) {
	if err := e.Validate(); err != nil {
		return c, fmt.Errorf("energy: %w", err)
	}
	c.Energy = e
	return c, nil
}

// WithMining returns a copy of the scenario with the mining group replaced.
func (c ScenarioConfig) WithMining(m MiningConfig) (ScenarioConfig, error) {
	if err := m.Validate(); err != nil {
		return c, fmt.Errorf("mining: %w", err)
	}
	c.Mining = m
	return c, nil
}

// WithHumanoid returns a copy of the scenario with the humanoid group
// replaced.
func (c ScenarioConfig) WithHumanoid(h HumanoidConfig) (ScenarioConfig, error) {
	if err := h.Validate(); err != nil {
		return c, fmt.Errorf("humanoid: %w", err)
	}
	c.Humanoid = h
	return c, nil
}

// WithOptimizer returns a copy of the scenario with the optimizer group
// replaced.
func (c ScenarioConfig) WithOptimizer(o OptimizerConfig) (ScenarioConfig, error) {
	if err := o.Validate(); err != nil {
		return c, fmt.Errorf("optimizer: %w", err)
	}
	c.Optimizer = o
	return c, nil
}

// ScenarioExport is the file format used to export and import a scenario.
type ScenarioExport struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Config     ScenarioConfig `json:"config"`
}

// MigrateScenario migrates a scenario to the current version.
// It returns the migrated scenario, a boolean indicating if changes were made,
// and an error if migration failed.
func MigrateScenario(c ScenarioConfig, currentVersion int) (ScenarioConfig, bool, error) {
	if currentVersion > CurrentScenarioVersion {
		return c, false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, currentVersion)
	}
	if currentVersion == CurrentScenarioVersion {
		return c, false, nil
	}

	migrated := false
	for version := currentVersion + 1; version <= CurrentScenarioVersion; version++ {
		switch version {
		case 1:
			// version 1: initial
			if c.Name == "" {
				c.Name = "New Scenario"
				migrated = true
			}
		case 2:
			// version 2: add battery storage and net metering
			if c.Battery.Strategy == "" {
				c.Battery = DefaultBatteryConfig()
				migrated = true
			}
			if c.Energy.NetMetering == (NetMeteringConfig{}) {
				c.Energy.NetMetering = DefaultEnergyConfig().NetMetering
				migrated = true
			}
		case 3:
			// version 3: add mining and humanoid labor
			if c.Mining.MiningStrategy == "" {
				c.Mining = DefaultMiningConfig()
				migrated = true
			}
			if c.Humanoid.DepreciationYears == 0 {
				c.Humanoid = DefaultHumanoidConfig()
				migrated = true
			}
		case 4:
			// version 4: add the hourly optimizer
			if c.Optimizer.Priorities == (Priorities{}) {
				c.Optimizer = DefaultOptimizerConfig()
				migrated = true
			}
		default:
			return c, false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
		}
	}

	return c, migrated, nil
}
