// Package mining estimates the profitability of on-site crypto mining and
// where its energy comes from.
package mining

import (
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const (
	// overclockPowerFactor is how much faster power grows than hashrate when
	// overclocking.
	overclockPowerFactor = 1.3
	rigOverheadWatts     = 100
	rigCostUSD           = 500
)

// ASICHashrateTH is the total overclocked ASIC hashrate.
func ASICHashrateTH(c types.MiningConfig) float64 {
	m, ok := types.ASICMinerByID(c.ASICModel)
	if !ok {
		return 0
	}
	return m.HashrateTH * float64(c.ASICQuantity) * (1 + c.ASICOverclockPercent/100)
}

// ASICPowerWatts is the total ASIC draw including the overclock penalty.
func ASICPowerWatts(c types.MiningConfig) float64 {
	m, ok := types.ASICMinerByID(c.ASICModel)
	if !ok {
		return 0
	}
	return m.PowerWatts * float64(c.ASICQuantity) * (1 + c.ASICOverclockPercent/100*overclockPowerFactor)
}

func gpuCount(c types.MiningConfig) float64 {
	return float64(c.GPUQuantity * c.GPURigCount)
}

// GPUHashrateMH is the GPU hashrate on the configured algorithm. Algorithms
// without a catalog figure use kawpow.
func GPUHashrateMH(c types.MiningConfig) float64 {
	if !c.GPUEnabled {
		return 0
	}
	g, ok := types.GPUMinerByID(c.GPUModel)
	if !ok {
		return 0
	}
	if c.GPUAlgorithm == types.AlgorithmAutolykos {
		return g.HashrateAutolykosMH * gpuCount(c)
	}
	return g.HashrateKawpowMH * gpuCount(c)
}

// GPUPowerWatts is the GPU draw plus rig overhead.
func GPUPowerWatts(c types.MiningConfig) float64 {
	if !c.GPUEnabled {
		return 0
	}
	g, ok := types.GPUMinerByID(c.GPUModel)
	if !ok {
		return 0
	}
	return g.PowerWattsMining*gpuCount(c) + rigOverheadWatts*float64(c.GPURigCount)
}

// CoolingPowerWatts prefers the preset's draw over the configured one.
func CoolingPowerWatts(c types.MiningConfig) float64 {
	if p, ok := types.CoolingPresets[c.CoolingType]; ok && p.PowerWatts > 0 {
		return p.PowerWatts
	}
	return c.CoolingPowerWatts
}

// TotalPowerWatts is every mining load, zero when mining is disabled.
func TotalPowerWatts(c types.MiningConfig) float64 {
	if !c.Enabled {
		return 0
	}
	return ASICPowerWatts(c) + GPUPowerWatts(c) + CoolingPowerWatts(c)
}

// HardwareCost is the upfront cost of miners, rigs and cooling.
func HardwareCost(c types.MiningConfig) float64 {
	var total float64
	if m, ok := types.ASICMinerByID(c.ASICModel); ok {
		total += m.MSRPUSD * float64(c.ASICQuantity)
	}
	if c.GPUEnabled {
		if g, ok := types.GPUMinerByID(c.GPUModel); ok {
			total += g.MSRPUSD*gpuCount(c) + rigCostUSD*float64(c.GPURigCount)
		}
	}
	if p, ok := types.CoolingPresets[c.CoolingType]; ok && p.InstallCost > 0 {
		total += p.InstallCost
	} else {
		total += c.CoolingInstallCost
	}
	return total
}

// MaintenanceCost is the monthly upkeep: $50 per ASIC a quarter and $20 per
// GPU a year, each with a $20 monthly base.
func MaintenanceCost(c types.MiningConfig) float64 {
	cost := float64(c.ASICQuantity)*50/3 + 20
	if c.GPUEnabled {
		cost += gpuCount(c)*20/12 + 20
	}
	return cost
}
