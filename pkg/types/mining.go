package types

import (
	"fmt"
	"time"
)

type Algorithm string

const (
	AlgorithmSHA256    Algorithm = "sha256"
	AlgorithmScrypt    Algorithm = "scrypt"
	AlgorithmKawpow    Algorithm = "kawpow"
	AlgorithmAutolykos Algorithm = "autolykos"
	AlgorithmEthash    Algorithm = "ethash"
)

type CoolingType string

const (
	CoolingPortableAC CoolingType = "portable_ac"
	CoolingMiniSplit  CoolingType = "mini_split"
	CoolingIndustrial CoolingType = "industrial"
	CoolingImmersion  CoolingType = "immersion"
)

// MiningStrategy decides when miners run and where their energy comes from.
type MiningStrategy string

const (
	MiningExcessSolar  MiningStrategy = "excess_solar"
	MiningTOUArbitrage MiningStrategy = "tou_arbitrage"
	MiningContinuous   MiningStrategy = "continuous"
)

type TargetCoin string

const (
	CoinBTC  TargetCoin = "BTC"
	CoinLTC  TargetCoin = "LTC"
	CoinRVN  TargetCoin = "RVN"
	CoinERGO TargetCoin = "ERGO"
	CoinFLUX TargetCoin = "FLUX"
)

// ASICMiner is a catalog entry for an ASIC miner.
type ASICMiner struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"displayName"`
	Manufacturer  string    `json:"manufacturer"`
	Algorithm     Algorithm `json:"algorithm"`
	HashrateTH    float64   `json:"hashrateTh"`
	PowerWatts    float64   `json:"powerWatts"`
	EfficiencyJTH float64   `json:"efficiencyJTh"`
	MSRPUSD       float64   `json:"msrpUsd"`
	NoiseDB       float64   `json:"noiseDb"`
	CoolingType   string    `json:"coolingType"`
}

// GPUMiner is a catalog entry for a mining GPU.
type GPUMiner struct {
	ID                  string  `json:"id"`
	DisplayName         string  `json:"displayName"`
	Manufacturer        string  `json:"manufacturer"`
	VRAMGB              float64 `json:"vramGb"`
	HashrateKawpowMH    float64 `json:"hashrateKawpowMh"`
	HashrateAutolykosMH float64 `json:"hashrateAutolykosMh"`
	PowerWattsMining    float64 `json:"powerWattsMining"`
	MSRPUSD             float64 `json:"msrpUsd"`
}

// CoolingPreset describes a cooling installation.
type CoolingPreset struct {
	Type        CoolingType `json:"type"`
	CapacityKW  float64     `json:"capacityKw"`
	PowerWatts  float64     `json:"powerWatts"`
	InstallCost float64     `json:"installCost"`
}

// CoinInfo describes a supported coin.
type CoinInfo struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Algorithm   Algorithm `json:"algorithm"`
	CoinGeckoID string    `json:"coingeckoId"`
}

var CoolingPresets = map[CoolingType]CoolingPreset{
	CoolingPortableAC: {Type: CoolingPortableAC, CapacityKW: 4, PowerWatts: 1500, InstallCost: 600},
	CoolingMiniSplit:  {Type: CoolingMiniSplit, CapacityKW: 7, PowerWatts: 2000, InstallCost: 2500},
	CoolingIndustrial: {Type: CoolingIndustrial, CapacityKW: 15, PowerWatts: 500, InstallCost: 1500},
	CoolingImmersion:  {Type: CoolingImmersion, CapacityKW: 50, PowerWatts: 1000, InstallCost: 15000},
}

var ASICMiners = []ASICMiner{
	{ID: "antminer_s21_hyd", DisplayName: "Bitmain Antminer S21 Hyd", Manufacturer: "Bitmain", Algorithm: AlgorithmSHA256, HashrateTH: 335, PowerWatts: 5360, EfficiencyJTH: 16.0, MSRPUSD: 5500, NoiseDB: 50, CoolingType: "hydro"},
	{ID: "antminer_s21", DisplayName: "Bitmain Antminer S21", Manufacturer: "Bitmain", Algorithm: AlgorithmSHA256, HashrateTH: 200, PowerWatts: 3500, EfficiencyJTH: 17.5, MSRPUSD: 4500, NoiseDB: 75, CoolingType: "air"},
	{ID: "antminer_s19_xp", DisplayName: "Bitmain Antminer S19 XP", Manufacturer: "Bitmain", Algorithm: AlgorithmSHA256, HashrateTH: 140, PowerWatts: 3010, EfficiencyJTH: 21.5, MSRPUSD: 3200, NoiseDB: 75, CoolingType: "air"},
	{ID: "whatsminer_m50s", DisplayName: "MicroBT Whatsminer M50S", Manufacturer: "MicroBT", Algorithm: AlgorithmSHA256, HashrateTH: 126, PowerWatts: 3276, EfficiencyJTH: 26.0, MSRPUSD: 2800, NoiseDB: 75, CoolingType: "air"},
	// scrypt hashrate is GH/s but kept in the TH field
	{ID: "antminer_l7", DisplayName: "Bitmain Antminer L7", Manufacturer: "Bitmain", Algorithm: AlgorithmScrypt, HashrateTH: 9.5, PowerWatts: 3425, EfficiencyJTH: 360, MSRPUSD: 8000, NoiseDB: 75, CoolingType: "air"},
}

var GPUMiners = []GPUMiner{
	{ID: "rtx_4090", DisplayName: "NVIDIA RTX 4090", Manufacturer: "NVIDIA", VRAMGB: 24, HashrateKawpowMH: 58, HashrateAutolykosMH: 260, PowerWattsMining: 350, MSRPUSD: 1800},
	{ID: "rtx_4070ti", DisplayName: "NVIDIA RTX 4070 Ti", Manufacturer: "NVIDIA", VRAMGB: 12, HashrateKawpowMH: 35, HashrateAutolykosMH: 150, PowerWattsMining: 220, MSRPUSD: 800},
	{ID: "rtx_3080", DisplayName: "NVIDIA RTX 3080", Manufacturer: "NVIDIA", VRAMGB: 10, HashrateKawpowMH: 28, HashrateAutolykosMH: 130, PowerWattsMining: 280, MSRPUSD: 500},
	{ID: "rx_7900xtx", DisplayName: "AMD Radeon RX 7900 XTX", Manufacturer: "AMD", VRAMGB: 24, HashrateKawpowMH: 32, HashrateAutolykosMH: 140, PowerWattsMining: 355, MSRPUSD: 1000},
}

var SupportedCoins = []CoinInfo{
	{ID: "btc", Symbol: "BTC", Name: "Bitcoin", Algorithm: AlgorithmSHA256, CoinGeckoID: "bitcoin"},
	{ID: "ltc", Symbol: "LTC", Name: "Litecoin", Algorithm: AlgorithmScrypt, CoinGeckoID: "litecoin"},
	{ID: "rvn", Symbol: "RVN", Name: "Ravencoin", Algorithm: AlgorithmKawpow, CoinGeckoID: "ravencoin"},
	{ID: "erg", Symbol: "ERG", Name: "Ergo", Algorithm: AlgorithmAutolykos, CoinGeckoID: "ergo"},
	{ID: "flux", Symbol: "FLUX", Name: "Flux", Algorithm: AlgorithmKawpow, CoinGeckoID: "zelcash"},
}

// ASICMinerByID looks up an ASIC miner.
func ASICMinerByID(id string) (ASICMiner, bool) {
	for _, m := range ASICMiners {
		if m.ID == id {
			return m, true
		}
	}
	return ASICMiner{}, false
}

// GPUMinerByID looks up a GPU.
func GPUMinerByID(id string) (GPUMiner, bool) {
	for _, m := range GPUMiners {
		if m.ID == id {
			return m, true
		}
	}
	return GPUMiner{}, false
}

// MiningConfig describes the on-site mining operation.
type MiningConfig struct {
	Enabled bool `json:"enabled"`

	ASICModel            string  `json:"asicModel"`
	ASICQuantity         int     `json:"asicQuantity"`
	ASICOverclockPercent float64 `json:"asicOverclockPercent"`

	GPUEnabled    bool       `json:"gpuEnabled"`
	GPUModel      string     `json:"gpuModel"`
	GPUQuantity   int        `json:"gpuQuantity"`
	GPURigCount   int        `json:"gpuRigCount"`
	GPUAlgorithm  Algorithm  `json:"gpuAlgorithm"`
	GPUTargetCoin TargetCoin `json:"gpuTargetCoin"`

	PoolFeePercent float64 `json:"poolFeePercent"`

	CoolingType        CoolingType `json:"coolingType"`
	CoolingPowerWatts  float64     `json:"coolingPowerWatts"`
	CoolingInstallCost float64     `json:"coolingInstallCost"`

	MiningStrategy        MiningStrategy `json:"miningStrategy"`
	MineOffPeak           bool           `json:"mineOffPeak"`
	MineSolarOnly         bool           `json:"mineSolarOnly"`
	PauseDuringPeakExport bool           `json:"pauseDuringPeakExport"`

	FacilityBaseLoadKW     float64 `json:"facilityBaseLoadKw"`
	FleetChargingKWHPerDay float64 `json:"fleetChargingKwhPerDay"`

	ModelDifficultyIncreases      bool    `json:"modelDifficultyIncreases"`
	AnnualDifficultyGrowthPercent float64 `json:"annualDifficultyGrowthPercent"`
}

// NetworkStats are the bitcoin network figures used for revenue share.
type NetworkStats struct {
	NetworkHashrateEH               float64 `json:"networkHashrateEh"`
	Difficulty                      float64 `json:"difficulty"`
	BlockReward                     float64 `json:"blockReward"`
	AvgBlockTimeSeconds             float64 `json:"avgBlockTimeSeconds"`
	NextDifficultyAdjustmentPercent float64 `json:"nextDifficultyAdjustmentPercent"`
}

// CryptoPrices are USD spot prices.
type CryptoPrices struct {
	Bitcoin     float64   `json:"bitcoin"`
	Litecoin    float64   `json:"litecoin"`
	Ravencoin   float64   `json:"ravencoin"`
	Ergo        float64   `json:"ergo"`
	Flux        float64   `json:"flux"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MarketData bundles the live inputs to the mining calculator.
type MarketData struct {
	Network NetworkStats `json:"network"`
	Prices  CryptoPrices `json:"prices"`
}

// DefaultNetworkStats are used when live network stats are unavailable.
func DefaultNetworkStats() NetworkStats {
	return NetworkStats{
		NetworkHashrateEH:   600,
		Difficulty:          88e12,
		BlockReward:         3.125,
		AvgBlockTimeSeconds: 600,
	}
}

// DefaultCryptoPrices are used when live prices are unavailable.
func DefaultCryptoPrices() CryptoPrices {
	return CryptoPrices{
		Bitcoin:   67000,
		Litecoin:  85,
		Ravencoin: 0.025,
		Ergo:      1.5,
		Flux:      0.5,
	}
}

// DefaultMarketData returns the static fallback market.
func DefaultMarketData() MarketData {
	return MarketData{
		Network: DefaultNetworkStats(),
		Prices:  DefaultCryptoPrices(),
	}
}

// MiningRevenue is the result of the mining profitability calculator.
type MiningRevenue struct {
	TotalHashrateTH float64 `json:"totalHashrateTh"`
	MinerShare      float64 `json:"minerShare"`

	DailyCryptoGross float64 `json:"dailyCryptoGross"`
	DailyCryptoNet   float64 `json:"dailyCryptoNet"`
	DailyUSDRevenue  float64 `json:"dailyUsdRevenue"`

	MonthlyCrypto     float64 `json:"monthlyCrypto"`
	MonthlyUSDRevenue float64 `json:"monthlyUsdRevenue"`

	DailyEnergyKWH   float64 `json:"dailyEnergyKwh"`
	MonthlyEnergyKWH float64 `json:"monthlyEnergyKwh"`

	EnergyFromSolarKWH   float64 `json:"energyFromSolarKwh"`
	EnergyFromBatteryKWH float64 `json:"energyFromBatteryKwh"`
	EnergyFromGridKWH    float64 `json:"energyFromGridKwh"`
	SolarOffsetPercent   float64 `json:"solarOffsetPercent"`
	EffectiveHoursPerDay float64 `json:"effectiveHoursPerDay"`

	MonthlyEnergyCost      float64 `json:"monthlyEnergyCost"`
	EnergyCostWithoutSolar float64 `json:"energyCostWithoutSolar"`
	MonthlySolarSavings    float64 `json:"monthlySolarSavings"`

	MonthlyGrossRevenue    float64 `json:"monthlyGrossRevenue"`
	MonthlyMaintenanceCost float64 `json:"monthlyMaintenanceCost"`
	MonthlyCoolingCost     float64 `json:"monthlyCoolingCost"`
	MonthlyNetProfit       float64 `json:"monthlyNetProfit"`

	TotalHardwareCost        float64 `json:"totalHardwareCost"`
	MonthlyCoolingEnergyCost float64 `json:"monthlyCoolingEnergyCost"`
	PaybackMonths            Months  `json:"paybackMonths"`
}

// MiningProjectionMonth is one month of the difficulty-adjusted projection.
type MiningProjectionMonth struct {
	Month            int     `json:"month"`
	Revenue          float64 `json:"revenue"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// DefaultMiningConfig returns a disabled single S21 running continuously.
func DefaultMiningConfig() MiningConfig {
	return MiningConfig{
		ASICModel:                     "antminer_s21",
		ASICQuantity:                  1,
		GPUModel:                      "rtx_4090",
		GPUQuantity:                   6,
		GPURigCount:                   1,
		GPUAlgorithm:                  AlgorithmKawpow,
		GPUTargetCoin:                 CoinRVN,
		PoolFeePercent:                2,
		CoolingType:                   CoolingMiniSplit,
		CoolingPowerWatts:             2000,
		CoolingInstallCost:            2500,
		MiningStrategy:                MiningContinuous,
		MineOffPeak:                   true,
		PauseDuringPeakExport:         true,
		FacilityBaseLoadKW:            5,
		ModelDifficultyIncreases:      true,
		AnnualDifficultyGrowthPercent: 25,
	}
}

// WithEnabled toggles mining.
func (c MiningConfig) WithEnabled(enabled bool) MiningConfig {
	c.Enabled = enabled
	return c
}

// WithStrategy changes the mining strategy.
func (c MiningConfig) WithStrategy(s MiningStrategy) MiningConfig {
	c.MiningStrategy = s
	return c
}

// WithASIC changes the ASIC model and count.
func (c MiningConfig) WithASIC(model string, quantity int) MiningConfig {
	c.ASICModel = model
	c.ASICQuantity = quantity
	return c
}

// WithCooling picks a cooling preset, copying its power and install cost.
func (c MiningConfig) WithCooling(t CoolingType) MiningConfig {
	c.CoolingType = t
	if p, ok := CoolingPresets[t]; ok {
		c.CoolingPowerWatts = p.PowerWatts
		c.CoolingInstallCost = p.InstallCost
	}
	return c
}

// WithFleetChargingKWHPerDay sets the fleet load that solar serves first.
func (c MiningConfig) WithFleetChargingKWHPerDay(kwh float64) MiningConfig {
	c.FleetChargingKWHPerDay = kwh
	return c
}

// Validate checks the mining config.
func (c MiningConfig) Validate() error {
	switch c.MiningStrategy {
	case MiningExcessSolar, MiningTOUArbitrage, MiningContinuous:
	default:
		return fmt.Errorf("%w: unknown mining strategy: %s", ErrInvalidConfig, c.MiningStrategy)
	}
	if c.ASICQuantity < 0 || c.GPUQuantity < 0 || c.GPURigCount < 0 {
		return fmt.Errorf("%w: miner quantities must not be negative", ErrInvalidConfig)
	}
	if c.ASICOverclockPercent < -50 || c.ASICOverclockPercent > 50 {
		return fmt.Errorf("%w: overclock must be within [-50, 50]", ErrInvalidConfig)
	}
	if c.PoolFeePercent < 0 || c.PoolFeePercent >= 100 {
		return fmt.Errorf("%w: pool fee must be within [0, 100)", ErrInvalidConfig)
	}
	if c.FacilityBaseLoadKW < 0 {
		return fmt.Errorf("%w: facility load must not be negative", ErrInvalidConfig)
	}
	return nil
}
