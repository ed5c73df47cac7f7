package mining

import (
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const secondsPerDay = 86400

// BTCRevenue is a day of mined bitcoin at full uptime.
type BTCRevenue struct {
	DailyGross float64
	DailyNet   float64
	DailyUSD   float64
}

// MinerShare is the ASIC fleet's share of the network hashrate.
func MinerShare(c types.MiningConfig, stats types.NetworkStats) float64 {
	th := ASICHashrateTH(c)
	if th == 0 || stats.NetworkHashrateEH <= 0 {
		return 0
	}
	return th / (stats.NetworkHashrateEH * 1e6)
}

// DailyBTC is the bitcoin earned per day before scaling by mining hours.
func DailyBTC(c types.MiningConfig, stats types.NetworkStats, btcPrice float64) BTCRevenue {
	share := MinerShare(c, stats)
	if share == 0 || stats.AvgBlockTimeSeconds <= 0 {
		return BTCRevenue{}
	}
	network := secondsPerDay / stats.AvgBlockTimeSeconds * stats.BlockReward
	gross := network * share
	net := gross * (1 - c.PoolFeePercent/100)
	return BTCRevenue{
		DailyGross: gross,
		DailyNet:   net,
		DailyUSD:   net * btcPrice,
	}
}

// revenuePerMHDay estimates USD per MH/s per day for a coin, scaled from a
// reference price.
func revenuePerMHDay(coin types.TargetCoin, p types.CryptoPrices) float64 {
	switch coin {
	case types.CoinRVN:
		return 0.007 * (p.Ravencoin / 0.025)
	case types.CoinERGO:
		return 0.004 * (p.Ergo / 1.5)
	case types.CoinFLUX:
		return 0.005 * (p.Flux / 0.5)
	}
	return 0.005
}

// DailyAltcoinUSD is the GPU revenue per day at full uptime.
func DailyAltcoinUSD(c types.MiningConfig, p types.CryptoPrices) float64 {
	if !c.GPUEnabled {
		return 0
	}
	return GPUHashrateMH(c) * revenuePerMHDay(c.GPUTargetCoin, p) * (1 - c.PoolFeePercent/100)
}
