package server

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/market"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

type mockMarket struct {
	mock.Mock
}

var _ marketSource = (*mockMarket)(nil)

func (m *mockMarket) MarketData(ctx context.Context) types.MarketData {
	return types.DefaultMarketData()
}

func (m *mockMarket) Prices(ctx context.Context) market.Prices {
	args := m.Called(ctx)
	return args.Get(0).(market.Prices)
}

func (m *mockMarket) Network(ctx context.Context) market.Network {
	args := m.Called(ctx)
	return args.Get(0).(market.Network)
}

func (m *mockMarket) SolarEstimate(ctx context.Context, r market.SolarRequest) (types.SolarEstimate, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(types.SolarEstimate), args.Error(1)
}
