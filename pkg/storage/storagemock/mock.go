package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/storage"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) ListScenarios(ctx context.Context) ([]storage.StoredScenario, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]storage.StoredScenario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatabase) GetScenario(ctx context.Context, id string) (storage.StoredScenario, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storage.StoredScenario), args.Error(1)
}

func (m *MockDatabase) SaveScenario(ctx context.Context, sc types.ScenarioConfig, version int) error {
	args := m.Called(ctx, sc, version)
	return args.Error(0)
}

func (m *MockDatabase) DeleteScenario(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	return nil
}
