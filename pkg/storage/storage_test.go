package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

// testScenarioStore runs the behaviour every Database must share.
func testScenarioStore(t *testing.T, db Database) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	prefix := fmt.Sprintf("test-%d", now.UnixNano())

	newScenario := func(id, name string, updated time.Time) types.ScenarioConfig {
		sc := types.DefaultScenarioConfig()
		sc.ID = id
		sc.Name = name
		sc.CreatedAt = now
		sc.UpdatedAt = updated
		return sc
	}

	t.Run("GetMissing", func(t *testing.T) {
		_, err := db.GetScenario(ctx, prefix+"-missing")
		assert.ErrorIs(t, err, ErrScenarioNotFound)
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		sc := newScenario(prefix+"-a", "Fleet of 10", now)
		sc.Vehicle = sc.Vehicle.WithQuantity(10)
		sc.Solar = sc.Solar.WithEnabled(true)
		require.NoError(t, db.SaveScenario(ctx, sc, types.CurrentScenarioVersion))

		got, err := db.GetScenario(ctx, sc.ID)
		require.NoError(t, err)
		assert.Equal(t, types.CurrentScenarioVersion, got.Version)
		assert.Equal(t, sc.ID, got.Config.ID)
		assert.Equal(t, "Fleet of 10", got.Config.Name)
		assert.Equal(t, 10, got.Config.Vehicle.Quantity)
		assert.True(t, got.Config.Solar.Enabled)
		assert.True(t, got.Config.UpdatedAt.Equal(now))
	})

	t.Run("Overwrite", func(t *testing.T) {
		sc := newScenario(prefix+"-a", "Renamed", now.Add(time.Minute))
		require.NoError(t, db.SaveScenario(ctx, sc, 3))

		got, err := db.GetScenario(ctx, sc.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Version)
		assert.Equal(t, "Renamed", got.Config.Name)
	})

	t.Run("EmptyID", func(t *testing.T) {
		err := db.SaveScenario(ctx, newScenario("", "nameless", now), types.CurrentScenarioVersion)
		assert.Error(t, err)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, db.SaveScenario(ctx, newScenario(prefix+"-b", "Later", now.Add(time.Hour)), types.CurrentScenarioVersion))

		list, err := db.ListScenarios(ctx)
		require.NoError(t, err)

		var ids []string
		for _, s := range list {
			if s.Config.ID == prefix+"-a" || s.Config.ID == prefix+"-b" {
				ids = append(ids, s.Config.ID)
			}
		}
		assert.Equal(t, []string{prefix + "-b", prefix + "-a"}, ids)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.DeleteScenario(ctx, prefix+"-b"))
		_, err := db.GetScenario(ctx, prefix+"-b")
		assert.ErrorIs(t, err, ErrScenarioNotFound)

		assert.ErrorIs(t, db.DeleteScenario(ctx, prefix+"-b"), ErrScenarioNotFound)
	})
}
