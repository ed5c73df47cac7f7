package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/levenlabs/go-lflag"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
)

// StoredScenario is a scenario as persisted, with the document version it
// was written with.
type StoredScenario struct {
	Config  types.ScenarioConfig
	Version int
}

// Database persists named scenarios.
type Database interface {
	// ListScenarios returns every scenario, most recently updated first.
	ListScenarios(ctx context.Context) ([]StoredScenario, error)
	// GetScenario returns ErrScenarioNotFound for unknown ids.
	GetScenario(ctx context.Context, id string) (StoredScenario, error)
	// SaveScenario creates or replaces the scenario with the config's ID.
	SaveScenario(ctx context.Context, sc types.ScenarioConfig, version int) error
	// DeleteScenario returns ErrScenarioNotFound for unknown ids.
	DeleteScenario(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}

// Configured sets up the Storage provider based on flags.
func Configured() Database {
	provider := lflag.String("storage-provider", "firestore", "Storage provider to use (available: firestore, postgres)")

	var p struct{ Database }

	fs := configuredFirestore()
	pg := configuredPostgres()

	lflag.Do(func() {
		switch *provider {
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		case "postgres":
			if err := pg.Validate(); err != nil {
				panic(fmt.Sprintf("postgres validation failed: %v", err))
			}
			p.Database = pg
			if err := pg.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("postgres init failed: %v", err))
			}
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}
