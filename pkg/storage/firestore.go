package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const scenariosCollection = "scenarios"

// FirestoreProvider implements Database using Google Cloud Firestore.
// Each scenario is one document holding the config as a JSON string.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID verification could be here, but we allow empty if inferred.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func decodeScenarioDoc(ctx context.Context, doc *firestore.DocumentSnapshot) (StoredScenario, error) {
	// Read version if available (default 0)
	var version int
	if v, err := doc.DataAt("version"); err == nil {
		if vInt, ok := v.(int64); ok {
			version = int(vInt)
		}
	}

	val, err := doc.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "scenario doc missing json", slog.String("scenarioID", doc.Ref.ID))
		return StoredScenario{}, fmt.Errorf("scenario document %s missing 'json' field: %w", doc.Ref.ID, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "scenario doc json not string", slog.String("scenarioID", doc.Ref.ID))
		return StoredScenario{}, fmt.Errorf("scenario document %s 'json' field is not a string", doc.Ref.ID)
	}

	var sc types.ScenarioConfig
	if err := json.Unmarshal([]byte(jsonStr), &sc); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal scenario json", slog.String("scenarioID", doc.Ref.ID), slog.Any("err", err))
		return StoredScenario{}, fmt.Errorf("failed to unmarshal scenario (id=%s): %w", doc.Ref.ID, err)
	}
	sc.ID = doc.Ref.ID
	return StoredScenario{Config: sc, Version: version}, nil
}

// ListScenarios implements Database.
func (f *FirestoreProvider) ListScenarios(ctx context.Context) ([]StoredScenario, error) {
	iter := f.client.Collection(scenariosCollection).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	scenarios := []StoredScenario{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating scenarios: %w", err)
		}
		s, err := decodeScenarioDoc(ctx, doc)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// GetScenario implements Database.
func (f *FirestoreProvider) GetScenario(ctx context.Context, id string) (StoredScenario, error) {
	if id == "" {
		return StoredScenario{}, ErrScenarioNotFound
	}
	doc, err := f.client.Collection(scenariosCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return StoredScenario{}, ErrScenarioNotFound
		}
		return StoredScenario{}, fmt.Errorf("failed to fetch scenario doc: %w", err)
	}
	return decodeScenarioDoc(ctx, doc)
}

// SaveScenario implements Database. The config is stored as a JSON string
// for portability.
func (f *FirestoreProvider) SaveScenario(ctx context.Context, sc types.ScenarioConfig, version int) error {
	if sc.ID == "" {
		return fmt.Errorf("scenario id cannot be empty")
	}
	jsonBytes, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	_, err = f.client.Collection(scenariosCollection).Doc(sc.ID).Set(ctx, map[string]interface{}{
		"json":      string(jsonBytes),
		"name":      sc.Name,
		"version":   version,
		"updatedAt": sc.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// DeleteScenario implements Database.
func (f *FirestoreProvider) DeleteScenario(ctx context.Context, id string) error {
	if id == "" {
		return ErrScenarioNotFound
	}
	_, err := f.client.Collection(scenariosCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrScenarioNotFound
		}
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}
