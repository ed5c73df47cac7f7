package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/storage"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

func newScenarioID() string {
	return uuid.NewString()
}

// getScenarioWithMigration loads a scenario and upgrades it to the current
// document version, saving the upgrade back when anything changed.
func (s *Server) getScenarioWithMigration(ctx context.Context, id string) (types.ScenarioConfig, error) {
	stored, err := s.storage.GetScenario(ctx, id)
	if err != nil {
		return types.ScenarioConfig{}, err
	}
	if stored.Version >= types.CurrentScenarioVersion {
		if stored.Version > types.CurrentScenarioVersion {
			return types.ScenarioConfig{}, fmt.Errorf("%w: %d", types.ErrUnsupportedVersion, stored.Version)
		}
		return stored.Config, nil
	}

	log.Ctx(ctx).InfoContext(ctx, "migrating scenario", slog.String("scenarioID", id), slog.Int("oldVersion", stored.Version), slog.Int("newVersion", types.CurrentScenarioVersion))
	migrated, changed, err := types.MigrateScenario(stored.Config, stored.Version)
	if err != nil {
		return types.ScenarioConfig{}, err
	}
	if changed {
		if err := s.storage.SaveScenario(ctx, migrated, types.CurrentScenarioVersion); err != nil {
			// the migrated copy still serves this request
			log.Ctx(ctx).ErrorContext(ctx, "failed to save migrated scenario", slog.Any("error", err))
		} else {
			log.Ctx(ctx).InfoContext(ctx, "saved migrated scenario", slog.String("scenarioID", id))
		}
	}
	return migrated, nil
}

// writeStorageError maps storage and config errors to HTTP responses.
func writeStorageError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, storage.ErrScenarioNotFound):
		writeJSONError(w, "scenario not found", http.StatusNotFound)
	case errors.Is(err, types.ErrUnsupportedVersion), errors.Is(err, types.ErrInvalidConfig):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Ctx(ctx).ErrorContext(ctx, msg, slog.Any("error", err))
		writeJSONError(w, msg, http.StatusInternalServerError)
	}
}

// ScenarioListItem is one entry of the scenario list.
type ScenarioListItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int       `json:"version"`
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stored, err := s.storage.ListScenarios(ctx)
	if err != nil {
		writeStorageError(ctx, w, "failed to list scenarios", err)
		return
	}
	items := make([]ScenarioListItem, 0, len(stored))
	for _, st := range stored {
		items = append(items, ScenarioListItem{
			ID:          st.Config.ID,
			Name:        st.Config.Name,
			Description: st.Config.Description,
			UpdatedAt:   st.Config.UpdatedAt,
			Version:     st.Version,
		})
	}
	writeJSON(ctx, w, items)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, err := s.getScenarioWithMigration(ctx, r.PathValue("id"))
	if err != nil {
		writeStorageError(ctx, w, "failed to get scenario", err)
		return
	}
	writeJSON(ctx, w, sc)
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, ok := decodeScenario(w, r)
	if !ok {
		return
	}
	now := s.now().UTC()
	sc.ID = s.newID()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	if err := s.storage.SaveScenario(ctx, sc, types.CurrentScenarioVersion); err != nil {
		writeStorageError(ctx, w, "failed to save scenario", err)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "created scenario", slog.String("scenarioID", sc.ID))
	w.WriteHeader(http.StatusCreated)
	writeJSON(ctx, w, sc)
}

func (s *Server) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	existing, err := s.storage.GetScenario(ctx, id)
	if err != nil {
		writeStorageError(ctx, w, "failed to get scenario", err)
		return
	}
	sc, ok := decodeScenario(w, r)
	if !ok {
		return
	}
	sc.ID = id
	sc.CreatedAt = existing.Config.CreatedAt
	sc.UpdatedAt = s.now().UTC()
	if err := s.storage.SaveScenario(ctx, sc, types.CurrentScenarioVersion); err != nil {
		writeStorageError(ctx, w, "failed to save scenario", err)
		return
	}
	writeJSON(ctx, w, sc)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.storage.DeleteScenario(ctx, r.PathValue("id")); err != nil {
		writeStorageError(ctx, w, "failed to delete scenario", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, err := s.getScenarioWithMigration(ctx, r.PathValue("id"))
	if err != nil {
		writeStorageError(ctx, w, "failed to get scenario", err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="scenario-%s.json"`, sc.ID))
	writeJSON(ctx, w, types.ScenarioExport{
		Version:    types.CurrentScenarioVersion,
		ExportedAt: s.now().UTC(),
		Config:     sc,
	})
}

// handleImportScenario stores an exported scenario under a new id. Older
// export versions are migrated first.
func (s *Server) handleImportScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var export types.ScenarioExport
	if !decodeJSON(w, r, &export) {
		return
	}
	sc, _, err := types.MigrateScenario(export.Config, export.Version)
	if err != nil {
		writeStorageError(ctx, w, "failed to migrate scenario", err)
		return
	}
	if err := sc.Validate(); err != nil {
		writeStorageError(ctx, w, "invalid scenario", err)
		return
	}

	now := s.now().UTC()
	sc.ID = s.newID()
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = now
	}
	sc.UpdatedAt = now
	if err := s.storage.SaveScenario(ctx, sc, types.CurrentScenarioVersion); err != nil {
		writeStorageError(ctx, w, "failed to save scenario", err)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "imported scenario", slog.String("scenarioID", sc.ID), slog.Int("fromVersion", export.Version))
	w.WriteHeader(http.StatusCreated)
	writeJSON(ctx, w, sc)
}
