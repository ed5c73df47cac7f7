package server

import (
	"log/slog"
	"net/http"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/scenario"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/utility"
)

// decodeScenario reads a scenario config from the body and validates it.
func decodeScenario(w http.ResponseWriter, r *http.Request) (types.ScenarioConfig, bool) {
	sc := types.DefaultScenarioConfig()
	if !decodeJSON(w, r, &sc) {
		return sc, false
	}
	if err := sc.Validate(); err != nil {
		log.Ctx(r.Context()).WarnContext(r.Context(), "invalid scenario", slog.Any("error", err))
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return sc, false
	}
	return sc, true
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	sc, ok := decodeScenario(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, s.calculator.Calculate(r.Context(), sc))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	sc, ok := decodeScenario(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, scenario.Compare(sc))
}

// handleTariff returns today's 24 hourly grid and export prices for the
// scenario's rates and TOU windows.
func (s *Server) handleTariff(w http.ResponseWriter, r *http.Request) {
	sc, ok := decodeScenario(w, r)
	if !ok {
		return
	}
	tariff := utility.NewTariff(sc.Energy, sc.Optimizer)
	writeJSON(r.Context(), w, tariff.Schedule(s.now()))
}

type breakEvenRequest struct {
	TotalInvestment float64 `json:"totalInvestment"`
	MonthlyProfit   float64 `json:"monthlyProfit"`
}

func (s *Server) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	var req breakEvenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TotalInvestment < 0 {
		writeJSONError(w, "totalInvestment must not be negative", http.StatusBadRequest)
		return
	}
	writeJSON(r.Context(), w, scenario.BreakEven(req.TotalInvestment, req.MonthlyProfit))
}

// CatalogsRes is the response type for the static catalogs.
type CatalogsRes struct {
	Vehicles          []types.Vehicle                           `json:"vehicles"`
	Batteries         []types.BatteryUnit                       `json:"batteries"`
	ASICMiners        []types.ASICMiner                         `json:"asicMiners"`
	GPUMiners         []types.GPUMiner                          `json:"gpuMiners"`
	Coins             []types.CoinInfo                          `json:"coins"`
	Cooling           map[types.CoolingType]types.CoolingPreset `json:"cooling"`
	HumanoidPlatforms []types.HumanoidPlatform                  `json:"humanoidPlatforms"`
	Tasks             []types.TaskDefinition                    `json:"tasks"`
	SolarRegions      map[string]float64                        `json:"solarRegions"`
	Defaults          types.ScenarioConfig                      `json:"defaults"`
}

func (s *Server) handleCatalogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, CatalogsRes{
		Vehicles:          types.VehicleCatalog,
		Batteries:         types.BatteryPresets,
		ASICMiners:        types.ASICMiners,
		GPUMiners:         types.GPUMiners,
		Coins:             types.SupportedCoins,
		Cooling:           types.CoolingPresets,
		HumanoidPlatforms: types.HumanoidPlatforms,
		Tasks:             types.TaskDefinitions,
		SolarRegions:      types.RegionalSolarFactors,
		Defaults:          types.DefaultScenarioConfig(),
	})
}
