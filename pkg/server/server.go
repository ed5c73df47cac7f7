package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/websocket"
	"github.com/levenlabs/go-lflag"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/market"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/scenario"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/storage"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/types"
)

const (
	authTokenCookie = "auth_token"

	// maxBodyBytes limits request bodies to 1MB.
	maxBodyBytes = 1 << 20
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// tokenVerifier is a function that validates a Google or Apple ID Token.
type tokenVerifier func(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)

// marketSource is the subset of market.Client the API exposes.
type marketSource interface {
	MarketData(ctx context.Context) types.MarketData
	Prices(ctx context.Context) market.Prices
	Network(ctx context.Context) market.Network
	SolarEstimate(ctx context.Context, r market.SolarRequest) (types.SolarEstimate, error)
}

// Server handles the HTTP API for scenario calculation, persistence and
// market data.
type Server struct {
	storage    storage.Database
	market     marketSource
	calculator *scenario.Calculator

	listenAddr string
	httpServer *http.Server

	oidcAudiences map[string]string
	oidcVerifiers map[string]tokenVerifier
	bypassAuth    bool
	serverName    string
	now           func() time.Time
	newID         func() string

	streamInterval time.Duration
	upgrader       websocket.Upgrader
	streamClients  sync.Map
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(s storage.Database, m *market.Client) *Server {
	srv := newServer(s, m)
	revision := os.Getenv("K_REVISION")
	if revision != "" {
		srv.serverName = revision
	}

	// get the port from PORT when running in cloud run
	port := os.Getenv("PORT")
	if port == "" {
		// otherwise default to 8080
		port = "8080"
	}

	listenAddr := lflag.String("listen-addr", ":"+port, "HTTP server listen address")
	oidcAudiences := map[string]string{}
	lflag.JSON(&oidcAudiences, "oidc-audiences", oidcAudiences, "JSON map of provider (google/apple) to audience/client ID")
	bypassAuth := lflag.Bool("bypass-auth", false, "Allow scenario writes without an ID token (local development only)")
	refresh := lflag.Duration("market-refresh-interval", 30*time.Second, "How often live market data is pushed to stream clients")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		srv.bypassAuth = *bypassAuth
		srv.streamInterval = *refresh

		if len(oidcAudiences) > 0 {
			srv.oidcAudiences = oidcAudiences
			srv.oidcVerifiers = make(map[string]tokenVerifier, len(oidcAudiences))
			for n, a := range oidcAudiences {
				var issuer string
				switch n {
				case "google":
					issuer = "https://accounts.google.com"
				case "apple":
					issuer = "https://appleid.apple.com"
				default:
					log.Ctx(context.Background()).Error("unsupported oidc audience client", slog.String("client", n))
					os.Exit(1)
				}
				provider, err := oidc.NewProvider(context.Background(), issuer)
				if err != nil {
					log.Ctx(context.Background()).Error("failed to initialize OIDC provider", slog.String("client", n), slog.Any("error", err))
					os.Exit(1)
				}
				srv.oidcVerifiers[n] = provider.Verifier(&oidc.Config{ClientID: a}).Verify
			}
		} else if !srv.bypassAuth {
			log.Ctx(context.Background()).Warn("no oidc audiences configured, scenario writes are disabled")
		}
	})

	return srv
}

func newServer(s storage.Database, m marketSource) *Server {
	return &Server{
		storage:        s,
		market:         m,
		calculator:     scenario.NewCalculator(scenario.WithMarket(m)),
		serverName:     "hypertuner",
		now:            time.Now,
		newID:          newScenarioID,
		streamInterval: 30 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/calculate", s.handleCalculate)
	apiMux.HandleFunc("POST /api/compare", s.handleCompare)
	apiMux.HandleFunc("POST /api/break-even", s.handleBreakEven)
	apiMux.HandleFunc("POST /api/tariff", s.handleTariff)
	apiMux.HandleFunc("GET /api/catalogs", s.handleCatalogs)

	apiMux.HandleFunc("GET /api/scenarios", s.handleListScenarios)
	apiMux.HandleFunc("GET /api/scenarios/{id}", s.handleGetScenario)
	apiMux.HandleFunc("GET /api/scenarios/{id}/export", s.handleExportScenario)
	apiMux.Handle("POST /api/scenarios", s.requireUser(http.HandlerFunc(s.handleCreateScenario)))
	apiMux.Handle("PUT /api/scenarios/{id}", s.requireUser(http.HandlerFunc(s.handleUpdateScenario)))
	apiMux.Handle("DELETE /api/scenarios/{id}", s.requireUser(http.HandlerFunc(s.handleDeleteScenario)))
	apiMux.Handle("POST /api/scenarios/import", s.requireUser(http.HandlerFunc(s.handleImportScenario)))

	apiMux.HandleFunc("GET /api/market/prices", s.handleMarketPrices)
	apiMux.HandleFunc("GET /api/market/network", s.handleMarketNetwork)
	apiMux.HandleFunc("POST /api/market/solar-estimate", s.handleSolarEstimate)

	apiMux.HandleFunc("GET /api/auth/status", s.handleAuthStatus)
	apiMux.HandleFunc("POST /api/auth/login", s.handleLogin)
	apiMux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.authMiddleware(apiMux))
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	// websocket upgrades must not go through the gzip writer
	stream := http.NewServeMux()
	stream.HandleFunc("GET /api/market/stream", s.handleMarketStream)
	stream.Handle("/", gziphandler.GzipHandler(s.apiSecurityHeaders(mux)))
	return s.revisionMiddleware(stream)
}

// Run starts the HTTP server and blocks until the context is canceled or an error occurs.
// It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go s.broadcastMarket(ctx)

	// use a channel to capturing server errors
	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		// Context canceled, shut down gracefully
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		s.closeStreamClients()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to encode response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		slog.Warn("failed to write error response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

// decodeJSON reads a size limited JSON body into v. It writes the error
// response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Ctx(r.Context()).WarnContext(r.Context(), "invalid request body", slog.Any("error", err))
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) revisionMiddleware(next http.Handler) http.Handler {
	if s.serverName == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}
