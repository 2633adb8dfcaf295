package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/fcors"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/homebase/internal/adapter/fsm"
	handler "github.com/neomorfeo/homebase/internal/adapter/http"
	telemetry "github.com/neomorfeo/homebase/internal/adapter/otel"
	riveradapter "github.com/neomorfeo/homebase/internal/adapter/river"
	"github.com/neomorfeo/homebase/internal/adapter/sqlite"
	"github.com/neomorfeo/homebase/internal/app"
	"github.com/neomorfeo/homebase/internal/config"
	"github.com/neomorfeo/homebase/internal/domain"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	// --- Telemetry ---
	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := telemetry.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	queue, err := riveradapter.Setup(ctx, db, store.Audit())
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := queue.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.Stop(stopCtx); err != nil {
			log.Printf("river stop: %v", err)
		}
	}()

	router, err := newRouter(cfg, store, riveradapter.NewPublisher(queue))
	if err != nil {
		return err
	}

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("homebase listening on :%s", cfg.Port)
		log.Printf("API docs: http://localhost:%s/docs", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-sigCtx.Done():
	}
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("stopped")
	return nil
}

// newRouter wires the application services behind the HTTP API.
func newRouter(cfg config.Config, store *sqlite.Store, publisher domain.EventPublisher) (http.Handler, error) {
	properties := telemetry.NewTracingPropertyRepository(store.Properties())
	listings := telemetry.NewTracingListingRepository(store.Listings())
	tracedPublisher := telemetry.NewTracingPublisher(publisher)

	// --- Application ---
	wf := app.NewWorkflow(app.Deps{
		Properties:      properties,
		Listings:        listings,
		Publisher:       tracedPublisher,
		PropertyMachine: fsm.NewPropertyMachine(),
		ListingMachine:  fsm.NewListingMachine(),
	})
	registry := app.NewAttachmentRegistry()
	app.RegisterWorkflowResolvers(registry, wf)

	services := handler.Services{
		Workflow:  wf,
		Documents: app.NewDocumentService(store.Documents(), registry, tracedPublisher, domain.SystemClock{}),
		Dashboard: app.NewDashboard(properties, listings, cfg.StatsTTL),
		Audit:     app.NewAuditTrail(store.Audit()),
	}

	cors, err := newCORS(cfg.CORSOrigins)
	if err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(otelchi.Middleware(cfg.Telemetry.ServiceName, otelchi.WithChiRoutes(router)))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.DB().PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	api := humachi.New(router, huma.DefaultConfig("homebase", version))
	handler.Register(api, handler.NewAuthenticator(cfg.JWTSecret), services)

	return router, nil
}

func newCORS(origins []string) (func(http.Handler) http.Handler, error) {
	methods := fcors.WithMethods(
		http.MethodGet,
		http.MethodPost,
		http.MethodPatch,
		http.MethodDelete,
	)
	headers := fcors.WithRequestHeaders("Authorization", "Content-Type")

	if len(origins) == 0 {
		return fcors.AllowAccess(fcors.FromAnyOrigin(), methods, headers)
	}
	return fcors.AllowAccess(fcors.FromOrigins(origins[0], origins[1:]...), methods, headers)
}
