// Package server wires the feature services into the HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/fairsplit/docs" // registers swagger docs
	"github.com/fkhayef/fairsplit/internal/activity"
	"github.com/fkhayef/fairsplit/internal/adjustment"
	"github.com/fkhayef/fairsplit/internal/auth"
	"github.com/fkhayef/fairsplit/internal/config"
	"github.com/fkhayef/fairsplit/internal/expense"
	"github.com/fkhayef/fairsplit/internal/expense/split"
	"github.com/fkhayef/fairsplit/internal/group"
	"github.com/fkhayef/fairsplit/internal/metrics"
	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/policy"
	"github.com/fkhayef/fairsplit/internal/settlement"
	"github.com/fkhayef/fairsplit/internal/storage"
	"github.com/fkhayef/fairsplit/internal/storage/memory"
	"github.com/fkhayef/fairsplit/internal/storage/sqlstore"
	"github.com/fkhayef/fairsplit/internal/user"
	mw "github.com/fkhayef/fairsplit/pkg/middleware"
	"github.com/fkhayef/fairsplit/pkg/response"
)

// resetter is implemented by stores that can return to the demo fixture.
type resetter interface {
	Reset(ctx context.Context) error
}

// OpenStore opens the backend selected by cfg, seeding the demo group into
// empty SQL databases when asked to.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)

	switch cfg.Driver {
	case "memory":
		if !cfg.SeedDemo {
			return memory.New(), nil
		}
		demo, err := memory.NewDemo(ctx)
		if err != nil {
			return nil, err
		}
		return demo, nil
	case "postgres":
		store, err = sqlstore.OpenPostgres(ctx, cfg.DatabaseURL)
	case "sqlite":
		store, err = sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, errors.New("unknown store driver: " + cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SeedDemo {
		if _, err := store.GetGroup(ctx, storage.DemoGroupID); errors.Is(err, models.ErrNotFound) {
			if err := storage.SeedDemo(ctx, store); err != nil {
				store.Close()
				return nil, err
			}
			slog.Info("demo data seeded", "driver", cfg.Driver)
		}
	}
	return store, nil
}

// IntentBuilder returns the payment intent settings from cfg.
func IntentBuilder(cfg config.PaymentsConfig) settlement.IntentBuilder {
	return settlement.IntentBuilder{
		Scheme:   cfg.Scheme,
		Currency: cfg.Currency,
		Memo:     cfg.Memo,
		Format:   settlement.IntentFormat(cfg.IntentFormat),
	}
}

// NewRouter builds the full HTTP API on top of store. m may be nil.
func NewRouter(cfg *config.Config, store storage.Store, m *metrics.Metrics) http.Handler {
	authz := policy.NewAuthorizer(store)

	// User feature
	userService := user.NewService(store,
		auth.NewOTPManager(cfg.Auth.OTPCode, cfg.Auth.OTPTTL),
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	userHandler := user.NewHandler(userService)

	// Group feature and the features nested under a group
	groupHandler := group.NewHandler(group.NewService(store, authz))
	expenseHandler := expense.NewHandler(expense.NewService(store, authz, split.NewFactory(), m))
	adjustmentHandler := adjustment.NewHandler(adjustment.NewService(store, authz))
	settlementHandler := settlement.NewHandler(settlement.NewService(store, authz, IntentBuilder(cfg.Payments), m))
	activityHandler := activity.NewHandler(activity.NewService(store, authz))

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS)
	if m != nil {
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		if rs, ok := store.(resetter); ok {
			r.Post("/demo/reset", func(w http.ResponseWriter, r *http.Request) {
				if err := rs.Reset(r.Context()); err != nil {
					response.InternalError(w, "Failed to reset demo data")
					return
				}
				response.JSONWithMessage(w, http.StatusOK, nil, "Demo data reset")
			})
		}

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(userService.ValidateToken, cfg.Server.AllowTestUser))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes(
				expenseHandler.Register,
				adjustmentHandler.Register,
				settlementHandler.Register,
				activityHandler.Register,
			))
		})
	})

	return r
}

// Run serves h on port until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, port string, h http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", srv.Addr, "url", "http://localhost"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
