package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/inventory-dashboard-api/internal/application/auth"
	"github.com/inventory-dashboard-api/internal/application/product"
	"github.com/inventory-dashboard-api/internal/config"
	"github.com/inventory-dashboard-api/internal/transport/http/handler"
	appmiddleware "github.com/inventory-dashboard-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the OTP endpoints, which
	// trigger outbound email.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		OTPRepo:  deps.OTPRepo,
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
		Bus:      deps.Bus,
	})
	productSvc := product.NewService(deps.ProductSource)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	dashboardH := handler.NewDashboardHandler(productSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)
		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.Get("/products", productH.List)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Session())

			r.Get("/auth/me", authH.Me)
			r.Get("/dashboard/products", dashboardH.Table)
			r.Get("/dashboard/analytics", dashboardH.Analytics)
			r.Get("/dashboard/stats", dashboardH.Stats)
		})
	})

	return r
}
