package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sreenuraj/postqode-nexus/api/controllers"
	"github.com/Sreenuraj/postqode-nexus/api/middleware"
	"github.com/Sreenuraj/postqode-nexus/internal/activity"
	"github.com/Sreenuraj/postqode-nexus/internal/auth"
	"github.com/Sreenuraj/postqode-nexus/internal/inventory"
	"github.com/Sreenuraj/postqode-nexus/internal/orders"
	products "github.com/Sreenuraj/postqode-nexus/internal/products"
	"github.com/Sreenuraj/postqode-nexus/pkg/auth/session"
	"github.com/Sreenuraj/postqode-nexus/pkg/config"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	"github.com/Sreenuraj/postqode-nexus/pkg/logger"
	"github.com/Sreenuraj/postqode-nexus/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router needs. cmd/api builds one of these from
// the wired services.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Sessions sessionManager

	AuthService      auth.Service
	RegisterService  auth.Registrar
	ProductService   products.Service
	OrderService     orders.Service
	InventoryService inventory.Service
	ActivityService  activity.Service

	MetricsRegistry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// Keep the interface nil when no client is wired so the idempotency
	// middleware can detect the absence and pass through.
	var idemStore redis.IdempotencyStore
	var cachePinger controllers.Pinger
	if deps.Redis != nil {
		idemStore = deps.Redis
		cachePinger = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cachePinger, logg))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.Idempotency(idemStore, logg)).
			Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Sessions, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.ProductService, logg))

			// Catalog mutations are admin-only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
				r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
				r.Patch("/{productID}", controllers.UpdateProduct(deps.ProductService, logg))
				r.Delete("/{productID}", controllers.DeleteProduct(deps.ProductService, logg))
				r.Patch("/{productID}/status", controllers.UpdateProductStatus(deps.ProductService, logg))
				r.Post("/{productID}/stock", controllers.AdjustStock(deps.ProductService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrderService, logg))
			r.Post("/", controllers.CreateOrder(deps.OrderService, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.OrderService, logg))
			r.Post("/{orderID}/cancel", controllers.CancelOrder(deps.OrderService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
				r.Post("/{orderID}/approve", controllers.ApproveOrder(deps.OrderService, logg))
				r.Post("/{orderID}/reject", controllers.RejectOrder(deps.OrderService, logg))
			})
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(deps.InventoryService, logg))
			r.Post("/", controllers.AddInventoryEntry(deps.InventoryService, logg))
			r.Patch("/{entryID}", controllers.UpdateInventoryEntry(deps.InventoryService, logg))
			r.Delete("/{entryID}", controllers.DeleteInventoryEntry(deps.InventoryService, logg))
			r.Post("/{entryID}/consume", controllers.ConsumeInventory(deps.InventoryService, logg))
		})

		r.Route("/activity", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Get("/", controllers.ListActivity(deps.ActivityService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Get("/ping", controllers.AdminPing())
	})

	return r
}
