package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harithahub/storefront-backend/api/controllers"
	"github.com/harithahub/storefront-backend/api/middleware"
	"github.com/harithahub/storefront-backend/internal/accounts"
	"github.com/harithahub/storefront-backend/internal/catalog"
	"github.com/harithahub/storefront-backend/internal/orders"
	"github.com/harithahub/storefront-backend/internal/videos"
	"github.com/harithahub/storefront-backend/pkg/config"
	"github.com/harithahub/storefront-backend/pkg/db"
	"github.com/harithahub/storefront-backend/pkg/logger"
	"github.com/harithahub/storefront-backend/pkg/metrics"
	"github.com/harithahub/storefront-backend/pkg/redis"
	"github.com/harithahub/storefront-backend/pkg/storage"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	store *storage.LocalStore,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	accountsService accounts.Service,
	catalogService catalog.Service,
	ordersService orders.Service,
	videosService videos.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	if store != nil {
		r.Handle(cfg.Media.PublicPrefix+"/*", store.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(accountsService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(accountsService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(catalogService, logg))
		r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
		r.Post("/", controllers.ProductCreate(catalogService, cfg.Media, logg))
		r.Delete("/{productId}", controllers.ProductDelete(catalogService, logg))
	})

	r.Route("/api/v1/videos", func(r chi.Router) {
		r.Get("/", controllers.VideoList(videosService, logg))
		r.Post("/", controllers.VideoCreate(videosService, cfg.Media, logg))
		r.Delete("/{videoId}", controllers.VideoDelete(videosService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/api/v1/users/me", func(r chi.Router) {
			r.Put("/", controllers.ProfileUpdate(accountsService, logg))
			r.Delete("/", controllers.ProfileDelete(accountsService, logg))
		})

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Post("/items", controllers.CartUpsertItem(ordersService, logg))
			r.Post("/sync", controllers.CartSync(ordersService, logg))
			r.Get("/checkout", controllers.CartCheckout(ordersService, logg))
			r.Put("/shipping", controllers.CartShipping(ordersService, logg))
			r.Put("/payment", controllers.CartPayment(ordersService, logg))
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Post("/confirm", controllers.OrderConfirm(ordersService, logg))
		})
	})

	return r
}
