package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/masstransitco/mtc-toys/api/controllers"
	webhookcontrollers "github.com/masstransitco/mtc-toys/api/controllers/webhooks"
	"github.com/masstransitco/mtc-toys/api/middleware"
	addresssvc "github.com/masstransitco/mtc-toys/internal/address"
	cartsvc "github.com/masstransitco/mtc-toys/internal/cart"
	checkoutsvc "github.com/masstransitco/mtc-toys/internal/checkout"
	ordersvc "github.com/masstransitco/mtc-toys/internal/orders"
	subscribersvc "github.com/masstransitco/mtc-toys/internal/subscribers"
	stripewebhook "github.com/masstransitco/mtc-toys/internal/webhooks/stripe"
	"github.com/masstransitco/mtc-toys/pkg/config"
	"github.com/masstransitco/mtc-toys/pkg/db"
	"github.com/masstransitco/mtc-toys/pkg/logger"
	"github.com/masstransitco/mtc-toys/pkg/metrics"
	"github.com/masstransitco/mtc-toys/pkg/redis"
	"github.com/masstransitco/mtc-toys/pkg/stripe"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	// Registry backs GET /metrics; nil disables the endpoint.
	Registry *prometheus.Registry

	Cart        cartsvc.Service
	Checkout    checkoutsvc.Service
	Orders      ordersvc.Service
	Addresses   addresssvc.Service
	Subscribers subscribersvc.Service

	StripeClient *stripe.Client
	Webhooks     *stripewebhook.Service
	WebhookGuard *stripewebhook.IdempotencyGuard
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Site.PublicURL),
		middleware.Metrics(p.Metrics),
	)

	subscribePolicy := middleware.NewRateLimitPolicy(
		"subscribe",
		cfg.RateLimit.SubscribeWindow,
		cfg.RateLimit.SubscribeLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": p.DB,
			"redis":    p.Redis,
		}))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(logg))
		r.Get("/products/{productId}", controllers.GetProduct(logg))
		r.With(middleware.RateLimit(subscribePolicy, p.Redis, logg)).
			Post("/subscribe", controllers.Subscribe(p.Subscribers, logg))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(p.Webhooks, p.StripeClient, p.WebhookGuard, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(p.Cart, logg))
			r.Delete("/", controllers.ClearCart(p.Cart, logg))
			r.Post("/items", controllers.AddCartItem(p.Cart, logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(p.Cart, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(p.Cart, logg))
		})

		r.Post("/checkout", controllers.CreateCheckout(p.Checkout, p.Cart, logg))
		r.Get("/checkout/session/{sessionId}", controllers.GetCheckoutSession(p.Orders, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(p.Orders, logg))
			r.Get("/{orderId}", controllers.GetMyOrder(p.Orders, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.ListAddresses(p.Addresses, logg))
			r.Post("/", controllers.CreateAddress(p.Addresses, logg))
			r.Put("/{addressId}", controllers.UpdateAddress(p.Addresses, logg))
			r.Delete("/{addressId}", controllers.DeleteAddress(p.Addresses, logg))
			r.Post("/{addressId}/default", controllers.SetDefaultAddress(p.Addresses, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.AdminOnly(cfg.Admin, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(p.Orders, logg))
			r.Get("/{orderId}", controllers.AdminGetOrder(p.Orders, logg))
			r.Post("/{orderId}/status", controllers.AdminUpdateOrderStatus(p.Orders, logg))
		})
	})

	return r
}
