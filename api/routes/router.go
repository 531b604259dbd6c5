package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dishpatch/dishpatch-backend/api/controllers"
	cartcontrollers "github.com/dishpatch/dishpatch-backend/api/controllers/cart"
	"github.com/dishpatch/dishpatch-backend/api/middleware"
	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	"github.com/dishpatch/dishpatch-backend/pkg/config"
	"github.com/dishpatch/dishpatch-backend/pkg/logger"
	"github.com/dishpatch/dishpatch-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient redis.Pinger,
	cartService cartsvc.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Get("/", cartcontrollers.Hydrate(cartService, logg))
		r.Delete("/", cartcontrollers.Clear(cartService, logg))
		r.Post("/items", cartcontrollers.AddItem(cartService, logg))
		r.Patch("/items", cartcontrollers.UpdateQuantity(cartService, logg))
		r.Delete("/items", cartcontrollers.RemoveItem(cartService, logg))
		r.Post("/location", cartcontrollers.SetLocation(cartService, logg))
	})

	return r
}
