package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liquorcabinet/backend/api/controllers"
	"github.com/liquorcabinet/backend/api/middleware"
	"github.com/liquorcabinet/backend/internal/auth"
	"github.com/liquorcabinet/backend/internal/bottles"
	"github.com/liquorcabinet/backend/internal/identify"
	"github.com/liquorcabinet/backend/internal/recipes"
	"github.com/liquorcabinet/backend/pkg/auth/session"
	"github.com/liquorcabinet/backend/pkg/config"
	"github.com/liquorcabinet/backend/pkg/db"
	"github.com/liquorcabinet/backend/pkg/logger"
	"github.com/liquorcabinet/backend/pkg/redis"
)

// Deps bundles everything the route tree needs. Nil entries degrade to 500s
// on the affected endpoints rather than panics.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker

	Auth     auth.Service
	Bottles  bottles.Service
	Identify *identify.Service
	Recipes  recipes.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.CORS(d.Config.App.CORSOrigins),
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.DB, d.Redis))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.Auth, d.Logger))
		r.Post("/login", controllers.AuthLogin(d.Auth, d.Logger))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, d.Logger))
		r.Post("/logout", controllers.AuthLogout(d.Auth, d.Config.JWT, d.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Config.JWT, d.Sessions, d.Logger))

		r.Route("/bottles", func(r chi.Router) {
			r.Post("/", controllers.BottleAdd(d.Bottles, d.Logger))
			r.Get("/", controllers.BottleList(d.Bottles, d.Logger))
			r.Route("/{bottleId}", func(r chi.Router) {
				r.Get("/", controllers.BottleGet(d.Bottles, d.Logger))
				r.Put("/", controllers.BottleUpdate(d.Bottles, d.Logger))
				r.Delete("/", controllers.BottleDelete(d.Bottles, d.Logger))
				r.Post("/finish", controllers.BottleFinish(d.Bottles, d.Logger))
				r.Get("/events", controllers.BottleEvents(d.Bottles, d.Logger))
			})
		})

		r.Get("/stats", controllers.StatsFetch(d.Bottles, d.Logger))
		r.Post("/identify", controllers.IdentifyBottle(d.Identify, d.Logger))

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", controllers.RecipeSuggestions(d.Recipes, d.Logger))
			r.Post("/search", controllers.RecipeSearch(d.Recipes, d.Logger))
		})
	})

	return r
}
