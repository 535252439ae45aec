package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/liquorcabinet/backend/api/routes"
	"github.com/liquorcabinet/backend/internal/auth"
	"github.com/liquorcabinet/backend/internal/bottles"
	"github.com/liquorcabinet/backend/internal/identify"
	"github.com/liquorcabinet/backend/internal/recipes"
	"github.com/liquorcabinet/backend/internal/users"
	"github.com/liquorcabinet/backend/pkg/ai"
	"github.com/liquorcabinet/backend/pkg/auth/session"
	"github.com/liquorcabinet/backend/pkg/cocktaildb"
	"github.com/liquorcabinet/backend/pkg/config"
	"github.com/liquorcabinet/backend/pkg/db"
	"github.com/liquorcabinet/backend/pkg/db/models"
	"github.com/liquorcabinet/backend/pkg/logger"
	"github.com/liquorcabinet/backend/pkg/migrate"
	"github.com/liquorcabinet/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.UseSQLite {
		if err := dbClient.DB().AutoMigrate(&models.User{}, &models.Bottle{}, &models.InventoryEvent{}); err != nil {
			logg.Error(context.Background(), "failed to migrate sqlite schema", err)
			os.Exit(1)
		}
	} else if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	bottleService, err := bottles.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create bottle service", err)
		os.Exit(1)
	}

	aiClient, err := ai.NewClient(cfg.Anthropic)
	if err != nil {
		logg.Error(context.Background(), "failed to create anthropic client", err)
		os.Exit(1)
	}

	identifyService, err := identify.NewService(aiClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create identify service", err)
		os.Exit(1)
	}

	cocktailClient := cocktaildb.NewClient()
	if cfg.CocktailDB.BaseURL != "" {
		cocktailClient = cocktaildb.NewClient(cocktaildb.WithBaseURL(cfg.CocktailDB.BaseURL))
	}

	recipeService, err := recipes.NewService(recipes.ServiceParams{
		Inventory: bottles.NewRepository(dbClient.DB()),
		AI:        aiClient,
		Images:    cocktailClient,
		Config:    cfg.Recipes,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create recipe service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,
			Auth:     authService,
			Bottles:  bottleService,
			Identify: identifyService,
			Recipes:  recipeService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
