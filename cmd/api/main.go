package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/instiprop/instiprop-api/internal/config"
	"github.com/instiprop/instiprop-api/internal/domain/analytics"
	"github.com/instiprop/instiprop-api/internal/domain/auth"
	"github.com/instiprop/instiprop-api/internal/domain/permission"
	"github.com/instiprop/instiprop-api/internal/domain/profile"
	"github.com/instiprop/instiprop-api/internal/domain/property"
	"github.com/instiprop/instiprop-api/internal/domain/score"
	"github.com/instiprop/instiprop-api/internal/domain/user"
	"github.com/instiprop/instiprop-api/internal/middleware"
	"github.com/instiprop/instiprop-api/internal/pkg/database"
	"github.com/instiprop/instiprop-api/internal/pkg/jwt"
	pkgresponse "github.com/instiprop/instiprop-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting InstiProp API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	scoreRepo := score.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	permissionRepo := permission.NewRepository(db)
	propertyRepo := property.NewRepository(db)
	analyticsRepo := analytics.NewRepository(db)

	// ---------- Services ----------
	scoreService := score.NewService(scoreRepo)
	permissionService := permission.NewService(permissionRepo, userRepo, redis)
	profileService := profile.NewService(profileRepo, userRepo, scoreService)
	authService := auth.NewService(userRepo, permissionService, scoreService, jwtService, redis)
	propertyService := property.NewService(propertyRepo)
	analyticsService := analytics.NewService(analyticsRepo, propertyRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	scoreHandler := score.NewHandler(scoreService, userRepo)
	profileHandler := profile.NewHandler(profileService)
	permissionHandler := permission.NewHandler(permissionService, userRepo)
	propertyHandler := property.NewHandler(propertyService)
	analyticsHandler := analytics.NewHandler(analyticsService)

	authMiddleware := middleware.Auth(jwtService, &userAccountSource{repo: userRepo})

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", authHandler.Routes(authMiddleware))

		r.Route("/profile", func(r chi.Router) {
			r.Mount("/me", profileHandler.Routes(authMiddleware))
			r.Mount("/score", scoreHandler.Routes(authMiddleware))
			r.Mount("/", permissionHandler.Routes(authMiddleware))
		})

		propertyRoutes := propertyHandler.Routes(authMiddleware)
		analyticsHandler.Mount(propertyRoutes, authMiddleware)
		r.Mount("/property", propertyRoutes)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

// userAccountSource adapts user.Repository to middleware.AccountSource
type userAccountSource struct {
	repo user.Repository
}

func (s *userAccountSource) AccountByID(ctx context.Context, id uuid.UUID) (*middleware.Account, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &middleware.Account{
		UniqueID:  u.UniqueID,
		Role:      u.RoleName,
		Suspended: u.IsSuspended(),
		Verified:  u.Verified,
	}, nil
}
