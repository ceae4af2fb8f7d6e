package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arogya-backend/internal/appointments"
	"arogya-backend/internal/auth"
	"arogya-backend/internal/cache"
	"arogya-backend/internal/config"
	"arogya-backend/internal/db"
	"arogya-backend/internal/feedback"
	"arogya-backend/internal/handlers"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/middleware"
	"arogya-backend/internal/notifications"
	"arogya-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "arogya-backend",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	bookingLedger := ledger.NewMongo(cols.Bookings)
	val := validation.New()

	server := &handlers.Server{
		Cfg:    cfg,
		Cols:   cols,
		Val:    val,
		Log:    logger,
		Cache:  cacheStore,
		Ledger: bookingLedger,
		JWT:    jwtManager,
	}

	apptRepo := appointments.NewRepository(cols.Appointments)
	apptService := appointments.NewService(apptRepo, bookingLedger, cfg.Timezone, mailerOrNil(mailer))
	apptHandler := appointments.NewHandler(apptService, val, cacheStore, logger)

	feedbackRepo := feedback.NewRepository(cols.Feedback)
	feedbackService := feedback.NewService(feedbackRepo, cfg.Timezone)
	feedbackHandler := feedback.NewHandler(feedbackService, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	bookingLimiter := middleware.NewRateLimiter(cfg.RateLimitBookings, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	feedbackLimiter := middleware.NewRateLimiter(cfg.RateLimitFeedback, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api", func(api chi.Router) {
		api.Get("/locations/states", server.ListStates)
		api.Get("/locations/states/{state}/districts", server.ListDistricts)
		api.Get("/locations/districts/{district}/areas", server.ListAreas)
		api.Get("/locations/coordinates", server.GetCoordinates)

		api.Get("/specialties", server.ListSpecialties)
		api.Get("/doctors", server.ListDoctors)
		api.Get("/doctors/{id}/slots", server.GetDoctorSlots)
		api.Post("/symptoms/analyze", server.AnalyzeSymptoms)

		api.With(bookingLimiter.Middleware).Post("/appointments", apptHandler.Create)
		api.With(bookingLimiter.Middleware).Post("/appointments/emergency", apptHandler.CreateEmergency)
		api.Post("/appointments/lookup", apptHandler.Lookup)
		api.Get("/appointments/{id}", apptHandler.GetByID)

		api.With(feedbackLimiter.Middleware).Post("/feedback", feedbackHandler.Create)

		api.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", server.AdminLogin)
			admin.Post("/refresh", server.AdminRefresh)
			admin.Post("/logout", server.AdminLogout)

			// Important (chi): middlewares must be attached before defining routes.
			// Login/refresh/logout stay public; the rest goes through a sub-router.
			admin.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))
				protected.Get("/appointments", apptHandler.AdminList)
				protected.Get("/feedback", feedbackHandler.AdminList)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}

// mailerOrNil keeps a typed-nil *BrevoClient from masquerading as a working
// Mailer behind the interface.
func mailerOrNil(c *notifications.BrevoClient) appointments.Mailer {
	if c == nil {
		return nil
	}
	return c
}
