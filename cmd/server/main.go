package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/atelierhq/studio-api/internal/config"
	"github.com/atelierhq/studio-api/internal/database"
	"github.com/atelierhq/studio-api/internal/handler"
	"github.com/atelierhq/studio-api/internal/httputil"
	"github.com/atelierhq/studio-api/internal/jobs"
	"github.com/atelierhq/studio-api/internal/mail"
	"github.com/atelierhq/studio-api/internal/middleware"
	"github.com/atelierhq/studio-api/internal/repository"
	"github.com/atelierhq/studio-api/internal/service"
	"github.com/atelierhq/studio-api/internal/session"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	httputil.SetProductionMode(cfg.IsProduction())

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(pingCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("database unreachable")
	}
	cancel()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("database ready")

	sessionStore := newSessionStore(cfg)

	sender := newMailSender(cfg)
	dispatcher := mail.NewDispatcher(sender, config.MailQueueSize, config.MailSendTimeout)
	dispatcher.Start()
	defer dispatcher.Stop()

	sweeper := jobs.NewSessionSweeper(sessionStore, cfg.SweepInterval())
	sweeper.Start()
	defer sweeper.Stop()

	blogRepo := repository.NewBlogRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	onboardRepo := repository.NewOnboardRepository(db.DB)

	authSvc := service.NewAuthService(
		sessionStore,
		cfg.AdminUsername,
		cfg.AdminPasswordHash,
		cfg.TokenSecret,
		cfg.SessionTTL(),
	)
	blogSvc := service.NewBlogService(blogRepo)
	newsSvc := service.NewNewsService(newsRepo)
	onboardSvc := service.NewOnboardService(onboardRepo, dispatcher)

	router := buildRouter(cfg, db, authSvc, blogSvc, newsSvc, onboardSvc)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerRequestTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Environment).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newSessionStore picks Redis when configured, otherwise an in-process map.
func newSessionStore(cfg *config.Config) session.Store {
	if cfg.RedisURL == "" {
		log.Info().Msg("using in-memory session store")
		return session.NewMemoryStore()
	}

	store, err := session.NewRedisStore(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	log.Info().Msg("using redis session store")
	return store
}

func newMailSender(cfg *config.Config) mail.Sender {
	if cfg.ResendAPIKey == "" {
		log.Info().Msg("mail disabled: no RESEND_API_KEY")
		return mail.NewDiscardSender()
	}
	return mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailInbox)
}

func buildRouter(
	cfg *config.Config,
	db *database.DB,
	authSvc *service.AuthService,
	blogSvc *service.BlogService,
	newsSvc *service.NewsService,
	onboardSvc *service.OnboardService,
) http.Handler {
	authHandler := handler.NewAuthHandler(authSvc)
	blogHandler := handler.NewBlogHandler(blogSvc)
	newsHandler := handler.NewNewsHandler(newsSvc)
	onboardHandler := handler.NewOnboardHandler(onboardSvc)
	healthHandler := handler.NewHealthHandler(db)

	authMw := middleware.NewAuthMiddleware(authSvc)
	bodyLimit := middleware.NewBodyLimitMiddleware(middleware.DefaultMaxBodySize)
	secHeaders := middleware.NewSecurityHeadersMiddleware(cfg.IsProduction())
	loginLimiter := middleware.NewLoginRateLimiter()

	origins := cfg.AllowedOrigins
	if !cfg.IsProduction() {
		origins = append(origins, "http://localhost:3000", "http://localhost:5173")
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(corsHandler.Handler)
	r.Use(secHeaders.Handler)
	r.Use(bodyLimit.Handler)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.With(loginLimiter.Handler).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Post("/onboard", onboardHandler.Submit)

		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/slug/{slug}", blogHandler.GetBySlug)
		r.Get("/blogs/{id}", blogHandler.GetByID)

		r.Get("/news", newsHandler.List)
		r.Get("/news/slug/{slug}", newsHandler.GetBySlug)
		r.Get("/news/{id}", newsHandler.GetByID)

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(authMw.Handler)

			r.Post("/validate-token", authHandler.ValidateToken)
			r.Post("/refresh-session", authHandler.RefreshSession)
			r.Get("/session/status", authHandler.SessionStatus)

			r.Get("/onboard/all", onboardHandler.List)
			r.Patch("/onboard/{id}/approve", onboardHandler.Approve)
			r.Patch("/onboard/{id}/done", onboardHandler.MarkDone)

			r.Post("/blogs", blogHandler.Create)
			r.Put("/blogs/{id}", blogHandler.Update)
			r.Delete("/blogs/{id}", blogHandler.Delete)

			r.Post("/news", newsHandler.Create)
			r.Put("/news/{id}", newsHandler.Update)
			r.Delete("/news/{id}", newsHandler.Delete)
		})
	})

	return r
}
