package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"fitvision-backend/internal/auth"
	"fitvision-backend/internal/config"
	"fitvision-backend/internal/database"
	"fitvision-backend/internal/handlers"
	"fitvision-backend/internal/mail"
	customMiddleware "fitvision-backend/internal/middleware"
	"fitvision-backend/internal/repository"
	"fitvision-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to MongoDB
	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepo()
	contactRepo := repository.NewContactRepo()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create user indexes: %v", err)
	}
	if err := contactRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create contact indexes: %v", err)
	}

	// Outbound email: Resend in production, logging mock without an API key
	var notifier mail.Notifier
	if cfg.ResendAPIKey != "" {
		notifier = mail.NewResendMailer(cfg.ResendAPIKey, cfg.FromEmail, cfg.AdminEmail, cfg.FrontendBaseURL)
	} else {
		log.Println("⚠️  RESEND_API_KEY not set, emails will be logged only")
		notifier = mail.NewMockNotifier()
	}

	// Auth primitives
	hasher := auth.NewPasswordHasher(0)
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("❌ Invalid JWT configuration: %v", err)
	}

	// Services
	sessions := service.NewSessionManager(userRepo, hasher, codec, notifier)
	resets := service.NewPasswordResetFlow(userRepo, hasher, notifier, cfg.FrontendBaseURL, cfg.ResetTokenTTL)

	cookies := handlers.CookieSettings{
		Secure:        cfg.CookieSecure,
		SameSite:      handlers.SameSiteFromName(cfg.CookieSameSite),
		AccessMaxAge:  cfg.AccessTokenTTL,
		RefreshMaxAge: cfg.RefreshTokenTTL,
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessions, resets, codec, cookies)
	userHandler := handlers.NewUserHandler(userRepo)
	contactHandler := handlers.NewContactHandler(contactRepo, notifier)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendBaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"fitvision-backend"}`))
	})

	// Public routes (no auth required)
	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/refresh", authHandler.Refresh)
	r.Post("/auth/logout", authHandler.Logout)
	r.Post("/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/auth/reset-password", authHandler.ResetPassword)
	r.Post("/api/contact", contactHandler.Submit)

	// Protected routes (access token required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Authenticate(codec, userRepo))

		r.Post("/users/onboarding", userHandler.CompleteOnboarding)
		r.Get("/users/me", userHandler.GetMe)
		r.Get("/dashboard", userHandler.Dashboard)
	})

	// Start server
	log.Printf("🚀 FitVision backend starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
