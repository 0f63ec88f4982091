// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"itinfo/internal/bootstrap"
	"itinfo/internal/cache"
	"itinfo/internal/config"
	"itinfo/internal/likes"
	"itinfo/internal/middleware"
	"itinfo/internal/models"
	"itinfo/internal/repository"
	"itinfo/internal/service"
	"itinfo/internal/session"
	"itinfo/internal/storage"
	"itinfo/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Manager
	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
	productService *service.ProductService
	homeService    *service.HomeService
	profileService *service.ProfileService
	adminService   *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	uploader := bootstrap.InitStorage(ctx, cfg)

	return NewServerWithDeps(cfg, db, redisClient, uploader)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient and uploader may be nil; likes and sessions then live in
// process memory and image uploads report 503.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader storage.Uploader) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	st := store.New(db, store.DefaultTables()...)
	userRepo := repository.NewUserRepository(st)
	postRepo := repository.NewPostRepository(st)
	commentRepo := repository.NewCommentRepository(st)
	productRepo := repository.NewProductRepository(st)
	reviewRepo := repository.NewReviewRepository(st)

	var (
		likeSet      likes.Set
		sessionStore session.Store
	)
	if redisClient != nil {
		likeSet = likes.NewRedisSet(redisClient, time.Duration(cfg.LikeSetTTLMinutes)*time.Minute)
		sessionStore = session.NewRedisStore(redisClient)
	} else {
		middleware.Logger.Warn("Redis unavailable, likes and sessions kept in memory")
		likeSet = likes.NewMemorySet()
		sessionStore = session.NewMemoryStore()
	}

	c := cache.New(redisClient)
	sessions := session.NewManager(sessionStore, cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("itinfo-api"),
		sessions:       sessions,
	}
	s.authService = service.NewAuthService(userRepo, sessions)
	s.postService = service.NewPostService(postRepo, likeSet)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.productService = service.NewProductService(productRepo, reviewRepo, likeSet, c)
	s.homeService = service.NewHomeService(s.postService, s.productService)
	s.profileService = service.NewProfileService(userRepo, postRepo, commentRepo, reviewRepo, c)
	s.adminService = service.NewAdminService(postRepo, commentRepo, productRepo, reviewRepo, uploader, c)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Spans must exist before ContextMiddleware copies the trace ID.
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + viewerSessionHeader,
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "IT Info Backend Metrics Dashboard",
	}))

	requireAuth := middleware.RequireAuth(s.sessions)
	optionalAuth := middleware.OptionalAuth(s.sessions)

	api.Get("/home", s.GetHome)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", requireAuth, s.Logout)
	auth.Get("/session", requireAuth, s.GetSession)

	notices := api.Group("/notices")
	notices.Get("/", s.GetNotices)
	notices.Get("/:id", s.GetNotice)

	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/popular", s.GetPopularPosts)
	posts.Post("/", requireAuth, middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", requireAuth, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	posts.Post("/:id/like", optionalAuth, s.TogglePostLike)
	posts.Get("/:id", s.GetPost)

	products := api.Group("/products")
	products.Get("/", s.GetProducts)
	products.Post("/:id/reviews", requireAuth, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_review"), s.CreateReview)
	products.Get("/:id", s.GetProduct)

	reviews := api.Group("/reviews")
	reviews.Get("/latest", s.GetLatestReviews)
	reviews.Post("/:id/like", optionalAuth, s.ToggleReviewLike)

	api.Get("/users/:id/profile", s.GetUserProfile)

	// Admin routes
	admin := api.Group("/admin", requireAuth, s.AdminRequired())
	admin.Get("/posts", s.AdminListPosts)
	admin.Post("/notices", s.AdminCreateNotice)
	admin.Delete("/posts/:id", s.AdminDeletePost)
	admin.Get("/products", s.AdminListProducts)
	admin.Post("/products", s.AdminCreateProduct)
	admin.Delete("/products/:id", s.AdminDeleteProduct)
	admin.Post("/uploads", s.AdminUploadImage)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database and Redis can serve traffic.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	// Without a Redis client the server runs on in-memory sessions and likes,
	// which is degraded but still able to serve.
	status := fiber.StatusOK
	overallStatus := "healthy"
	switch {
	case dbStatus == "unhealthy" || redisStatus == "unhealthy":
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	case redisStatus == "unavailable":
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after RequireAuth so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		user, err := s.profileService.GetUser(c.UserContext(), userID)
		if err != nil {
			if models.IsNotFound(err) {
				return models.RespondWithError(c, fiber.StatusForbidden,
					models.NewUnauthorizedError("Admin access required"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !user.IsAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// App builds the Fiber app with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "IT Info API",
		BodyLimit: service.DefaultMaxUploadBytes + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.app = s.App()

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
