package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/task-management-api/internal/api/handler"
	"github.com/taskhub/task-management-api/internal/api/middleware"
	"github.com/taskhub/task-management-api/internal/core/service"
	"github.com/taskhub/task-management-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-management-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Open routes: /auth/*, /swagger/*, /health*, /metrics. Everything under
// /tasks requires an authenticated identity.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	comments := mongodb.NewCommentRepository(db)
	cache := redisdb.NewTaskCache(rdb)

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	authService := service.NewAuthService(users, tokenService, log)
	taskService := service.NewTaskService(tasks, comments, users, cache, log)
	commentService := service.NewCommentService(comments, tasks, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService, commentService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskapi"))
	e.Use(middleware.Authenticate(tokenService, users))

	// --- Open routes ---
	e.POST("/auth/registration", authHandler.Register)
	e.POST("/auth/authentication", authHandler.Authenticate)

	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Protected routes ---
	g := e.Group("/tasks", middleware.RequireAuth())
	g.GET("", taskHandler.List)
	g.POST("", taskHandler.Create)
	g.GET("/author/:email", taskHandler.ListByAuthor)
	g.GET("/performer/:email", taskHandler.ListByPerformer)
	g.GET("/:id", taskHandler.Get)
	g.PATCH("/:id", taskHandler.Update)
	g.DELETE("/:id", taskHandler.Delete)
	g.PATCH("/:id/comments", taskHandler.AddComment)
	g.DELETE("/:id/comments/:cid", taskHandler.DeleteComment)

	return e, nil
}
