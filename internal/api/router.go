package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/wetrack/wetrack/docs"
	"github.com/wetrack/wetrack/internal/api/handler"
	"github.com/wetrack/wetrack/internal/api/middleware"
	"github.com/wetrack/wetrack/internal/core/service"
	wmongo "github.com/wetrack/wetrack/internal/infrastructure/db/mongo"
	wredis "github.com/wetrack/wetrack/internal/infrastructure/db/redis"
	"github.com/wetrack/wetrack/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("wetrack"))

	// --- Dependencies ---
	userRepo := wmongo.NewUserRepository(db)
	tokenRepo := wmongo.NewTokenRepository(db)
	chatRepo := wmongo.NewChatRepository(db)
	locationRepo := wmongo.NewLocationRepository(db)
	throttle := wredis.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	sessionService := service.NewSessionService(userRepo, tokenRepo, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, sessionService, log)
	friendService := service.NewFriendService(userRepo, log)
	chatService := service.NewChatService(chatRepo, userRepo, log)
	locationService := service.NewLocationService(locationRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(sessionService, throttle)
	userHandler := handler.NewUserHandler(userService)
	friendHandler := handler.NewFriendHandler(friendService)
	chatHandler := handler.NewChatHandler(chatService)
	locationHandler := handler.NewLocationHandler(locationService, sessionService)

	owner := middleware.Owner(sessionService)
	authenticated := middleware.Authenticated(sessionService)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/users/:username/tokenValidate", authHandler.TokenValidate)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.HEAD("/users/:username", userHandler.Exists)
	e.GET("/users/:username", userHandler.Get)
	e.POST("/users/:username", userHandler.Update)
	e.POST("/users/:username/password", userHandler.UpdatePassword)

	// --- Friend routes (owner-guarded, token as query parameter) ---
	e.GET("/users/:username/friends", friendHandler.List, owner)
	e.POST("/users/:username/friends/:friendName", friendHandler.Add, owner)
	e.DELETE("/users/:username/friends/:friendName", friendHandler.Delete, owner)
	e.HEAD("/users/:username/friends/:friendName", friendHandler.IsFriend, owner)

	// --- Chat routes ---
	e.POST("/chats", chatHandler.Create, authenticated)
	e.POST("/chats/:chatId/members", chatHandler.AddMembers, authenticated)
	e.GET("/chats/:chatId/members", chatHandler.Members, authenticated)
	e.DELETE("/chats/:chatId/members/:username", chatHandler.RemoveMember, authenticated)
	e.GET("/users/:username/chats", chatHandler.ListForUser, owner)
	e.DELETE("/users/:username/chats/:chatId", chatHandler.Exit, owner)

	// --- Location routes (upload carries the token in the body) ---
	e.POST("/users/:username/locations", locationHandler.Upload)
	e.GET("/users/:username/locations", locationHandler.Since)
	e.GET("/users/:username/locations/latest", locationHandler.Latest)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
