package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/webadmin/cms-api/docs"
	"github.com/webadmin/cms-api/internal/api/handler"
	"github.com/webadmin/cms-api/internal/api/middleware"
	"github.com/webadmin/cms-api/internal/core/service"
	"github.com/webadmin/cms-api/internal/infrastructure/config"
	mongostore "github.com/webadmin/cms-api/internal/infrastructure/db/mongo"
	redisstore "github.com/webadmin/cms-api/internal/infrastructure/db/redis"
	"github.com/webadmin/cms-api/internal/infrastructure/http/handlers"
	"github.com/webadmin/cms-api/pkg/logger"
)

// NewRouter builds the Echo instance with every route registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = handler.NewValidator()

	// The original admin frontend calls every endpoint with a trailing slash.
	e.Pre(echomiddleware.RemoveTrailingSlash())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("webadmin"))

	log := logger.Get()

	// --- Repositories ---
	users := mongostore.NewUserRepository(db)
	roles := mongostore.NewRoleRepository(db)
	profiles := mongostore.NewProfileRepository(db)
	articles := mongostore.NewArticleRepository(db)
	team := mongostore.NewTeamRepository(db)
	programs := mongostore.NewProgramRepository(db)
	settings := mongostore.NewSettingsRepository(db)
	denylist := redisstore.NewTokenDenylist(rdb)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	accountService := service.NewAccountService(users, roles, profiles, tokens, denylist, cfg.BcryptCost, log)
	roleService := service.NewRoleService(roles, profiles, log)
	profileService := service.NewProfileService(profiles, roles)
	articleService := service.NewArticleService(articles, users, log)
	teamService := service.NewTeamService(team)
	programService := service.NewProgramService(programs)
	settingsService := service.NewSettingsService(settings)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(accountService)
	roleHandler := handler.NewRoleHandler(roleService)
	profileHandler := handler.NewProfileHandler(profileService)
	userHandler := handler.NewUserHandler(accountService)
	articleHandler := handler.NewArticleHandler(articleService)
	teamHandler := handler.NewTeamHandler(teamService)
	programHandler := handler.NewProgramHandler(programService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	authRequired := middleware.Auth(tokens)
	staffOnly := middleware.Staff()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.GET("/auth/user", authHandler.UserInfo, authRequired)

	// --- Public content ---
	e.GET("/api/public-articles", articleHandler.ListPublic)
	e.GET("/api/public-articles/:slug", articleHandler.GetPublic)
	e.GET("/api/team-members", teamHandler.List)
	e.GET("/api/team-members/:id", teamHandler.Get)
	e.GET("/api/ongoing_programs", programHandler.List)
	e.GET("/api/ongoing_programs/:id", programHandler.Get)
	e.GET("/api/header-settings/active", settingsHandler.GetActive)

	// --- Staff content CRUD ---
	staff := e.Group("/api", authRequired, staffOnly)

	staff.GET("/articles", articleHandler.List)
	staff.POST("/articles", articleHandler.Create)
	staff.GET("/articles/:id", articleHandler.Get)
	staff.PUT("/articles/:id", articleHandler.Update)
	staff.PATCH("/articles/:id", articleHandler.Update)
	staff.DELETE("/articles/:id", articleHandler.Delete)

	staff.POST("/team-members", teamHandler.Create)
	staff.PUT("/team-members/:id", teamHandler.Update)
	staff.PATCH("/team-members/:id", teamHandler.Update)
	staff.DELETE("/team-members/:id", teamHandler.Delete)

	staff.POST("/ongoing_programs", programHandler.Create)
	staff.PUT("/ongoing_programs/:id", programHandler.Update)
	staff.PATCH("/ongoing_programs/:id", programHandler.Update)
	staff.DELETE("/ongoing_programs/:id", programHandler.Delete)

	staff.GET("/header-settings", settingsHandler.List)
	staff.POST("/header-settings", settingsHandler.Create)
	staff.GET("/header-settings/:id", settingsHandler.Get)
	staff.PUT("/header-settings/:id", settingsHandler.Update)
	staff.PATCH("/header-settings/:id", settingsHandler.Update)
	staff.DELETE("/header-settings/:id", settingsHandler.Delete)

	// --- Staff account administration ---
	staff.GET("/roles", roleHandler.List)
	staff.POST("/roles", roleHandler.Create)
	staff.GET("/roles/:id", roleHandler.Get)
	staff.PUT("/roles/:id", roleHandler.Update)
	staff.DELETE("/roles/:id", roleHandler.Delete)

	staff.GET("/profiles", profileHandler.List)
	staff.GET("/profiles/:id", profileHandler.Get)
	staff.PUT("/profiles/:id", profileHandler.Update)
	staff.DELETE("/profiles/:id", profileHandler.Delete)

	staff.GET("/users", userHandler.List)
	staff.POST("/users", userHandler.Create)
	staff.GET("/users/:id", userHandler.Get)
	staff.PUT("/users/:id", userHandler.Update)
	staff.DELETE("/users/:id", userHandler.Delete)

	// --- Ops surface ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
