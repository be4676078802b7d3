package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/stayhub/hotel-booking-system/docs"
	"github.com/stayhub/hotel-booking-system/internal/api/handler"
	"github.com/stayhub/hotel-booking-system/internal/api/middleware"
	"github.com/stayhub/hotel-booking-system/internal/core/domain"
	"github.com/stayhub/hotel-booking-system/internal/core/service"
	mongodb "github.com/stayhub/hotel-booking-system/internal/infrastructure/db/mongo"
)

// RouterDeps carries everything the router needs that is built in main:
// shared clients plus the async notification pipeline.
type RouterDeps struct {
	Client   *mongo.Client
	DB       *mongo.Database
	Redis    *redis.Client
	Notifier service.BookingNotifier
	JWT      string
	TokenTTL time.Duration
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hotel"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	hotelRepo := mongodb.NewHotelRepository(deps.DB)
	bookingRepo := mongodb.NewBookingRepository(deps.Client, deps.DB)

	authService := service.NewAuthService(userRepo, deps.JWT, deps.TokenTTL)
	catalogService := service.NewCatalogService(hotelRepo, userRepo, bookingRepo, deps.Logger)
	reservationService := service.NewReservationService(hotelRepo, userRepo, bookingRepo, deps.Notifier, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	hotelHandler := handler.NewHotelHandler(catalogService)
	bookingHandler := handler.NewBookingHandler(reservationService)
	authMiddleware := middleware.Auth(deps.JWT)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Catalog routes ---
	hotels := e.Group("/v1/hotels", authMiddleware)
	hotels.POST("", hotelHandler.Create, middleware.RBAC(domain.RoleAdmin))
	hotels.POST("/view", hotelHandler.Available)

	// --- Booking routes ---
	bookings := e.Group("/v1/bookings", authMiddleware, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	bookings.POST("", bookingHandler.Create)
	bookings.GET("", bookingHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
