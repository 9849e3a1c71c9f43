package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wearloop/rental-system/internal/api/handler"
	"github.com/wearloop/rental-system/internal/api/middleware"
	"github.com/wearloop/rental-system/internal/core/ports"
	"github.com/wearloop/rental-system/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Services are constructed in main
// because the notification dispatcher behind them has its own lifecycle.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Auth      ports.AuthService
	Rentals   ports.RentalService
	Listings  ports.ListingService
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	authMiddleware := middleware.Auth(deps.JWTSecret)

	authHandler := handler.NewAuthHandler(deps.Auth)
	rentalHandler := handler.NewRentalHandler(deps.Rentals)
	listingHandler := handler.NewListingHandler(deps.Listings)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Catalog (browsing is public, mutations require auth) ---
	v1 := e.Group("/v1")
	v1.GET("/items", listingHandler.Browse)
	v1.GET("/items/:id", listingHandler.Get)
	v1.POST("/items", listingHandler.Create, authMiddleware)
	v1.PUT("/items/:id", listingHandler.Update, authMiddleware)
	v1.DELETE("/items/:id", rentalHandler.DeleteItem, authMiddleware)
	v1.GET("/items/:id/occupancy", rentalHandler.GetOccupancy, authMiddleware)
	v1.GET("/items/:id/deletable", rentalHandler.GetDeletable, authMiddleware)

	// --- Rentals ---
	v1.POST("/rentals", rentalHandler.Rent, authMiddleware)
	v1.GET("/rentals", rentalHandler.ListRentals, authMiddleware)
	v1.GET("/rentals/:id", rentalHandler.Get, authMiddleware)
	v1.POST("/rentals/:id/return", rentalHandler.Return, authMiddleware)
	v1.GET("/lendings", rentalHandler.ListLendings, authMiddleware)

	// --- Metrics (Prometheus scrape endpoint) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	return e
}
