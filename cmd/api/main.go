package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tourbooking/internal/database"
	"tourbooking/internal/middleware"
	"tourbooking/internal/modules/auth"
	"tourbooking/internal/modules/blog"
	"tourbooking/internal/modules/booking"
	"tourbooking/internal/modules/cart"
	"tourbooking/internal/modules/catalog"
	"tourbooking/internal/modules/checkout"
	"tourbooking/internal/modules/review"
	jwtsvc "tourbooking/internal/pkg/jwt"
	"tourbooking/internal/pkg/pricing"
	"tourbooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(repository.MigrationModels()...); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tourRepo := repository.NewTourRepository(db)
	cartRepo := repository.NewCartRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	orderRepo := repository.NewPaymentOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	sessions := booking.NewSessionStore()
	priceCfg := pricingConfig()

	authService := auth.NewService(userRepo, j, sessions)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(tourRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingHandler := booking.NewHandler(sessions)

	cartService := cart.NewService(cartRepo, tourRepo, sessions, priceCfg)
	cartHandler := cart.NewHandler(cartService)

	bog := checkout.NewBOGClient(log.Printf)
	checkoutService := checkout.NewService(userRepo, tourRepo, cartRepo, sessions, orderRepo, invoiceRepo, bog, priceCfg, log.Printf)
	checkoutHandler := checkout.NewHandler(checkoutService)

	blogHandler := blog.NewHandler(blogRepo)

	reviewService := review.NewService(ratingRepo, tourRepo)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(cors.New(corsConfig()))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		blogHandler.RegisterRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			cartHandler.RegisterRoutes(protected)
			checkoutHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			blogHandler.RegisterAdminRoutes(admin)
			reviewHandler.RegisterAdminRoutes(admin)
			checkoutHandler.RegisterAdminRoutes(admin)
		}
	}

	bogGroup := r.Group("/api/bog")
	bogAuthed := r.Group("/api/bog")
	bogAuthed.Use(middleware.JWTAuth(j))
	checkoutHandler.RegisterGatewayRoutes(bogGroup, bogAuthed)

	addr := ":" + envOrDefault("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func pricingConfig() pricing.Config {
	cfg := pricing.DefaultConfig()
	if v, err := strconv.Atoi(os.Getenv("VEHICLE_CAPACITY")); err == nil && v > 0 {
		cfg.VehicleCapacity = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("CAR_UNIT_COST"), 64); err == nil && v >= 0 {
		cfg.CarUnitCost = v
	}
	return cfg
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowCredentials = true
	return cfg
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
