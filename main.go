package main

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"bookshelf-api/handlers"
	"bookshelf-api/middleware"
	"bookshelf-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// configureTrustedProxies restricts which peers may set client IP headers.
// ClientIP feeds the rate-limiter keys and the access log, so trusting every
// proxy would let any client rotate limiter buckets and poison logged IPs
// via X-Forwarded-For. Defaults to loopback only; override with a
// comma-separated TRUSTED_PROXIES list in production.
func configureTrustedProxies(r *gin.Engine) error {
	raw := os.Getenv("TRUSTED_PROXIES")
	if raw == "" {
		return r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return r.SetTrustedProxies(parts)
}

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters")
	}

	tokenTTL := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("Invalid TOKEN_TTL: %q", v)
		}
		tokenTTL = d
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	usersRepo := repository.NewUsersRepository(db)
	booksRepo := repository.NewBooksRepository(db)

	authHandler := handlers.NewAuthHandler(usersRepo, jwtSecret, tokenTTL)
	booksHandler := handlers.NewBooksHandler(booksRepo)

	r := gin.New()
	if err := configureTrustedProxies(r); err != nil {
		log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	r.GET("/health", handlers.HealthCheck)

	// Registration and login carry a stricter per-IP limit than the rest
	// of the API.
	authPublic := r.Group("/", middleware.RateLimitAuth())
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", authHandler.Login)

	auth := r.Group("/", handlers.AuthMiddleware(jwtSecret))
	{
		auth.POST("/books", booksHandler.CreateBook)
		auth.GET("/books", booksHandler.GetBooks)
		auth.GET("/books/:id", booksHandler.GetBook)
		auth.PUT("/books/:id", booksHandler.UpdateBook)
		auth.DELETE("/books/:id", booksHandler.DeleteBook)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server error:", err)
	}
}
