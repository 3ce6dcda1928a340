package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/chirp/docs"
	"github.com/fkhayef/chirp/internal/auth"
	"github.com/fkhayef/chirp/internal/config"
	"github.com/fkhayef/chirp/internal/database"
	"github.com/fkhayef/chirp/internal/social"
	"github.com/fkhayef/chirp/internal/tweet"
	mw "github.com/fkhayef/chirp/pkg/middleware"
)

// @title           Chirp API
// @version         1.0
// @description     A small twitter-style social network backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	jwtSecret := []byte(cfg.JWTSecret)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Auth feature
	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, jwtSecret)
	authHandler := auth.NewHandler(authService)

	// Social graph feature
	socialRepo := social.NewRepository(db)
	socialService := social.NewService(socialRepo)
	socialHandler := social.NewHandler(socialService)

	// Tweet feature (follow checks injected from the social repository)
	tweetRepo := tweet.NewRepository(db)
	tweetService := tweet.NewService(tweetRepo, socialRepo)
	tweetHandler := tweet.NewHandler(tweetService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StripSlashes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticator(jwtSecret))

		r.Mount("/tweets", tweetHandler.Routes())
		r.Route("/user", func(r chi.Router) {
			r.Get("/following", socialHandler.Following)
			r.Get("/followers", socialHandler.Followers)
			r.Mount("/tweets", tweetHandler.UserRoutes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
