package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; without it the catalog cache is a pass-through.
	cacheCfg := config.LoadCacheConfig()
	redisClient := config.NewRedisClient()
	if redisClient == nil {
		log.Println("redis unavailable, catalog cache disabled")
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	genres := repository.NewGenreRepo(db)
	reviews := repository.NewReviewRepo(db)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	session := middleware.Session(cfg.JWTSecret, users)

	authH := handler.NewAuthHandler(cfg, users)
	movieH := handler.NewMovieHandler(movies, reviews)
	genreH := handler.NewGenreHandler(genres, redisClient, cacheCfg.Prefix)
	reviewH := handler.NewReviewHandler(reviews, redisClient, cacheCfg.Prefix)
	adminH := handler.NewAdminMovieHandler(movies, genres, redisClient, cacheCfg.Prefix)
	uploadH := handler.NewUploadHandler(cfg.UploadDir)

	router.RegisterRoutes(e, cfg.UploadDir)
	router.RegisterAuth(e, authH, session)
	router.RegisterCatalog(e, movieH, genreH, reviewH, session, cacheCfg, redisClient)
	router.RegisterAdmin(e, adminH, genreH, uploadH, session)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
