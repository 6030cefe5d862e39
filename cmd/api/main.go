package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"realtymedia/internal/config"
	"realtymedia/internal/database"
	"realtymedia/internal/domain/agent"
	"realtymedia/internal/domain/client"
	"realtymedia/internal/domain/media"
	"realtymedia/internal/domain/property"
	"realtymedia/internal/middleware"
	jwtsvc "realtymedia/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&agent.Agent{}, &property.Property{}, &client.Client{}); err != nil {
		log.Fatal(err)
	}
	if err := media.Migrate(db); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := media.NewHub()
	defer hub.Close()

	mediaStore := media.NewStore(
		media.NewRepository(db),
		media.NewValidator(cfg.Media),
		media.NewThumbnailer(cfg.Media),
		hub,
	)
	mediaHandler := media.NewHandler(mediaStore, hub)

	agentService := agent.NewService(agent.NewRepository(db), j)
	agentHandler := agent.NewHandler(agentService)

	propertyService := property.NewService(property.NewRepository(db), mediaStore)
	propertyHandler := property.NewHandler(propertyService)

	clientService := client.NewService(client.NewRepository(db), mediaStore)
	clientHandler := client.NewHandler(clientService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		agent.RegisterPublicRoutes(v1, agentHandler)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			agent.RegisterProtectedRoutes(protected, agentHandler)
			property.RegisterRoutes(protected, propertyHandler)
			client.RegisterRoutes(protected, clientHandler)
			media.RegisterRoutes(protected, mediaHandler)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
