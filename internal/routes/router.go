// Package routes assembles the Gin router.
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todo-api/internal/config"
	"todo-api/internal/enrich"
	"todo-api/internal/handlers"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
)

// SetupRouter wires repositories, services and handlers and registers all
// endpoints.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))
	r.Use(RequestID())

	todoRepo := repositories.NewTodoRepository(db)
	userRepo := repositories.NewUserRepository(db)

	var enricher *enrich.Enricher
	if cfg.EnrichEnabled() {
		enricher = enrich.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.EnrichTimeout)
	}

	todoService := services.NewTodoService(todoRepo, enricher)
	userService := services.NewUserService(userRepo)
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.TokenLifetime)

	userHandler := handlers.NewUserHandler(userService, jwtService)
	todoHandler := handlers.NewTodoHandler(todoService)

	r.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/", userHandler.RegisterHandler)
		auth.POST("/token", userHandler.TokenHandler)
	}

	todo := r.Group("/todo")
	todo.Use(AuthMiddleware(jwtService))
	{
		todo.GET("/read-all", todoHandler.ListTodosHandler)
		todo.GET("/:id", todoHandler.GetTodoHandler)
		todo.POST("/", todoHandler.CreateTodoHandler)
		todo.PUT("/:id", todoHandler.UpdateTodoHandler)
		todo.DELETE("/delete_todo/:id", todoHandler.DeleteTodoHandler)
	}

	return r
}
