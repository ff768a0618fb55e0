package routes

import (
	"time"

	"devconnect/handlers"
	"devconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewIPRateLimiter(60, time.Minute)

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter))

	// Public routes (no auth required)
	api.POST("/users/register", handlers.Register)
	api.POST("/users/login", handlers.Login)

	api.GET("/posts", handlers.GetPosts)
	api.GET("/posts/:id", handlers.GetPost)

	api.GET("/profile/all", handlers.GetAllProfiles)
	api.GET("/profile/handle/:handle", handlers.GetProfileByHandle)
	api.GET("/profile/user/:user_id", handlers.GetProfileByUser)

	// Protected routes group
	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())

	protected.GET("/users/current", handlers.CurrentUser)

	// Posts
	protected.POST("/posts", handlers.CreatePost)
	protected.DELETE("/posts/:id", handlers.DeletePost)
	protected.POST("/posts/like/:id", handlers.LikePost)
	protected.POST("/posts/unlike/:id", handlers.UnlikePost)
	protected.POST("/posts/comment/:id", handlers.AddComment)
	protected.DELETE("/posts/comment/:id/:comment_id", handlers.RemoveComment)

	// Profile
	protected.GET("/profile", handlers.GetCurrentProfile)
	protected.POST("/profile", handlers.CreateOrUpdateProfile)
	protected.POST("/profile/experience", handlers.AddExperience)
	protected.POST("/profile/education", handlers.AddEducation)
	protected.DELETE("/profile/experience/:exp_id", handlers.RemoveExperience)
	protected.DELETE("/profile/education/:edu_id", handlers.RemoveEducation)
	protected.DELETE("/profile", handlers.DeleteProfile)

	// Catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error":   "notfound",
				"message": "Endpoint not found",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
