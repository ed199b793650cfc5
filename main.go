package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/StillWaters/controllers"
	"github.com/StillWaters/initializers"
	"github.com/StillWaters/middlewares"
	"github.com/StillWaters/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	initializers.MigrateDB()
	services.InitEmailService()
}

func main() {
	router := gin.Default()
	router.Use(middlewares.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	byIP := func(c *gin.Context) string {
		return c.ClientIP()
	}

	api := router.Group("/api")

	api.GET("/health", controllers.HealthCheck)

	api.POST("/auth/login", middlewares.RateLimitMiddleware(rate.Every(6*time.Second), 10, byIP), controllers.OperatorLogin)
	api.POST("/auth/refresh", controllers.RefreshToken)

	// Public content reads. OptionalAuth lets operators see unpublished rows.
	public := api.Group("/", middlewares.OptionalAuth)
	{
		public.GET("/blog", controllers.GetPosts)
		public.GET("/blog/:id", controllers.GetPost)
		public.GET("/blog/:id/comments", controllers.GetPostComments)
		public.GET("/volumes", controllers.GetVolumes)
		public.GET("/volumes/:id", controllers.GetVolume)
		public.GET("/testimonials", controllers.GetTestimonials)
		public.GET("/testimonials/:id", controllers.GetTestimonial)
		public.GET("/prayer-testimonials", controllers.GetPrayerTestimonials)
		public.GET("/prayer-testimonials/:id", controllers.GetPrayerTestimonial)
		public.GET("/books", controllers.GetBooks)
		public.GET("/books/:id", controllers.GetBook)
	}

	// Public submissions.
	api.POST("/prayers", controllers.CreatePrayerRequest)
	api.POST("/contact", controllers.CreateContactMessage)
	api.POST("/comments", controllers.CreateComment)
	api.POST("/comments/create", controllers.CreateComment)
	api.POST("/subscribers", controllers.CreateSubscriber)
	api.POST("/subscribers/subscribe", middlewares.SubscribeRateLimit(byIP), controllers.Subscribe)
	api.PATCH("/volumes/:id/download", controllers.TrackDownload)

	// Everything below requires an operator token.
	auth := api.Group("/", middlewares.CheckAuth)
	{
		auth.GET("/auth/me", controllers.GetOperatorProfile)
		auth.POST("/operators", controllers.CreateOperator)

		auth.POST("/blog", controllers.CreatePost)
		auth.PUT("/blog/:id", controllers.UpdatePost)
		auth.PATCH("/blog/:id", controllers.UpdatePost)
		auth.DELETE("/blog/:id", controllers.DeletePost)

		auth.POST("/volumes", controllers.CreateVolume)
		auth.PUT("/volumes/:id", controllers.UpdateVolume)
		auth.PATCH("/volumes/:id", controllers.UpdateVolume)
		auth.DELETE("/volumes/:id", controllers.DeleteVolume)

		auth.GET("/prayers", controllers.GetPrayerRequests)
		auth.GET("/prayers/:id", controllers.GetPrayerRequest)
		auth.PUT("/prayers/:id", controllers.UpdatePrayerRequest)
		auth.PATCH("/prayers/:id", controllers.UpdatePrayerRequest)
		auth.DELETE("/prayers/:id", controllers.DeletePrayerRequest)

		auth.GET("/contact", controllers.GetContactMessages)
		auth.GET("/contact/:id", controllers.GetContactMessage)
		auth.PUT("/contact/:id", controllers.UpdateContactMessage)
		auth.PATCH("/contact/:id", controllers.UpdateContactMessage)
		auth.DELETE("/contact/:id", controllers.DeleteContactMessage)

		auth.GET("/subscribers", controllers.GetSubscribers)
		auth.GET("/subscribers/:id", controllers.GetSubscriber)
		auth.PUT("/subscribers/:id", controllers.UpdateSubscriber)
		auth.PATCH("/subscribers/:id", controllers.UpdateSubscriber)
		auth.DELETE("/subscribers/:id", controllers.DeleteSubscriber)

		auth.GET("/comments", controllers.GetComments)
		auth.GET("/comments/:id", controllers.GetComment)
		auth.PUT("/comments/:id", controllers.UpdateComment)
		auth.PATCH("/comments/:id", controllers.UpdateComment)
		auth.DELETE("/comments/:id", controllers.DeleteComment)

		auth.POST("/testimonials", controllers.CreateTestimonial)
		auth.PUT("/testimonials/:id", controllers.UpdateTestimonial)
		auth.PATCH("/testimonials/:id", controllers.UpdateTestimonial)
		auth.DELETE("/testimonials/:id", controllers.DeleteTestimonial)

		auth.POST("/prayer-testimonials", controllers.CreatePrayerTestimonial)
		auth.PUT("/prayer-testimonials/:id", controllers.UpdatePrayerTestimonial)
		auth.PATCH("/prayer-testimonials/:id", controllers.UpdatePrayerTestimonial)
		auth.DELETE("/prayer-testimonials/:id", controllers.DeletePrayerTestimonial)

		auth.POST("/books", controllers.CreateBook)
		auth.PUT("/books/:id", controllers.UpdateBook)
		auth.PATCH("/books/:id", controllers.UpdateBook)
		auth.DELETE("/books/:id", controllers.DeleteBook)

		auth.GET("/settings", controllers.GetSettings)
		auth.GET("/settings/:id", controllers.GetSetting)
		auth.POST("/settings", controllers.CreateSetting)
		auth.PUT("/settings/:id", controllers.UpdateSetting)
		auth.PATCH("/settings/:id", controllers.UpdateSetting)
		auth.DELETE("/settings/:id", controllers.DeleteSetting)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
