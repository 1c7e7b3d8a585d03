package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flexreviews/pkg/logger"
	"flexreviews/pkg/metrics"
)

func SetupRoutes(reviewHandler *ReviewHandler, analyticsHandler *AnalyticsHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("reviews-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "reviews-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := router.Group("/reviews")
	{
		// Публичные маршруты чтения
		reviews.GET("", reviewHandler.ListReviews)
		reviews.GET("/public", reviewHandler.PublicReviews)
		reviews.GET("/statistics", reviewHandler.Statistics)
		reviews.GET("/trend", reviewHandler.Trend)
		reviews.GET("/:review_id", reviewHandler.GetReview)

		// Мутации только для авторизованных менеджеров
		authorized := reviews.Group("")
		authorized.Use(authMiddleware.Authenticate())
		{
			authorized.POST("", reviewHandler.CreateReview)
			authorized.POST("/sync", reviewHandler.SyncReviews)
			authorized.POST("/bulk-approve", reviewHandler.BulkApprove)
			authorized.PATCH("/:review_id", reviewHandler.UpdateReview)
			authorized.PATCH("/:review_id/approve", reviewHandler.ApproveReview)
			authorized.DELETE("/:review_id", reviewHandler.DeleteReview)
		}
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/summary", analyticsHandler.Summary)
		analytics.GET("/by-property", analyticsHandler.ByProperty)
		analytics.GET("/by-channel", analyticsHandler.ByChannel)
		analytics.GET("/trends", analyticsHandler.Trends)
		analytics.GET("/category-breakdown", analyticsHandler.CategoryBreakdown)
		analytics.GET("/insights", analyticsHandler.Insights)
	}

	return router
}
