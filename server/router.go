package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpHandler "social-manager/interfaces/http"
	"social-manager/interfaces/middleware"
)

func InitiateRouter(
	brandHandler httpHandler.IBrandHandler,
	channelHandler httpHandler.IChannelHandler,
	scriptHandler httpHandler.IScriptHandler,
	publishHandler httpHandler.IPublishHandler,
	healthHandler httpHandler.IHealthHandler,
	secretKey string,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Google redirects here after the user grants access; no bearer token
	// arrives on this request, so it stays outside the api group.
	router.GET("/auth/youtube/callback", channelHandler.HandleCallback)

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	brands := api.Group("/brands")
	{
		brands.POST("", brandHandler.CreateBrand)
		brands.GET("/:brandId", brandHandler.GetBrand)
		brands.DELETE("/:brandId", brandHandler.DeleteBrand)
		brands.PUT("/:brandId/youtube-credentials", brandHandler.SetYouTubeCredentials)
		brands.DELETE("/:brandId/youtube-credentials", brandHandler.ClearYouTubeCredentials)
		brands.GET("/:brandId/publish-config", brandHandler.GetPublishConfig)
		brands.PUT("/:brandId/publish-config", brandHandler.SetPublishConfig)

		brands.GET("/:brandId/channels", channelHandler.ListChannels)
		brands.DELETE("/:brandId/channels", channelHandler.DisconnectAllForBrand)
		brands.GET("/:brandId/scripts", scriptHandler.ListScripts)
	}

	channels := api.Group("/channels")
	{
		channels.GET("/connect", channelHandler.GetAuthURL)
		channels.GET("/:channelId/health", channelHandler.CheckHealth)
		channels.DELETE("/:channelId", channelHandler.DisconnectChannel)
		channels.GET("/:channelId/videos/:videoId", channelHandler.GetVideo)
		channels.PATCH("/:channelId/videos/:videoId", channelHandler.UpdateVideo)
		channels.DELETE("/:channelId/videos/:videoId", channelHandler.DeleteVideo)
	}

	scripts := api.Group("/scripts")
	{
		scripts.POST("", scriptHandler.CreateScript)
		scripts.POST("/run-scheduled", scriptHandler.RunScheduledScripts)
		scripts.GET("/:scriptId", scriptHandler.GetScript)
		scripts.DELETE("/:scriptId", scriptHandler.DeleteScript)
		scripts.POST("/:scriptId/generate", scriptHandler.SubmitGeneration)
		scripts.POST("/:scriptId/schedule", scriptHandler.ScheduleScript)
		scripts.POST("/:scriptId/publish", publishHandler.PublishToAllChannels)
		scripts.GET("/:scriptId/publishes", publishHandler.PublishStatus)
	}

	publishes := api.Group("/publishes")
	{
		publishes.POST("/approve", publishHandler.ApprovePublishes)
		publishes.POST("/retry", publishHandler.RetryFailedPublishes)
	}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", scriptHandler.ListGeneratorJobs)
		jobs.GET("/:jobId", scriptHandler.RefreshJobStatus)
		jobs.DELETE("/:jobId", scriptHandler.CancelJob)
	}

	return router
}
