package api

import (
	"Folio/internal/api/handler"
	"Folio/internal/api/middleware"
	"Folio/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)
	r.Use(middleware.MetricsMiddleware())

	r.GET("/", handler.Home)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	postGroup := r.Group("/posts")
	{
		postGroup.POST("", group.PostHandler.CreatePost)
		postGroup.GET("", group.PostHandler.ListPosts)
		postGroup.GET("/:id", group.PostHandler.GetPost)
		postGroup.PUT("/:id", group.PostHandler.UpdatePost)
		postGroup.PATCH("/:id", group.PostHandler.UpdatePost)
		postGroup.DELETE("/:id", group.PostHandler.DeletePost)
	}

	tagGroup := r.Group("/tags")
	{
		tagGroup.GET("", group.TagHandler.ListTags)
		tagGroup.GET("/:tagName/posts", group.TagHandler.GetPostsByTag)
		tagGroup.DELETE("/cleanup", group.TagHandler.CleanupOrphanTags)
	}

	return r
}
