package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pressfolio/internal/handler"
	"github.com/pressfolio/internal/platform"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, sessionSecret string, adapters []platform.Adapter, logger zerolog.Logger) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件。默认部署不带 TLS，不能依赖 Secure cookie。
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("pressfolio_session", store))

	api := handler.NewAPI(gdb, adapters, logger)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 对外公开的只读接口
	public := r.Group("/api")
	{
		public.GET("/posts", api.ListPosts)
		public.GET("/posts/:slug", api.GetPostBySlug)
		public.POST("/login", api.Login)
		public.POST("/logout", api.Logout)
	}

	// 需要认证的后台路由
	admin := r.Group("/api/admin")
	admin.Use(handler.AuthRequired())
	{
		admin.GET("/posts", api.AdminListPosts)
		admin.GET("/posts/:id", api.AdminGetPost)
		admin.POST("/posts", api.CreatePost)
		admin.PUT("/posts/:id", api.UpdatePost)
		admin.DELETE("/posts/:id", api.DeletePost)

		admin.POST("/import", api.RunImport)
	}

	return r
}
