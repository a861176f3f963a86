package routers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/klpbbs/forum/internal/handlers"
	"github.com/klpbbs/forum/internal/services"
	"github.com/klpbbs/forum/pkg/logger"
	"github.com/klpbbs/forum/pkg/middlewares"
	"github.com/klpbbs/forum/pkg/utils"
)

// RateLimits 各接口的每分钟限额，为零表示不限
type RateLimits struct {
	LoginPerMinute    int
	RegisterPerMinute int
}

// SetupRoutes 设置所有路由
func SetupRoutes(r *gin.Engine,
	log *zap.Logger,
	tokens *utils.TokenManager,
	limiter *middlewares.RateLimiter,
	limits RateLimits,
	roleService *services.RoleService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	groupHandler *handlers.GroupHandler,
	roleHandler *handlers.RoleHandler,
	fileHandler *handlers.FileHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(logger.GinMiddleware(log))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Status": "OK"})
	})

	auth := middlewares.AuthMiddleware(tokens)
	loginLimit := middlewares.RateLimitMiddleware(limiter, "login", limits.LoginPerMinute)
	registerLimit := middlewares.RateLimitMiddleware(limiter, "register", limits.RegisterPerMinute)

	registerUserRoutes(r, auth, loginLimit, registerLimit, authHandler, userHandler, notificationHandler, roleHandler)
	registerPostRoutes(r, auth, postHandler)
	registerGroupRoutes(r, auth, groupHandler)
	registerRoleRoutes(r, auth, roleHandler)
	registerFileRoutes(r, auth, fileHandler)
	registerAdminRoutes(r, auth, requireRole(roleService, "admin"), adminHandler)
}

// requireRole 管理接口的角色门禁
func requireRole(roleService *services.RoleService, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权访问"})
			c.Abort()
			return
		}

		userID, _ := v.(uint)
		has, err := roleService.UserHasRole(userID, name)
		if err != nil || !has {
			c.JSON(http.StatusForbidden, gin.H{"error": "权限不足"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func registerUserRoutes(r *gin.Engine, auth, loginLimit, registerLimit gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	notificationHandler *handlers.NotificationHandler,
	roleHandler *handlers.RoleHandler,
) {
	users := r.Group("/api/users")
	{
		users.POST("/register", registerLimit, authHandler.Register)
		users.POST("/login", loginLimit, authHandler.Login)
		users.POST("/forgot-password", authHandler.ForgotPassword)
		users.POST("/reset-password", authHandler.ResetPassword)

		users.POST("/logout", auth, authHandler.Logout)
		users.POST("/checkin", auth, authHandler.CheckIn)
		users.POST("/upgrade", auth, authHandler.Upgrade)

		users.GET("/me", auth, userHandler.GetProfile)
		users.PUT("/me", auth, userHandler.UpdateProfile)
		users.PUT("/me/password", auth, userHandler.ChangePassword)
		users.GET("/me/notifications", auth, notificationHandler.List)

		users.POST("/:id/follow", auth, userHandler.Follow)
		users.DELETE("/:id/follow", auth, userHandler.Unfollow)
		users.GET("/:id/roles", auth, roleHandler.ByUser)
	}

	notifications := r.Group("/api/notifications", auth)
	{
		notifications.POST("/:id/read", notificationHandler.Read)
		notifications.POST("/read-all", notificationHandler.ReadAll)
	}
}

func registerPostRoutes(r *gin.Engine, auth gin.HandlerFunc, postHandler *handlers.PostHandler) {
	posts := r.Group("/api/posts")
	{
		posts.POST("", auth, postHandler.Create)
		posts.PUT("/:id", auth, postHandler.Update)
		posts.POST("/:id/publish", auth, postHandler.Publish)
		posts.POST("/:id/unpublish", auth, postHandler.Unpublish)
		posts.DELETE("/:id", auth, postHandler.Delete)

		posts.POST("/:id/like", auth, postHandler.Like)
		posts.POST("/:id/share", auth, postHandler.Share)
		posts.POST("/:id/collect", auth, postHandler.Collect)

		posts.POST("/:id/comments", auth, postHandler.CreateComment)
		posts.GET("/:id/comments", postHandler.ListComments)

		// 读取会使浏览数 +1
		posts.GET("/:id", postHandler.Get)

		posts.GET("/search", postHandler.Search)
		posts.GET("/category/:category/status/:status", postHandler.ByCategoryAndStatus)
		posts.GET("/tag/:tag", postHandler.ByTag)
		posts.GET("/author/:author", postHandler.ByAuthor)
		posts.GET("/status/:status", postHandler.ByStatus)
		posts.GET("/type/:type", postHandler.ByType)
		posts.GET("/sort/:dimension", postHandler.Sort)
	}
}

func registerGroupRoutes(r *gin.Engine, auth gin.HandlerFunc, groupHandler *handlers.GroupHandler) {
	groups := r.Group("/api/groups")
	{
		groups.POST("", auth, groupHandler.Create)
		groups.POST("/:id/join", auth, groupHandler.Join)
		groups.POST("/:id/leave", auth, groupHandler.Leave)
		groups.GET("", groupHandler.List)
		groups.GET("/:id", groupHandler.Get)
		groups.GET("/user/:userId", groupHandler.ByUser)
	}
}

func registerRoleRoutes(r *gin.Engine, auth gin.HandlerFunc, roleHandler *handlers.RoleHandler) {
	roles := r.Group("/api/roles", auth)
	{
		roles.POST("", roleHandler.Create)
		roles.GET("", roleHandler.List)
		roles.POST("/:id/assign/:userId", roleHandler.Assign)
	}
}

func registerFileRoutes(r *gin.Engine, auth gin.HandlerFunc, fileHandler *handlers.FileHandler) {
	files := r.Group("/api/files")
	{
		files.POST("", auth, fileHandler.Upload)
		files.GET("/:id", fileHandler.Get)
		files.GET("/user/:userId", fileHandler.ByUser)
	}
}

func registerAdminRoutes(r *gin.Engine, auth, admin gin.HandlerFunc, adminHandler *handlers.AdminHandler) {
	adminGroup := r.Group("/api/admin", auth, admin)
	{
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.GET("/users/search", adminHandler.SearchUsers)
		adminGroup.GET("/users/active", adminHandler.ActiveUsers)
		adminGroup.GET("/users/count/active", adminHandler.CountActiveUsers)
		adminGroup.GET("/users/sort/:dimension", adminHandler.SortUsers)

		adminGroup.GET("/posts", adminHandler.ListPosts)
		adminGroup.GET("/posts/search", adminHandler.SearchPosts)
		adminGroup.GET("/posts/category/:category/status/:status", adminHandler.PostsByCategoryAndStatus)
		adminGroup.GET("/posts/tag/:tag", adminHandler.PostsByTag)
		adminGroup.GET("/posts/author/:author", adminHandler.PostsByAuthor)
		adminGroup.GET("/posts/status/:status", adminHandler.PostsByStatus)
		adminGroup.GET("/posts/type/:type", adminHandler.PostsByType)
		adminGroup.GET("/posts/sort/:dimension", adminHandler.SortPosts)
	}
}
