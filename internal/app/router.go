// internal/app/router.go
package app

import (
	accountHandler "backoffice-service/internal/handlers/account"
	notificationHandler "backoffice-service/internal/handlers/notification"
	permissionHandler "backoffice-service/internal/handlers/permission"
	productHandler "backoffice-service/internal/handlers/product"
	roleHandler "backoffice-service/internal/handlers/role"
	userHandler "backoffice-service/internal/handlers/user"
	wsHandler "backoffice-service/internal/handlers/websocket"
	"backoffice-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AccountHandler      *accountHandler.AccountHandler
	UserHandler         *userHandler.UserHandler
	RoleHandler         *roleHandler.RoleHandler
	ProductHandler      *productHandler.ProductHandler
	PermissionHandler   *permissionHandler.PermissionHandler
	NotificationHandler *notificationHandler.NotificationHandler
	WSHandler           *wsHandler.WebSocketHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	// Every request gets a gate; routes below decide what it must hold.
	r.Use(h.AuthMiddleware.Gate())

	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AccountHandler.Register)
		authPublic.POST("/login", h.AccountHandler.Login)
		authPublic.POST("/forgot-password", h.AccountHandler.ForgotPassword)
		authPublic.POST("/reset-password", h.AccountHandler.ResetPassword)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.RequireAuthenticated())
	{
		authProtected.GET("/me", h.AccountHandler.Me)
		authProtected.PUT("/profile", h.AccountHandler.UpdateProfile)
		authProtected.POST("/photo", h.AccountHandler.UploadPhoto)
	}

	// ==================== Users ====================
	users := api.Group("/users")
	{
		users.GET("", h.AuthMiddleware.RequirePermission("Users:Users"), h.UserHandler.List)
		users.GET("/dropdown", h.AuthMiddleware.RequireAny("Users:Users", "Users:User"), h.UserHandler.Dropdown)
		users.GET("/:id", h.AuthMiddleware.RequirePermission("Users:User"), h.UserHandler.Get)
		users.POST("", h.AuthMiddleware.RequirePermission("Users:Create"), h.UserHandler.Create)
		users.PUT("/:id", h.AuthMiddleware.RequirePermission("Users:Update"), h.UserHandler.Update)
		users.DELETE("/:id", h.AuthMiddleware.RequirePermission("Users:Delete"), h.UserHandler.Delete)
		users.PUT("/:id/restore", h.AuthMiddleware.RequirePermission("Users:Update"), h.UserHandler.Restore)
	}

	// ==================== Roles ====================
	roles := api.Group("/roles")
	{
		roles.GET("", h.AuthMiddleware.RequirePermission("Roles:Roles"), h.RoleHandler.List)
		roles.GET("/dropdown", h.AuthMiddleware.RequireAny("Roles:Roles", "Roles:Role"), h.RoleHandler.Dropdown)
		roles.GET("/:id", h.AuthMiddleware.RequirePermission("Roles:Role"), h.RoleHandler.Get)
		roles.POST("", h.AuthMiddleware.RequirePermission("Roles:Create"), h.RoleHandler.Create)
		roles.PUT("/:id", h.AuthMiddleware.RequirePermission("Roles:Update"), h.RoleHandler.Update)
		roles.DELETE("/:id", h.AuthMiddleware.RequirePermission("Roles:Delete"), h.RoleHandler.Delete)
	}

	// ==================== Products ====================
	products := api.Group("/products")
	{
		products.GET("", h.AuthMiddleware.RequirePermission("Products:Products"), h.ProductHandler.List)
		products.GET("/dropdown", h.AuthMiddleware.RequireAny("Products:Products", "Products:Product"), h.ProductHandler.Dropdown)
		products.GET("/:id", h.AuthMiddleware.RequirePermission("Products:Product"), h.ProductHandler.Get)
		products.POST("", h.AuthMiddleware.RequirePermission("Products:Create"), h.ProductHandler.Create)
		products.PUT("/:id", h.AuthMiddleware.RequirePermission("Products:Update"), h.ProductHandler.Update)
		products.DELETE("/:id", h.AuthMiddleware.RequirePermission("Products:Delete"), h.ProductHandler.Delete)
	}

	// ==================== Permissions ====================
	// The catalog feeds the role editor, so role readers can fetch it.
	api.GET("/permissions", h.AuthMiddleware.RequireAny("Roles:Roles", "Roles:Role"), h.PermissionHandler.List)

	// ==================== Notifications ====================
	notifications := api.Group("/notifications")
	notifications.Use(h.AuthMiddleware.RequireAuthenticated())
	{
		notifications.GET("/unread", h.NotificationHandler.Unread)
		notifications.PUT("/read", h.NotificationHandler.MarkAsRead)
		notifications.POST("", h.AuthMiddleware.RequirePermission("Users:Update"), h.NotificationHandler.Push)
	}

	// ==================== WebSocket Stats ====================
	api.GET("/ws/stats", h.AuthMiddleware.RequirePermission("Users:Users"), h.WSHandler.GetStats)
}
