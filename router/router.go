package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cravely/tableside/config"
	"github.com/cravely/tableside/controllers"
	"github.com/cravely/tableside/middlewares"
	"github.com/cravely/tableside/realtime"
	"github.com/cravely/tableside/services"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitInterval).RateLimit())

	// QR images and menu photos.
	r.Static("/uploads", cfg.UploadsDir)

	pusher := services.NewPusher(db)
	provisioner := services.NewQRProvisioner(db, cfg.BaseURL, cfg.UploadsDir)

	userCtrl := controllers.NewUserController(db)
	guestCtrl := controllers.NewGuestController(db)
	menuCtrl := controllers.NewMenuController(db)
	tableCtrl := controllers.NewTableController(db, hub, provisioner)
	orderCtrl := controllers.NewOrderController(db, hub, pusher)
	requestCtrl := controllers.NewRequestController(db, hub, pusher)
	adminCtrl := controllers.NewAdminController(db)
	wsCtrl := controllers.NewWSController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES (guest)
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// QR deep link: loads the menu and binds the session to the table.
	r.GET("/r/:restaurant_id/t/:table_id", guestCtrl.ResolveDeepLink)
	r.GET("/r/:restaurant_id/t/:table_id/menu", guestCtrl.ResolveDeepLink)

	// Guest ordering and side-channel requests, no auth.
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/requests/bill", requestCtrl.CreateBillRequest)
	r.POST("/requests/assistance", requestCtrl.CreateAssistanceRequest)

	// Guest watches their table's orders move.
	r.GET("/ws/guest/:restaurant_id/:table_id", wsCtrl.GuestWS)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES (staff)
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", middlewares.RequireRoles("staff", "kitchen"), orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// REQUESTS
	auth.GET("/requests", requestCtrl.GetRequests)
	auth.PATCH("/requests/:kind/:request_id", middlewares.RequireRoles("staff"), requestCtrl.ResolveRequest)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", middlewares.RequireRoles("staff"), tableCtrl.CreateTable)
	auth.POST("/tables/provision", middlewares.RequireRoles("staff"), tableCtrl.ProvisionTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", middlewares.RequireRoles("staff"), tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", middlewares.RequireRoles("staff"), tableCtrl.DeleteTable)

	// MENU
	auth.GET("/menus", menuCtrl.GetAllMenuItems)
	auth.POST("/menus", middlewares.RequireRoles("staff"), menuCtrl.CreateMenuItem)
	auth.GET("/menus/:menu_id", menuCtrl.GetMenuItemByID)
	auth.PATCH("/menus/:menu_id", middlewares.RequireRoles("staff", "kitchen"), menuCtrl.UpdateMenuItem)
	auth.DELETE("/menus/:menu_id", middlewares.RequireRoles("staff"), menuCtrl.DeleteMenuItem)

	// SESSIONS
	auth.POST("/sessions/:session_key/end", middlewares.RequireRoles("staff"), guestCtrl.EndSession)

	// DASHBOARD
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	// Staff realtime stream, token in the query string.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/staff", wsCtrl.StaffWS)
	}

	return r
}
