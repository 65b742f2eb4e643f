package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/controllers"
	"github.com/iternull/kendobar-pos/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Must be registered before the routes below; chains attached
	// afterwards never run for already-registered handlers.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	takeoutCtrl := controllers.NewTakeoutController(db)
	menuCtrl := controllers.NewMenuController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
	}

	// Event stream authenticates via token query param (browser
	// websocket clients cannot set headers).
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.HandleEvents)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.POST("/auth/register", userCtrl.Register)

		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.GET("/tables/:table_num", tableCtrl.GetTable)
		staff.POST("/tables/:table_num/timer", tableCtrl.StartTimer)
		staff.PUT("/tables/:table_num/note", tableCtrl.SaveNote)

		staff.POST("/tables/:table_num/orders", orderCtrl.AddOrder)
		staff.POST("/tables/:table_num/cancel", orderCtrl.CancelOrder)
		staff.POST("/tables/:table_num/complete", paymentCtrl.CompleteTable)

		staff.GET("/orders/active", orderCtrl.GetActiveOrders)
		staff.GET("/orders/completed", orderCtrl.GetCompletedOrders)
		staff.GET("/orders/canceled", orderCtrl.GetCanceledOrders)
		staff.POST("/orders/:order_id/complete", orderCtrl.CompleteOrderLine)

		staff.GET("/menus", menuCtrl.GetMenus)
		staff.GET("/menus/categories", menuCtrl.GetCategories)

		staff.GET("/takeout/number", takeoutCtrl.GetNextNumber)
		staff.POST("/takeout/orders", takeoutCtrl.SubmitOrder)

		staff.GET("/payments", paymentCtrl.ListPayments)
		staff.GET("/payments/export", paymentCtrl.ExportPayments)
	}

	return r
}
