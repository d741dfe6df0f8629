package routes

import (
	"log/slog"
	"slices"

	"motorcycles-backend/config"
	"motorcycles-backend/controllers"
	"motorcycles-backend/sales"
	"motorcycles-backend/services"
	"motorcycles-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(s *config.Settings) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(s.AllowedOrigins, origin)
		},
	}))

	r.Use(config.RequestID())
	r.Use(config.PerformanceLogger(s.SlowRequest))

	authMiddleware := func(c *gin.Context) { c.Next() }
	if s.JWTSecret != "" {
		authMiddleware = utils.AuthMiddleware(s.JWTSecret)
	} else {
		slog.Warn("JWT_SECRET not set, API authentication is disabled")
	}

	authController := controllers.AuthController{Secret: s.JWTSecret, Expiry: s.JWTExpiry}
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(authMiddleware)
		auth.GET("/me", authController.Me)
		auth.GET("/profile", controllers.GetProfile)
		auth.PUT("/profile", controllers.UpdateProfile)
		auth.PUT("/password", controllers.ChangePassword)
	}

	r.GET("/api/health", controllers.Health)

	var receipts services.ReceiptSender
	if n := services.NewNotificationService(config.DB, s.Twilio); n != nil {
		receipts = n
	}
	saleController := controllers.SaleController{
		Service: services.NewSaleService(config.DB, receipts, s.Location()),
	}

	api := r.Group("/api")
	api.Use(authMiddleware)
	{
		// Motorcycle routes
		motorcycles := api.Group("/motorcycles")
		{
			motorcycles.POST("", controllers.CreateMotorcycle)
			motorcycles.GET("", controllers.GetMotorcycles)
			motorcycles.GET("/:id", controllers.GetMotorcycle)
			motorcycles.PUT("/:id", controllers.UpdateMotorcycle)
			motorcycles.DELETE("/:id", controllers.DeleteMotorcycle)
			motorcycles.GET("/:id/dependencies", controllers.CheckDependencies(sales.KindMotorcycle))
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.GET("/:id/dependencies", controllers.CheckDependencies(sales.KindCustomer))
		}

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)          // GET /api/employees
			employees.POST("", controllers.AddEmployee)          // POST /api/employees
			employees.GET("/:id", controllers.GetEmployee)       // GET /api/employees/:id
			employees.PUT("/:id", controllers.UpdateEmployee)    // PUT /api/employees/:id
			employees.DELETE("/:id", controllers.DeleteEmployee) // DELETE /api/employees/:id
			employees.GET("/:id/dependencies", controllers.CheckDependencies(sales.KindEmployee))
		}

		// Sale routes
		saleRoutes := api.Group("/sales")
		{
			saleRoutes.POST("", saleController.CreateSale)
			saleRoutes.GET("", saleController.GetSales)
			saleRoutes.GET("/:id", saleController.GetSale)
			saleRoutes.GET("/:id/details", saleController.GetSale)
			saleRoutes.PUT("/:id", saleController.UpdateSale)
			saleRoutes.DELETE("/:id", saleController.DeleteSale)
			saleRoutes.POST("/:id/receipt", saleController.SendReceipt)
			saleRoutes.GET("/:id/notifications", controllers.GetSaleNotifications)
		}

		details := api.Group("/detail-sales")
		{
			details.GET("", controllers.GetDetailSales)
			details.GET("/:id", controllers.GetDetailSale)
			details.GET("/sale/:saleId", controllers.GetDetailSalesBySale)
		}

		api.GET("/notifications", controllers.GetNotificationLogs)

		//Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
