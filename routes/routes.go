package routes

import (
	"os"
	"strings"

	"salonsphere-backend/config"
	"salonsphere-backend/controllers"
	"salonsphere-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles the constructed handler sets the router wires up.
type Controllers struct {
	Auth      *controllers.AuthController
	Clients   *controllers.ClientController
	Services  *controllers.ServiceController
	Bookings  *controllers.BookingController
	Invoices  *controllers.InvoiceController
	Inventory *controllers.InventoryController
	Campaigns *controllers.CampaignController
	Staff     *controllers.StaffController
	Dashboard *controllers.DashboardController
	Overhead  *controllers.OverheadController
	Tenant    *controllers.TenantController
	Events    *controllers.EventsController
	Public    *controllers.PublicController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	utils.RegisterCustomValidations()

	allowedOrigins := []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		allowedOrigins = append(allowedOrigins, strings.Split(extra, ",")...)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", ctrl.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", ctrl.Clients.CreateClient)
			clients.GET("", ctrl.Clients.GetClients)
			clients.GET("/:id", ctrl.Clients.GetClient)
			clients.PUT("/:id", ctrl.Clients.UpdateClient)
			clients.DELETE("/:id", ctrl.Clients.DeleteClient)
		}

		services := api.Group("/services")
		{
			services.POST("", ctrl.Services.CreateService)
			services.GET("", ctrl.Services.GetServices)
			services.GET("/durations", ctrl.Services.GetDurationOptions)
			services.GET("/:id", ctrl.Services.GetService)
			services.PUT("/:id", ctrl.Services.UpdateService)
			services.DELETE("/:id", ctrl.Services.DeleteService)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", ctrl.Bookings.CreateBooking)
			bookings.GET("", ctrl.Bookings.GetBookings)
			bookings.GET("/:id", ctrl.Bookings.GetBooking)
			bookings.PUT("/:id", ctrl.Bookings.UpdateBooking)
			bookings.DELETE("/:id", ctrl.Bookings.DeleteBooking)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", ctrl.Invoices.CreateInvoice)
			invoices.GET("", ctrl.Invoices.GetInvoices)
			invoices.GET("/:id", ctrl.Invoices.GetInvoice)
			invoices.PUT("/:id/pay", ctrl.Invoices.PayInvoice)
			invoices.DELETE("/:id", ctrl.Invoices.DeleteInvoice)
		}

		products := api.Group("/products")
		{
			products.POST("", ctrl.Inventory.CreateProduct)
			products.GET("", ctrl.Inventory.GetProducts)
			products.GET("/:id", ctrl.Inventory.GetProduct)
			products.PUT("/:id", ctrl.Inventory.UpdateProduct)
			products.POST("/:id/adjust", ctrl.Inventory.AdjustStock)
			products.DELETE("/:id", ctrl.Inventory.DeleteProduct)
		}

		campaigns := api.Group("/campaigns")
		{
			campaigns.POST("", ctrl.Campaigns.CreateCampaign)
			campaigns.GET("", ctrl.Campaigns.GetCampaigns)
			campaigns.GET("/:id", ctrl.Campaigns.GetCampaign)
			campaigns.PUT("/:id", ctrl.Campaigns.UpdateCampaign)
			campaigns.POST("/:id/send", ctrl.Campaigns.SendCampaign)
			campaigns.DELETE("/:id", ctrl.Campaigns.DeleteCampaign)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", ctrl.Staff.GetStaff)
			employees.POST("", ctrl.Staff.AddStaff)
			employees.PUT("/:id", ctrl.Staff.UpdateStaff)
			employees.DELETE("/:id", ctrl.Staff.DeleteStaff)
		}

		api.GET("/dashboard", ctrl.Dashboard.GetOverview)

		reports := api.Group("/reports")
		{
			reports.GET("/revenue-series", ctrl.Dashboard.GetRevenueSeries)
			reports.GET("/bookings-series", ctrl.Dashboard.GetBookingSeries)
			reports.GET("/popular-services", ctrl.Dashboard.GetPopularServices)
		}

		overhead := api.Group("/overhead")
		{
			overhead.GET("/settings", ctrl.Overhead.GetSettings)
			overhead.PUT("/settings", ctrl.Overhead.UpdateSettings)
			overhead.GET("/metrics", ctrl.Overhead.GetMetrics)
			overhead.GET("/analysis", ctrl.Overhead.GetAnalysis)
		}

		api.GET("/tenant", ctrl.Tenant.GetTenant)
		api.PUT("/tenant", ctrl.Tenant.UpdateTenant)
		api.GET("/subscription", ctrl.Tenant.GetSubscription)
		api.PUT("/subscription", ctrl.Tenant.UpdateSubscription)

		api.GET("/events", ctrl.Events.Stream)
	}

	public := r.Group("/public")
	public.Use(ctrl.Public.ResolveTenant())
	{
		public.GET("/services", ctrl.Public.ListServices)
		public.POST("/bookings", ctrl.Public.CreateBooking)
	}

	return r
}
