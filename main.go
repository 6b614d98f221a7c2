package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"salonsphere-backend/cache"
	"salonsphere-backend/config"
	"salonsphere-backend/controllers"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"
	"salonsphere-backend/routes"
	"salonsphere-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Booking{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Product{},
		&models.StockMovement{},
		&models.Campaign{},
		&models.CampaignLog{},
		&models.OverheadSettings{},
		&models.Subscription{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store := cache.NewInMemoryCache()
	bus := realtime.NewBus()
	defer bus.Close()

	if err := realtime.NewInvalidator(bus, store).Start(context.Background()); err != nil {
		log.Fatalf("Failed to start cache invalidator: %v", err)
	}

	reportService := services.NewReportService(db, store)
	overheadService := services.NewOverheadService(db)
	campaignService := services.NewCampaignService(db, bus)
	billingService := services.NewBillingService(db, bus)
	resolver := services.NewTenantResolver(db, store)

	campaignService.StartScheduler()
	billingService.StartScheduler()

	r := routes.SetupRouter(routes.Controllers{
		Auth:      controllers.NewAuthController(db),
		Clients:   controllers.NewClientController(db, bus),
		Services:  controllers.NewServiceController(db, bus),
		Bookings:  controllers.NewBookingController(db, bus),
		Invoices:  controllers.NewInvoiceController(db, bus),
		Inventory: controllers.NewInventoryController(db, bus),
		Campaigns: controllers.NewCampaignController(db, bus, campaignService),
		Staff:     controllers.NewStaffController(db, bus),
		Dashboard: controllers.NewDashboardController(db, store, reportService),
		Overhead:  controllers.NewOverheadController(db, bus, overheadService),
		Tenant:    controllers.NewTenantController(db, bus, billingService),
		Events:    controllers.NewEventsController(bus),
		Public:    controllers.NewPublicController(db, bus, resolver),
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
