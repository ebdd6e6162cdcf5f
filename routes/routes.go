package routes

import (
	"os"
	"strings"

	"serenity-backend/config"
	"serenity-backend/controllers"
	"serenity-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Public site endpoints
	api := r.Group("/api")
	{
		api.GET("/packages", controllers.GetActivePackages)
		api.GET("/addons", controllers.GetActiveAddons)
		api.GET("/content", controllers.GetContent)
		api.POST("/booking", controllers.CreateBooking)
	}

	admin := r.Group("/api/admin")
	admin.Use(utils.AuthMiddleware())
	{
		// Appointment routes
		appointments := admin.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.POST("", controllers.CreateAppointment)
			appointments.PATCH("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Package routes
		packages := admin.Group("/packages")
		{
			packages.GET("", controllers.GetPackages)
			packages.GET("/:id", controllers.GetPackage)
			packages.POST("", controllers.CreatePackage)
			packages.PATCH("/:id", controllers.UpdatePackage)
			packages.DELETE("/:id", controllers.DeletePackage)
		}

		// Addon routes
		addons := admin.Group("/addons")
		{
			addons.GET("", controllers.GetAddons)
			addons.POST("", controllers.CreateAddon)
			addons.PATCH("/:id", controllers.UpdateAddon)
			addons.DELETE("/:id", controllers.DeleteAddon)
		}

		// Customer routes
		customers := admin.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.POST("", controllers.CreateCustomer)
			customers.PATCH("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.PATCH("/:id/health-info", controllers.UpdateCustomerHealthInfo)
			customers.PATCH("/:id/preferences", controllers.UpdateCustomerPreferences)
		}

		// Communication routes
		communications := admin.Group("/communications")
		{
			communications.GET("", controllers.GetCommunications)
			communications.POST("", controllers.CreateCommunication)
			communications.DELETE("/:id", controllers.DeleteCommunication)
		}

		// Note template routes
		templates := admin.Group("/note-templates")
		{
			templates.GET("", controllers.GetNoteTemplates)
			templates.GET("/:id", controllers.GetNoteTemplate)
			templates.POST("", controllers.CreateNoteTemplate)
			templates.PATCH("/:id", controllers.UpdateNoteTemplate)
			templates.DELETE("/:id", controllers.DeleteNoteTemplate)
		}

		// Settings routes
		admin.GET("/settings/business", controllers.GetBusinessSettings)
		admin.PATCH("/settings/business", controllers.UpdateBusinessSettings)

		// Availability routes
		availability := admin.Group("/availability")
		{
			availability.GET("/hours", controllers.GetBusinessHours)
			availability.PATCH("/hours", controllers.UpdateBusinessHours)
			availability.GET("/booking-settings", controllers.GetBookingSettings)
			availability.PATCH("/booking-settings", controllers.UpdateBookingSettings)
			availability.GET("/blocked-dates", controllers.GetBlockedDates)
			availability.POST("/blocked-dates", controllers.CreateBlockedDate)
			availability.DELETE("/blocked-dates/:id", controllers.DeleteBlockedDate)
		}

		// Finance routes
		financeController := controllers.FinanceController{}
		finances := admin.Group("/finances")
		{
			finances.GET("/expenses", controllers.GetExpenses)
			finances.GET("/expenses/:id", controllers.GetExpense)
			finances.POST("/expenses", controllers.CreateExpense)
			finances.PATCH("/expenses/:id", controllers.UpdateExpense)
			finances.DELETE("/expenses/:id", controllers.DeleteExpense)
			finances.GET("/reports", financeController.GetFinanceReport)
			finances.GET("/reports/stats", financeController.GetFinanceStats)
		}

		// Report routes
		reportController := controllers.ReportController{}
		admin.GET("/reports/appointments", reportController.GetAppointmentReport)
		admin.GET("/reports/appointments/stats", reportController.GetAppointmentStats)

		// Revenue routes
		admin.GET("/revenue", controllers.GetRevenue)
		admin.GET("/revenue/stats", controllers.GetRevenueStats)

		// Content routes
		admin.GET("/content", controllers.GetContent)
		admin.PATCH("/content", controllers.UpdateContent)

		// Dashboard routes
		admin.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
