package main

import (
	"fmt"
	"log"
	"os"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/routes"
	"serenity-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Package{},
		&models.AddOnService{},
		&models.Appointment{},
		&models.Customer{},
		&models.CustomerHealthInfo{},
		&models.CustomerPreferences{},
		&models.CustomerCommunication{},
		&models.NoteTemplate{},
		&models.Expense{},
		&models.RevenueRecord{},
		&models.BusinessSettings{},
		&models.BusinessHours{},
		&models.BookingSettings{},
		&models.BlockedDate{},
		&models.WebsiteContent{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	services.NewRevenueSyncService(config.DB).StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
