package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"homeserve-backend/config"
	"homeserve-backend/models"
	"homeserve-backend/routes"
	"homeserve-backend/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.Connect()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql DB: %v", err)
	}
	defer sqlDB.Close()

	db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Service{},
		&models.ServiceAddOn{},
		&models.Booking{},
		&models.BookingItem{},
		&models.PaymentTransaction{},
		&models.ReminderLog{},
	)

	reminders := services.NewReminderService(db)
	reminders.StartScheduler()
	defer reminders.StopScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(db)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
