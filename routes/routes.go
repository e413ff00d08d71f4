package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homeserve-backend/config"
	"homeserve-backend/controllers"
	"homeserve-backend/models"
	"homeserve-backend/utils"
)

func corsOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	authCtl := &controllers.AuthController{DB: db}
	serviceCtl := &controllers.ServiceController{DB: db}
	addressCtl := &controllers.AddressController{DB: db}
	bookingCtl := &controllers.BookingController{DB: db}
	paymentCtl := &controllers.PaymentController{DB: db}

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/auth/register", authCtl.Register)
		api.POST("/auth/login", authCtl.Login)
		api.GET("/services", serviceCtl.GetServices)
		api.GET("/services/:id", serviceCtl.GetService)
		api.POST("/bookings/quote", bookingCtl.Quote)

		// Authenticated routes
		authed := api.Group("")
		authed.Use(utils.AuthMiddleware())
		{
			authed.GET("/me", authCtl.Me)

			account := authed.Group("/account")
			{
				account.GET("/addresses", addressCtl.GetAddresses)
				account.POST("/addresses", addressCtl.CreateAddress)
				account.PUT("/addresses/:id", addressCtl.UpdateAddress)
				account.DELETE("/addresses/:id", addressCtl.DeleteAddress)
				account.GET("/bookings", bookingCtl.GetMyBookings)
			}

			authed.POST("/bookings", bookingCtl.CreateBooking)
			authed.GET("/bookings/:id", bookingCtl.GetBooking)

			payments := authed.Group("/payments")
			{
				payments.POST("/razorpay/intent", paymentCtl.CreateRazorpayIntent)
				payments.POST("/stripe/intent", paymentCtl.CreateStripeIntent)
			}

			admin := authed.Group("/admin")
			admin.Use(utils.RequireRole(string(models.RoleAdmin)))
			{
				admin.POST("/services", serviceCtl.CreateService)
				admin.PUT("/services/:id", serviceCtl.UpdateService)
				admin.DELETE("/services/:id", serviceCtl.DeleteService)
				admin.GET("/bookings", bookingCtl.GetAllBookings)
				admin.PATCH("/bookings/:id/status", bookingCtl.UpdateBookingStatus)
			}

			staff := authed.Group("/staff")
			staff.Use(utils.RequireRole(string(models.RoleStaff)))
			{
				staff.GET("/jobs/today", bookingCtl.GetTodayJobs)
			}
		}
	}

	return r
}
