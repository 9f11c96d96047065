package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-allocation/controllers"
	"hotel-allocation/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(ac *controllers.AllocationController) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/bookings", ac.CreateBooking)
		api.GET("/bookings", ac.ListBookings)
		api.GET("/bookings/:id", ac.GetBooking)
		api.PATCH("/bookings/:id/dates", ac.ModifyDates)
		api.POST("/bookings/:id/transition", ac.TransitionBooking)
		api.POST("/bookings/:id/check-in", ac.CheckIn)
		api.POST("/bookings/:id/check-out", ac.CheckOut)
		api.POST("/bookings/:id/finalize", ac.FinalizeCheckOut)
		api.POST("/bookings/:id/cancel", ac.CancelBooking)

		api.GET("/availability", ac.CheckAvailability)

		api.GET("/rooms", controllers.GetRooms)
		api.POST("/rooms", controllers.CreateRoom)
		api.PATCH("/rooms/:id/housekeeping", controllers.SetHousekeepingStatus)
		api.DELETE("/rooms/:id", controllers.RetireRoom)
	}

	return r
}
