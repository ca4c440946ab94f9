// Package api exposes the HTTP surface: public catalog reads and
// authenticated car/booking mutations.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels/config"
	"rentwheels/pkg/apperror"
	"rentwheels/pkg/auth"
	"rentwheels/pkg/logger"
	"rentwheels/service"
)

func NewRouter(cfg config.Config, svc service.IServiceManager, verifier auth.Verifier, log logger.ILogger) *gin.Engine {
	if cfg.LoggerLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	cars := NewCarHandler(svc.Car(), log)
	bookings := NewBookingHandler(svc.Booking(), log)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Rent Wheels API is running")
	})

	router.GET("/cars", cars.GetCars)
	router.GET("/search", cars.SearchCars)
	router.GET("/latest-cars", cars.GetLatestCars)
	router.GET("/cars/:id", cars.GetCar)

	authed := router.Group("", Authenticate(verifier, log))
	{
		authed.POST("/cars", cars.AddCar)
		authed.PUT("/cars/:id", cars.UpdateCar)
		authed.PATCH("/cars/:id", cars.UpdateCarStatus)
		authed.DELETE("/cars/:id", cars.DeleteCar)

		authed.POST("/booking", bookings.CreateBooking)
		authed.GET("/booking", bookings.ListBookings)
		authed.PUT("/booking/:id", bookings.UpdateBooking)
		authed.DELETE("/booking/:id", bookings.DeleteBooking)
	}

	return router
}

// fail maps an error to one JSON response; fallback is the message for
// errors outside the apperror taxonomy.
func fail(c *gin.Context, err error, fallback string) {
	c.JSON(apperror.Status(err), gin.H{
		"success": false,
		"message": apperror.UserMessage(err, fallback),
	})
}
