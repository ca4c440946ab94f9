package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels/pkg/logger"
	"rentwheels/pkg/models"
	"rentwheels/service"
)

type BookingHandler struct {
	svc service.BookingService
	log logger.ILogger
}

func NewBookingHandler(svc service.BookingService, log logger.ILogger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	ident := identityFrom(c)

	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON"})
		return
	}

	created, err := h.svc.CreateBooking(c.Request.Context(), ident.Email, &booking)
	if err != nil {
		fail(c, err, "Failed to add booking")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"booking": created,
	})
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	ident := identityFrom(c)

	bookings, err := h.svc.ListBookings(c.Request.Context(), ident.Email)
	if err != nil {
		fail(c, err, "Failed to fetch bookings")
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	ident := identityFrom(c)

	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON"})
		return
	}

	updated, err := h.svc.UpdateBooking(c.Request.Context(), ident.Email, c.Param("id"), &patch)
	if err != nil {
		fail(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated",
		"booking": updated,
	})
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	ident := identityFrom(c)

	if err := h.svc.DeleteBooking(c.Request.Context(), ident.Email, c.Param("id")); err != nil {
		fail(c, err, "Failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted & car status updated"})
}
