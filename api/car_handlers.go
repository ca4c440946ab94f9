package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentwheels/pkg/apperror"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/models"
	"rentwheels/service"
)

type CarHandler struct {
	svc service.CarService
	log logger.ILogger
}

func NewCarHandler(svc service.CarService, log logger.ILogger) *CarHandler {
	return &CarHandler{svc: svc, log: log}
}

func (h *CarHandler) GetCars(c *gin.Context) {
	cars, err := h.svc.GetCars(c.Request.Context(), c.Query("providerEmail"))
	if err != nil {
		fail(c, err, "Failed to get cars")
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) SearchCars(c *gin.Context) {
	cars, err := h.svc.SearchCars(c.Request.Context(), c.Query("search"))
	if err != nil {
		fail(c, err, "Search failed")
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) GetLatestCars(c *gin.Context) {
	cars, err := h.svc.GetLatestCars(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to fetch cars")
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	c.JSON(http.StatusOK, cars)
}

// GetCar answers 200 with a JSON null for a missing car; only a
// malformed id is an error.
func (h *CarHandler) GetCar(c *gin.Context) {
	car, err := h.svc.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperror.IsNotFound(err) {
			c.JSON(http.StatusOK, nil)
			return
		}
		fail(c, err, "Failed to get car")
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) AddCar(c *gin.Context) {
	ident := identityFrom(c)

	var car models.Car
	if err := c.ShouldBindJSON(&car); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON"})
		return
	}

	created, err := h.svc.AddCar(c.Request.Context(), ident.Email, &car)
	if err != nil {
		fail(c, err, "Failed to add car")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Car added successfully",
		"car":     created,
	})
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	var patch models.CarPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON"})
		return
	}

	updated, err := h.svc.UpdateCar(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		fail(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Car updated successfully",
		"car":     updated,
	})
}

func (h *CarHandler) UpdateCarStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON"})
		return
	}

	if err := h.svc.UpdateCarStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		fail(c, err, "Failed to update status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated"})
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	if err := h.svc.DeleteCar(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Failed to delete car")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Car deleted successfully"})
}
