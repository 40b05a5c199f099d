package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postdigester/donation-backend/internal/donation"
	"github.com/postdigester/donation-backend/internal/donation/service"
	"github.com/postdigester/donation-backend/internal/models"
	"github.com/postdigester/donation-backend/pkg/logger"
)

// RegisterDonationRoutes mounts donation CRUD and the statistics aggregate on rg (normally /api/v1).
func RegisterDonationRoutes(rg *gin.RouterGroup, svc service.Service) {
	rg.POST("/donations", func(c *gin.Context) {
		var body donation.Donation
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "request body must be a JSON object"})
			return
		}
		id, err := svc.Create(c.Request.Context(), body)
		if err != nil {
			internalError(c, "Failed to create donation", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Donation created successfully",
			"result":  models.InsertResult{Acknowledged: true, InsertedID: id},
		})
	})

	rg.GET("/donations", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			internalError(c, "Failed to retrieve donations", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "All Donation retrieved successfully",
			"result":  list,
		})
	})

	rg.GET("/donations/:id", func(c *gin.Context) {
		d, err := svc.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Donation not found"})
			return
		}
		if err != nil {
			// malformed ids land here too
			internalError(c, "Internal server error", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Donation fetched successfully",
			"result":  d,
		})
	})

	rg.PATCH("/donations/:id", func(c *gin.Context) {
		var fields donation.Donation
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "request body must be a JSON object"})
			return
		}
		d, err := svc.Update(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			internalError(c, "Failed to update donation", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Donation updated successfully",
			"result":  d,
		})
	})

	rg.DELETE("/donations/:id", func(c *gin.Context) {
		d, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c, "Failed to delete donation", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Donation deleted successfully",
			"result":  d,
		})
	})

	rg.GET("/statistics", func(c *gin.Context) {
		stats, err := svc.Statistics(c.Request.Context())
		if err != nil {
			internalError(c, "Failed to compute statistics", err)
			return
		}
		c.JSON(http.StatusOK, stats)
	})
}

func internalError(c *gin.Context, msg string, err error) {
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}
