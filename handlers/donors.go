package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postdigester/donation-backend/internal/donor"
	"github.com/postdigester/donation-backend/internal/models"
	"github.com/postdigester/donation-backend/pkg/logger"
)

type DonorRequest struct {
	Email  string  `json:"email" binding:"required"`
	Name   string  `json:"name"`
	Image  string  `json:"image"`
	Amount float64 `json:"amount"`
}

type DonorHandler struct {
	svc *donor.Service
}

func NewDonorHandler(s *donor.Service) *DonorHandler {
	return &DonorHandler{svc: s}
}

func (h *DonorHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/donor", h.Record)
	rg.GET("/donor", h.List)
}

// Record answers 200 for both a new donor and a repeat contribution; the
// payload key tells them apart ("result" vs "updatedDonation").
func (h *DonorHandler) Record(c *gin.Context) {
	var req DonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	receipt, err := h.svc.RecordDonation(c.Request.Context(), models.Donor{
		Email:  req.Email,
		Name:   req.Name,
		Image:  req.Image,
		Amount: req.Amount,
	})
	if err != nil {
		logger.Errorf("record donor %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record donation"})
		return
	}
	body := gin.H{"success": true, "message": "You provided Donation successfully!"}
	if receipt.Inserted != nil {
		body["result"] = receipt.Inserted
	} else {
		body["updatedDonation"] = receipt.Updated
	}
	c.JSON(http.StatusOK, body)
}

func (h *DonorHandler) List(c *gin.Context) {
	data, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list donors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve donors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "successfully retrieve donors!", "data": data})
}
