package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/postdigester/donation-backend/internal/comments"
	"github.com/postdigester/donation-backend/internal/records"
	"github.com/postdigester/donation-backend/pkg/logger"
)

type CommentRequest struct {
	Comments string `json:"comments" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// CommunityHandler serves the append-only feeds: comments, testimonials and volunteers.
type CommunityHandler struct {
	comments     *comments.Service
	testimonials records.Store
	volunteers   records.Store
}

func NewCommunityHandler(c *comments.Service, testimonials, volunteers records.Store) *CommunityHandler {
	return &CommunityHandler{comments: c, testimonials: testimonials, volunteers: volunteers}
}

func (h *CommunityHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/comments", h.AddComment)
	rg.GET("/comments", listRecords("comments", "Comments fetched successfully", h.comments.List))

	rg.POST("/testimonial", createRecord("testimonial", "testimonial added successfully", h.testimonials))
	rg.GET("/testimonial", listRecords("testimonial", "testimonial fetched successfully", h.testimonials.List))

	rg.POST("/volunteer", createRecord("volunteer", "volunteer added successfully", h.volunteers))
	rg.GET("/volunteer", listRecords("volunteer", "volunteer fetched successfully", h.volunteers.List))
}

func (h *CommunityHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	res, err := h.comments.Add(c.Request.Context(), req.Email, req.Comments)
	if errors.Is(err, comments.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		logger.Errorf("add comment for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "comments added successfully", "result": res})
}

func createRecord(kind, msg string, store records.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc bson.M
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "request body must be a JSON object"})
			return
		}
		res, err := store.Insert(c.Request.Context(), doc)
		if err != nil {
			logger.Errorf("create %s: %v", kind, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save " + kind})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg, "result": res})
	}
}

func listRecords(kind, msg string, list func(ctx context.Context) ([]bson.M, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := list(c.Request.Context())
		if err != nil {
			logger.Errorf("list %s: %v", kind, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve " + kind})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "result": out})
	}
}
