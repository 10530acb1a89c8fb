package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/dtos"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type PositionHandler struct {
	Positions *repository.PositionRepository
}

func NewPositionHandler(positions *repository.PositionRepository) *PositionHandler {
	return &PositionHandler{Positions: positions}
}

// List is the GET /positions endpoint
func (h *PositionHandler) List(c *gin.Context) {
	positions, err := h.Positions.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to fetch positions")
		return
	}
	c.JSON(http.StatusOK, positions)
}

// Create is the POST /positions endpoint. New positions always open as Open.
func (h *PositionHandler) Create(c *gin.Context) {
	var req dtos.PositionCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position payload: " + err.Error()})
		return
	}

	position := &models.Position{
		Title:         strings.TrimSpace(req.Title),
		Department:    req.Department,
		HiringManager: strings.TrimSpace(req.HiringManager),
		Timeline:      req.Timeline,
		Status:        models.PositionOpen,
		CreatedAt:     time.Now().UTC(),
	}

	id, err := h.Positions.Insert(c.Request.Context(), position)
	if err != nil {
		respondStoreError(c, err, "Failed to create position")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id.Hex()})
}

// UpdateStatus is the PATCH /positions/:id endpoint: a direct status edit,
// no candidate-side effects.
func (h *PositionHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.PositionStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position payload: " + err.Error()})
		return
	}

	res, err := h.Positions.UpdateFields(c.Request.Context(), id, bson.M{"status": req.Status})
	if err != nil {
		respondStoreError(c, err, "Failed to update position")
		return
	}
	if res.Matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Position not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete is the DELETE /positions/:id endpoint
func (h *PositionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.Positions.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Failed to delete position")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Position not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
