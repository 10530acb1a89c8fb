package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/dtos"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/repository"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/services"
)

type CandidateHandler struct {
	Candidates  *repository.CandidateRepository
	Transitions *services.TransitionService
}

// NewCandidateHandler creates the handler with dependencies
func NewCandidateHandler(candidates *repository.CandidateRepository, transitions *services.TransitionService) *CandidateHandler {
	return &CandidateHandler{
		Candidates:  candidates,
		Transitions: transitions,
	}
}

// List is the GET /candidates endpoint
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.Candidates.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to fetch candidates")
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Get is the GET /candidates/:id endpoint
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	candidate, err := h.Candidates.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return
		}
		respondStoreError(c, err, "Failed to fetch candidate")
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Create is the POST /candidates endpoint. New candidates always start in
// the New stage with a seeded stage record.
func (h *CandidateHandler) Create(c *gin.Context) {
	var req dtos.CandidateCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate payload: " + err.Error()})
		return
	}

	now := time.Now().UTC()
	candidate := &models.Candidate{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Source:        strings.TrimSpace(req.Source),
		SourceContact: strings.TrimSpace(req.SourceContact),
		Position:      strings.TrimSpace(req.Position),
		RequestedPay:  req.RequestedPay,
		Status:        models.StageNew,
		Stages: map[string]models.StageRecord{
			models.StageNew: models.InitialStageRecord(now),
		},
		CreatedAt: now,
	}

	id, err := h.Candidates.Insert(c.Request.Context(), candidate)
	if err != nil {
		respondStoreError(c, err, "Failed to create candidate")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id.Hex()})
}

// UpdateStatus is the PATCH /candidates/:id endpoint: one stage transition.
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dtos.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transition payload: " + err.Error()})
		return
	}

	result, err := h.Transitions.Transition(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStage),
			errors.Is(err, services.ErrMissingReviewer),
			errors.Is(err, services.ErrMissingNotes),
			errors.Is(err, services.ErrNoOpUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			respondStoreError(c, err, "Failed to update candidate status")
		}
		return
	}

	resp := gin.H{"success": true, "status": result.Status}
	if result.CascadeWarning != "" {
		resp["warning"] = result.CascadeWarning
	}
	c.JSON(http.StatusOK, resp)
}

// Delete is the DELETE /candidates/:id endpoint
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := h.Candidates.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Failed to delete candidate")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
