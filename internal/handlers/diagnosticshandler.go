package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const diagnosticsCollection = "diagnostics"

// DiagnosticsHandler exposes connectivity probes for operators. It talks to
// the session manager directly so a probe exercises the same acquire path
// the repositories use.
type DiagnosticsHandler struct {
	Sessions *database.SessionManager
}

func NewDiagnosticsHandler(sessions *database.SessionManager) *DiagnosticsHandler {
	return &DiagnosticsHandler{Sessions: sessions}
}

// Connection is the GET /diagnostics/connection endpoint: acquires the store
// (which pings) and times a count.
func (h *DiagnosticsHandler) Connection(c *gin.Context) {
	start := time.Now()
	st, err := h.Sessions.Collection(c.Request.Context(), diagnosticsCollection)
	if err != nil {
		respondStoreError(c, err, "Database connection check failed")
		return
	}
	if _, err := st.Count(c.Request.Context(), nil); err != nil {
		respondStoreError(c, err, "Database connection check failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "connected",
		"latencyMs": time.Since(start).Milliseconds(),
	})
}

// Write is the GET /diagnostics/write endpoint: round-trips one throwaway
// document through insert and delete.
func (h *DiagnosticsHandler) Write(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.Sessions.Collection(ctx, diagnosticsCollection)
	if err != nil {
		respondStoreError(c, err, "Database write check failed")
		return
	}

	start := time.Now()
	id, err := st.InsertOne(ctx, bson.M{"probe": "write", "createdAt": time.Now().UTC()})
	if err != nil {
		respondStoreError(c, err, "Database write check failed")
		return
	}
	if _, err := st.DeleteByID(ctx, id); err != nil {
		respondStoreError(c, err, "Database write check failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"roundTripMs": time.Since(start).Milliseconds(),
	})
}
