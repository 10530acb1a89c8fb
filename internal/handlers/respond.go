package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// parseID validates the 24-hex id format at the boundary so the services
// only ever see well-formed ids.
func parseID(c *gin.Context) (bson.ObjectID, bool) {
	raw := c.Param("id")
	if !objectIDPattern.MatchString(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return bson.ObjectID{}, false
	}
	return id, true
}

// HealthCheck is the liveness endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondStoreError maps store-layer failures to responses. The raw error is
// logged, never returned: connection errors can embed endpoint details that
// must not cross the boundary.
func respondStoreError(c *gin.Context, err error, message string) {
	log.Printf("%s: %v", message, err)
	switch {
	case errors.Is(err, database.ErrBuildPhaseSkip):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database access is disabled during build"})
	case errors.Is(err, database.ErrConnection):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
