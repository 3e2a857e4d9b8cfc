package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathID validates a UUID path parameter. A malformed value gets the same
// not-found response as an unknown id, instead of failing the type cast in
// the database.
func pathID(c *gin.Context, name string, notFound error) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return "", false
	}
	return id, true
}
