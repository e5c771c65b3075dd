package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vectorhire/internal/jobs"
)

// JobHandler serves the seeded demo catalog.
type JobHandler struct{}

// List returns all demo openings.
func (h *JobHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": jobs.List()})
}

// Get returns a single opening by ID.
func (h *JobHandler) Get(c *gin.Context) {
	job, ok := jobs.Get(c.Param("id"))
	if !ok {
		NotFound(c, "job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}
