package handler

import (
	"net/http"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/health"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// GET /api/health
func (h *HealthHandler) Get(c *gin.Context) {
	res := h.checker.Liveness(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":    res.Status,
		"timestamp": res.Timestamp.Format(time.RFC3339Nano),
	})
}
