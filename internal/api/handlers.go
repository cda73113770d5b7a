// Package api wires up the Gin HTTP router with the caller-facing intake
// endpoint and exposes the coordination core over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"groupdtc/internal/coordinator"
)

// Handler holds the coordinator injected from main.
type Handler struct {
	coord *coordinator.Coordinator
}

// NewHandler creates a Handler.
func NewHandler(coord *coordinator.Coordinator) *Handler {
	return &Handler{coord: coord}
}

// Register mounts all routes on r.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/dtc/", h.Coordinate)
	r.GET("/cluster/status/:groupId", h.ClusterStatus)
}

// dtcRequest is the caller-facing intake body (spec.md §6).
type dtcRequest struct {
	GroupID string `json:"groupId" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

// dtcResponse carries the terminal state; HTTP status is 200 for every
// terminal state, the State field carries the outcome (spec.md §6).
type dtcResponse struct {
	State string `json:"State"`
}

// Coordinate handles POST /dtc/.
func (h *Handler) Coordinate(c *gin.Context) {
	var body dtcRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.coord.Coordinate(c.Request.Context(), body.GroupID, body.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtcResponse{State: state.String()})
}

// ClusterStatus handles GET /cluster/status/:groupId — a diagnostic that
// fans Get out to every replica and reports each one's raw outcome, never
// on the transaction path (spec.md §4.1; supplemented from
// original_source/consumer/client.py's get).
func (h *Handler) ClusterStatus(c *gin.Context) {
	groupID := c.Param("groupId")

	outcomes := h.coord.ClusterStatus(c.Request.Context(), groupID)
	statuses := make([]string, len(outcomes))
	for i, o := range outcomes {
		statuses[i] = o.String()
	}

	c.JSON(http.StatusOK, gin.H{"groupId": groupID, "replicas": statuses})
}
