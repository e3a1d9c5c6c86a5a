// README: Gazetteer listing handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/service"
)

type DestinationHandler struct {
	planner *service.TripPlanner
}

func NewDestinationHandler(planner *service.TripPlanner) *DestinationHandler {
	return &DestinationHandler{planner: planner}
}

// List handles GET /api/destinations.
func (h *DestinationHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"destinations": h.planner.Destinations()})
}
