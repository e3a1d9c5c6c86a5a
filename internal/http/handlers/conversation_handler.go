// README: Conversation lookup and teardown handlers backed by the session store.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/service"
)

type ConversationHandler struct {
	planner *service.TripPlanner
}

func NewConversationHandler(planner *service.TripPlanner) *ConversationHandler {
	return &ConversationHandler{planner: planner}
}

// Get handles GET /api/conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid conversation id")
		return
	}
	conv, err := h.planner.Conversation(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, conv)
}

// Delete handles DELETE /api/conversations/:id.
func (h *ConversationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid conversation id")
		return
	}
	if err := h.planner.EndConversation(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
