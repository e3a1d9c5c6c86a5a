// README: Chat turn and client-side merge handlers.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripmate/internal/assistant"
	"tripmate/internal/service"
	"tripmate/internal/validation"
)

const (
	maxBodyBytes = 256 << 10
	// chatTimeout bounds one turn including any configured reply delay.
	chatTimeout = 30 * time.Second
)

type ChatHandler struct {
	planner   *service.TripPlanner
	validator *validation.Validator
}

func NewChatHandler(planner *service.TripPlanner, validator *validation.Validator) *ChatHandler {
	return &ChatHandler{planner: planner, validator: validator}
}

type chatReq struct {
	Message        string                 `json:"message"`
	TurnCount      int                    `json:"turnCount"`
	TripSnapshot   *assistant.TripContext `json:"tripSnapshot"`
	ActionID       string                 `json:"actionId"`
	ConversationID string                 `json:"conversationId"`
}

type mergeReq struct {
	Current  assistant.ResponsePayload `json:"current"`
	Incoming assistant.ResponsePayload `json:"incoming"`
}

// readBody returns false after writing the error response.
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(c, http.StatusBadRequest, "unreadable body")
		return nil, false
	}
	return body, true
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	if err := h.validator.ChatRequest(body); err != nil {
		writeServiceError(c, err)
		return
	}
	var req chatReq
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	resp, err := h.planner.Chat(ctx, service.ChatRequest{
		ConversationID: req.ConversationID,
		Turn: assistant.Turn{
			Message:      req.Message,
			TurnCount:    req.TurnCount,
			TripSnapshot: req.TripSnapshot,
			ActionID:     req.ActionID,
		},
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// Merge handles POST /api/chat/merge.
func (h *ChatHandler) Merge(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	if err := h.validator.MergeRequest(body); err != nil {
		writeServiceError(c, err)
		return
	}
	var req mergeReq
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	writeJSON(c, http.StatusOK, h.planner.Merge(req.Current, req.Incoming))
}
