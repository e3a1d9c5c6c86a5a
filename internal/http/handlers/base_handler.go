// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/modules/session"
	"tripmate/internal/service"
	"tripmate/internal/validation"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// apologyResponse is the transport-failure shape: a reply and no data.
type apologyResponse struct {
	Reply string `json:"reply"`
}

// isValidID accepts 1-64 characters of [A-Za-z0-9-], which covers generated uuids.
func isValidID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: validation.ErrInvalidRequest.Error(), Details: verr.Details})
	case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, validation.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		_ = c.Error(err)
		writeJSON(c, http.StatusGatewayTimeout, apologyResponse{Reply: service.ApologyReply})
	default:
		_ = c.Error(err)
		writeJSON(c, http.StatusInternalServerError, apologyResponse{Reply: service.ApologyReply})
	}
}
