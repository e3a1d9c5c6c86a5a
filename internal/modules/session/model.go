// README: Conversation session model.
package session

import (
	"errors"
	"time"

	"tripmate/internal/assistant"
)

var ErrNotFound = errors.New("session not found")

// Session is the per-conversation state kept between turns.
type Session struct {
	ConversationID string                     `json:"conversationId"`
	TripSnapshot   *assistant.TripContext     `json:"tripSnapshot,omitempty"`
	LatestBlock    *assistant.ResponsePayload `json:"latestBlock,omitempty"`
	TurnCount      int                        `json:"turnCount"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
}
