// README: Transcript row model.
package transcript

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit caps how many turns History returns.
const DefaultHistoryLimit = 50

// Entry is one answered turn.
type Entry struct {
	ID             uuid.UUID `json:"id"`
	ConversationID string    `json:"conversationId"`
	TurnCount      int       `json:"turnCount"`
	Message        string    `json:"message"`
	ActionID       string    `json:"actionId,omitempty"`
	ResponseType   string    `json:"responseType"`
	Reply          string    `json:"reply"`
	CreatedAt      time.Time `json:"createdAt"`
}
