// README: Transcript service recording answered turns.
package transcript

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripmate/internal/assistant"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Record appends one answered turn. The response type is empty when the
// result carried no structured payload.
func (s *Service) Record(ctx context.Context, conversationID string, turn assistant.Turn, res assistant.TurnResult) error {
	e := Entry{
		ID:             uuid.New(),
		ConversationID: conversationID,
		TurnCount:      turn.TurnCount,
		Message:        turn.Message,
		ActionID:       turn.ActionID,
		Reply:          res.Reply,
		CreatedAt:      s.now().UTC(),
	}
	if res.Data != nil && res.Data.ResponseBlock != nil {
		e.ResponseType = string(res.Data.ResponseBlock.Type)
	}
	return s.store.Append(ctx, e)
}

func (s *Service) History(ctx context.Context, conversationID string) ([]Entry, error) {
	return s.store.List(ctx, conversationID, DefaultHistoryLimit)
}
