// README: Transcript store backed by PostgreSQL.
package transcript

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO turns (id, conversation_id, turn_count, message, action_id, response_type, reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.ConversationID, e.TurnCount, e.Message, e.ActionID, e.ResponseType, e.Reply, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// List returns up to limit turns of a conversation, oldest first.
func (s *Store) List(ctx context.Context, conversationID string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, conversation_id, turn_count, message, action_id, response_type, reply, created_at
		FROM (
			SELECT * FROM turns WHERE conversation_id = $1 ORDER BY created_at DESC LIMIT $2
		) recent
		ORDER BY created_at ASC
	`, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.ConversationID, &e.TurnCount, &e.Message, &e.ActionID, &e.ResponseType, &e.Reply, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan turns: %w", err)
	}
	return entries, nil
}
