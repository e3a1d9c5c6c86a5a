// README: Responder contract used by the orchestrator, with the rule-based Engine implementation.
package assistant

import "context"

// Responder produces the reply for one conversational turn. Implementations
// must be deterministic for identical turns and safe for concurrent use.
type Responder interface {
	Respond(ctx context.Context, turn Turn) (TurnResult, error)
}

// Engine is the rule-based Responder. It holds no state.
type Engine struct{}

var _ Responder = Engine{}

// Respond returns ctx.Err() if the context is already done; otherwise it
// never fails.
func (Engine) Respond(ctx context.Context, turn Turn) (TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return TurnResult{}, err
	}
	return Respond(turn), nil
}
