// README: TripPlanner orchestrates one chat turn: session context, the responder, edit merges, transcripts and metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripmate/internal/assistant"
	"tripmate/internal/metrics"
	"tripmate/internal/modules/session"
	"tripmate/internal/modules/transcript"
)

// ErrEmptyMessage is returned when a turn has no non-whitespace text.
var ErrEmptyMessage = errors.New("message is empty")

// ApologyReply is sent, with no structured payload, when a turn cannot be
// answered.
const ApologyReply = "Sorry, something went wrong. Please try again."

// SessionStore persists per-conversation state. *session.Service satisfies it.
type SessionStore interface {
	Load(ctx context.Context, conversationID string) (session.Session, error)
	Save(ctx context.Context, sess session.Session) error
	Delete(ctx context.Context, conversationID string) error
}

// TranscriptLog records answered turns. *transcript.Service satisfies it.
type TranscriptLog interface {
	Record(ctx context.Context, conversationID string, turn assistant.Turn, res assistant.TurnResult) error
	History(ctx context.Context, conversationID string) ([]transcript.Entry, error)
}

// Option configures a TripPlanner.
type Option func(*TripPlanner)

// WithSessions keeps per-conversation state in s.
func WithSessions(s SessionStore) Option {
	return func(p *TripPlanner) { p.sessions = s }
}

// WithTranscripts records every answered turn in t.
func WithTranscripts(t TranscriptLog) Option {
	return func(p *TripPlanner) { p.transcripts = t }
}

// WithReplyDelay holds every reply back by d, mimicking a remote model.
func WithReplyDelay(d time.Duration) Option {
	return func(p *TripPlanner) { p.replyDelay = d }
}

// TripPlanner is the caller of the pure assistant core. Store failures are
// logged and never fail a turn.
type TripPlanner struct {
	responder   assistant.Responder
	sessions    SessionStore
	transcripts TranscriptLog
	log         *zap.Logger
	replyDelay  time.Duration
	newID       func() string
}

// NewTripPlanner wraps responder with the given stores. Stores left unset are skipped.
func NewTripPlanner(responder assistant.Responder, log *zap.Logger, opts ...Option) *TripPlanner {
	p := &TripPlanner{
		responder: responder,
		log:       log,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChatRequest is one inbound turn, optionally tied to a conversation.
type ChatRequest struct {
	ConversationID string
	Turn           assistant.Turn
}

// ChatData carries the structured part of a reply.
type ChatData struct {
	TripSnapshot  *assistant.TripContext     `json:"tripSnapshot,omitempty"`
	ResponseBlock *assistant.ResponsePayload `json:"responseBlock,omitempty"`
	// MergedBlock is the stored block with a TRIP_EDIT applied.
	MergedBlock *assistant.ResponsePayload `json:"mergedBlock,omitempty"`
}

// ChatResponse is the answer to a ChatRequest.
type ChatResponse struct {
	ConversationID string    `json:"conversationId"`
	Reply          string    `json:"reply"`
	Data           *ChatData `json:"data,omitempty"`
}

// Chat answers one turn. A missing conversation id is generated. When the
// request carries no snapshot the stored one is used as prior context.
func (p *TripPlanner) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if strings.TrimSpace(req.Turn.Message) == "" {
		return ChatResponse{}, ErrEmptyMessage
	}
	id := req.ConversationID
	if id == "" {
		id = p.newID()
	}
	log := p.log.With(zap.String("conversation_id", id))
	start := time.Now()

	prev := p.loadSession(ctx, log, id)
	turn := req.Turn
	if turn.TripSnapshot == nil && prev != nil {
		turn.TripSnapshot = prev.TripSnapshot
	}

	res, err := p.responder.Respond(ctx, turn)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("respond: %w", err)
	}

	resp := ChatResponse{ConversationID: id, Reply: res.Reply}
	var block *assistant.ResponsePayload
	if res.Data != nil {
		block = res.Data.ResponseBlock
		resp.Data = &ChatData{TripSnapshot: res.Data.TripSnapshot, ResponseBlock: block}
	}

	responseType := "NONE"
	latest := block
	if block != nil {
		responseType = string(block.Type)
		if block.Type == assistant.TypeTripEdit && prev != nil && prev.LatestBlock != nil {
			merged := assistant.Merge(*prev.LatestBlock, block.Partial())
			resp.Data.MergedBlock = &merged
			latest = &merged
			metrics.EditMerges.Inc()
		}
	}

	// A turn abandoned during the delay leaves no session or transcript behind.
	elapsed := time.Since(start)
	if err := p.wait(ctx); err != nil {
		return ChatResponse{}, err
	}
	metrics.TurnsTotal.WithLabelValues(responseType).Inc()
	metrics.TurnDuration.WithLabelValues(responseType).Observe(elapsed.Seconds())

	p.saveSession(ctx, log, id, turn, res, latest, prev)
	if p.transcripts != nil {
		if err := p.transcripts.Record(ctx, id, req.Turn, res); err != nil {
			metrics.StoreErrors.WithLabelValues("transcript", "record").Inc()
			log.Warn("transcript record failed", zap.Error(err))
		}
	}

	log.Info("turn answered",
		zap.String("response_type", responseType),
		zap.Int("turn_count", req.Turn.TurnCount),
		zap.Duration("latency", elapsed),
	)
	return resp, nil
}

func (p *TripPlanner) loadSession(ctx context.Context, log *zap.Logger, id string) *session.Session {
	if p.sessions == nil {
		return nil
	}
	s, err := p.sessions.Load(ctx, id)
	switch {
	case err == nil:
		return &s
	case errors.Is(err, session.ErrNotFound):
		return nil
	default:
		metrics.StoreErrors.WithLabelValues("session", "load").Inc()
		log.Warn("session load failed; answering without stored context", zap.Error(err))
		return nil
	}
}

// saveSession keeps the last plan-like block across greetings and general
// help turns so a later edit still has something to merge onto.
func (p *TripPlanner) saveSession(ctx context.Context, log *zap.Logger, id string, turn assistant.Turn, res assistant.TurnResult, latest *assistant.ResponsePayload, prev *session.Session) {
	if p.sessions == nil {
		return
	}
	next := session.Session{ConversationID: id, TripSnapshot: turn.TripSnapshot, TurnCount: 1}
	if prev != nil {
		next.LatestBlock = prev.LatestBlock
		next.TurnCount = prev.TurnCount + 1
	}
	if turn.TurnCount > next.TurnCount {
		next.TurnCount = turn.TurnCount
	}
	if res.Data != nil && res.Data.TripSnapshot != nil {
		next.TripSnapshot = res.Data.TripSnapshot
	}
	if latest != nil && latest.Type != assistant.TypeGreeting && latest.Type != assistant.TypeGeneralAssist {
		next.LatestBlock = latest
	}
	if err := p.sessions.Save(ctx, next); err != nil {
		metrics.StoreErrors.WithLabelValues("session", "save").Inc()
		log.Warn("session save failed", zap.Error(err))
	}
}

func (p *TripPlanner) wait(ctx context.Context) error {
	if p.replyDelay <= 0 {
		return nil
	}
	t := time.NewTimer(p.replyDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Conversation is the stored view of one conversation.
type Conversation struct {
	ConversationID string                     `json:"conversationId"`
	TurnCount      int                        `json:"turnCount"`
	TripSnapshot   *assistant.TripContext     `json:"tripSnapshot,omitempty"`
	LatestBlock    *assistant.ResponsePayload `json:"latestBlock,omitempty"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
	History        []transcript.Entry         `json:"history,omitempty"`
}

// Conversation returns session.ErrNotFound when sessions are disabled or
// the id is unknown. History is best effort.
func (p *TripPlanner) Conversation(ctx context.Context, id string) (Conversation, error) {
	if p.sessions == nil {
		return Conversation{}, session.ErrNotFound
	}
	s, err := p.sessions.Load(ctx, id)
	if err != nil {
		return Conversation{}, err
	}
	out := Conversation{
		ConversationID: s.ConversationID,
		TurnCount:      s.TurnCount,
		TripSnapshot:   s.TripSnapshot,
		LatestBlock:    s.LatestBlock,
		UpdatedAt:      s.UpdatedAt,
	}
	if p.transcripts != nil {
		h, err := p.transcripts.History(ctx, id)
		if err != nil {
			metrics.StoreErrors.WithLabelValues("transcript", "history").Inc()
			p.log.Warn("transcript history failed", zap.String("conversation_id", id), zap.Error(err))
		}
		out.History = h
	}
	return out, nil
}

// EndConversation drops the stored session. Transcripts are kept.
func (p *TripPlanner) EndConversation(ctx context.Context, id string) error {
	if p.sessions == nil {
		return session.ErrNotFound
	}
	if _, err := p.sessions.Load(ctx, id); err != nil {
		return err
	}
	return p.sessions.Delete(ctx, id)
}

// Merge applies incoming on top of current for clients that keep their own
// rendered state.
func (p *TripPlanner) Merge(current, incoming assistant.ResponsePayload) assistant.ResponsePayload {
	return assistant.Merge(current, incoming.Partial())
}

// Destinations lists the known gazetteer entries in table order.
func (p *TripPlanner) Destinations() []assistant.Place {
	return assistant.Places()
}
