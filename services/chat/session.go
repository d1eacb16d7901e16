package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"poppi/models"
)

// ControllerFactory builds a controller bound to the shared collaborators.
type ControllerFactory func(opts ...Option) *Controller

// Sessions hosts conversations on behalf of stateless HTTP callers. Each turn
// restores the stored snapshot into a fresh controller and saves it back.
type Sessions struct {
	store  SessionStore
	build  ControllerFactory
	logger *zap.Logger
}

func NewSessions(store SessionStore, build ControllerFactory, logger *zap.Logger) *Sessions {
	return &Sessions{store: store, build: build, logger: logger}
}

// Open starts a conversation and returns its greeting.
func (s *Sessions) Open(ctx context.Context, req models.ChatStartRequest) (*models.ChatResponse, error) {
	id := uuid.NewString()
	ctrl := s.build(WithKnownUser(req.Name, req.Email))
	if err := s.store.Save(ctx, id, ctrl.Snapshot()); err != nil {
		return nil, fmt.Errorf("save chat session: %w", err)
	}
	s.logger.Info("chat session opened", zap.String("sessionID", id), zap.Bool("knownUser", req.Name != ""))
	return &models.ChatResponse{
		SessionID: id,
		State:     ctrl.State(),
		Messages:  ctrl.Messages(),
	}, nil
}

// Send feeds one message into a stored conversation. It returns ErrBusy when
// another message for the same session is in flight and ErrSessionNotFound
// for unknown or expired sessions.
func (s *Sessions) Send(ctx context.Context, id, text string) (*models.ChatResponse, error) {
	release, ok, err := s.store.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lock chat session: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	defer release()

	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctrl := s.build()
	if err := ctrl.Restore(*snap); err != nil {
		return nil, err
	}

	reply, err := ctrl.Handle(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, id, ctrl.Snapshot()); err != nil {
		return nil, fmt.Errorf("save chat session: %w", err)
	}

	messages := reply.Messages
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return &models.ChatResponse{
		SessionID:   id,
		State:       reply.State,
		Messages:    messages,
		RedirectURL: reply.RedirectURL,
	}, nil
}

// Close discards a conversation.
func (s *Sessions) Close(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
