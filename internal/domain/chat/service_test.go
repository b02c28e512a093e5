package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"asthmacare/internal/platform/logger"
)

type testRepo struct {
	messages  []Message
	failStore bool
}

func (r *testRepo) Create(ctx context.Context, m Message) error {
	if r.failStore {
		return errors.New("repo: store failed")
	}
	r.messages = append(r.messages, m)
	return nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]Message, error) {
	out := make([]Message, 0)
	for _, m := range r.messages {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type staticResponder struct {
	reply string
	err   error
}

func (s staticResponder) Respond(ctx context.Context, message string, history []Message) (string, error) {
	return s.reply, s.err
}

func TestService_Send_StoresBothMessages(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, staticResponder{reply: "ok"}, logger.Nop(), 20)
	svc.now = func() time.Time { return time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC) }

	reply, err := svc.Send(context.Background(), "owner-1", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Role != RoleAssistant || reply.Content != "ok" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	if len(repo.messages) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(repo.messages))
	}
	if repo.messages[0].Role != RoleUser || repo.messages[1].Role != RoleAssistant {
		t.Fatalf("unexpected roles: %s, %s", repo.messages[0].Role, repo.messages[1].Role)
	}
	if repo.messages[0].OwnerUserID != "owner-1" || repo.messages[1].OwnerUserID != "owner-1" {
		t.Fatalf("messages must be owner-scoped")
	}
}

func TestService_Send_HistoryStoreFailureIsSwallowed(t *testing.T) {
	repo := &testRepo{failStore: true}
	svc := NewService(repo, staticResponder{reply: "ok"}, logger.Nop(), 20)

	reply, err := svc.Send(context.Background(), "owner-1", "hello")
	if err != nil {
		t.Fatalf("store failure must not fail the call: %v", err)
	}
	if reply.Content != "ok" {
		t.Fatalf("expected responder reply, got %q", reply.Content)
	}
}

func TestService_Send_ResponderFailurePropagates(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, staticResponder{err: errors.New("upstream down")}, logger.Nop(), 20)

	if _, err := svc.Send(context.Background(), "owner-1", "hello"); err == nil {
		t.Fatalf("expected responder error to propagate")
	}
}

func TestService_Send_EmptyContentRejected(t *testing.T) {
	svc := NewService(&testRepo{}, staticResponder{reply: "ok"}, logger.Nop(), 20)

	if _, err := svc.Send(context.Background(), "owner-1", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Send(context.Background(), "", "hello"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
