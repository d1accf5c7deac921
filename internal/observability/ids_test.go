package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDIsValid(t *testing.T) {
	id := NewRequestID()

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
	if !ValidRequestID(id) {
		t.Fatalf("expected %q to be accepted", id)
	}
}

func TestValidRequestIDRejectsGarbage(t *testing.T) {
	for _, id := range []string{"", "abc-123", "not a uuid at all"} {
		if ValidRequestID(id) {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}

func TestContextIDs(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithSessionID(ctx, "sess-1")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("expected request id %q, got %q", "req-1", got)
	}
	if got := SessionIDFromContext(ctx); got != "sess-1" {
		t.Fatalf("expected session id %q, got %q", "sess-1", got)
	}
}

func TestContextIDsMissingOrWrongType(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}

	ctx := context.WithValue(context.Background(), SessionIDKey, 42)
	if got := SessionIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty session id, got %q", got)
	}
}
