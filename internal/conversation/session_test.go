// File path: internal/conversation/session_test.go
package conversation

import "testing"

func TestAcquireAllocatesSessionID(t *testing.T) {
	reg := NewRegistry(10)
	id, ctx := reg.Acquire("")
	if id == "" {
		t.Fatal("expected a generated session id")
	}
	if ctx == nil {
		t.Fatal("expected a context")
	}
	again, other := reg.Acquire(id)
	if again != id || other != ctx {
		t.Fatal("re-acquiring the same id should return the same context")
	}
}

func TestAcquireIsolatesSessions(t *testing.T) {
	reg := NewRegistry(10)
	_, a := reg.Acquire("alpha")
	_, b := reg.Acquire("beta")
	a.Append(Turn{Role: RoleUser, Content: "only in alpha"})
	if b.Len() != 0 {
		t.Fatal("sessions share history")
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", reg.Len())
	}
}

func TestResetUnknownSessionNoop(t *testing.T) {
	reg := NewRegistry(10)
	reg.Reset("never-seen")
	if reg.Len() != 0 {
		t.Fatal("reset of unknown id should not create a session")
	}
}

func TestResetClearsHistoryKeepsSession(t *testing.T) {
	reg := NewRegistry(10)
	id, ctx := reg.Acquire("gamma")
	ctx.Append(Turn{Role: RoleUser, Content: "hello"})
	reg.Reset(id)
	if ctx.Len() != 0 {
		t.Fatal("history not cleared")
	}
	_, same := reg.Acquire(id)
	if same != ctx {
		t.Fatal("reset should keep the session registered")
	}
}
