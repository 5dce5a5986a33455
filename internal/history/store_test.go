package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"logtap/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entries := []history.Entry{
		{RequestID: "r1", File: "a.log", Total: 10, Keywords: []string{"odd"}, Matches: 10, Outcome: history.OutcomeOK, Duration: 12 * time.Millisecond},
		{RequestID: "r2", File: "b.log", Total: 5, Matches: 0, Outcome: history.OutcomeInvalid},
		{RequestID: "r3", File: "a.log", Total: 3, Keywords: []string{"odd", "1"}, Matches: 2, Outcome: history.OutcomeTruncated, Duration: time.Second},
	}
	for _, entry := range entries {
		if _, err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].RequestID != "r3" || got[2].RequestID != "r1" {
		t.Fatalf("ordering wrong: %q then %q", got[0].RequestID, got[2].RequestID)
	}
	if got[0].Outcome != history.OutcomeTruncated {
		t.Fatalf("outcome = %q", got[0].Outcome)
	}
	if len(got[0].Keywords) != 2 || got[0].Keywords[0] != "odd" {
		t.Fatalf("keywords = %q", got[0].Keywords)
	}
	if got[0].Duration != time.Second {
		t.Fatalf("duration = %v", got[0].Duration)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, history.Entry{RequestID: "r", File: "a.log", Outcome: history.OutcomeOK}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("limit ignored: %d entries", len(got))
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if _, err := store.Record(ctx, history.Entry{RequestID: "r", File: "a.log", Outcome: history.OutcomeOK}); err != nil {
		t.Fatalf("record: %v", err)
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %d", len(got))
	}
}
