// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"testing"
	"time"
)

func TestSyncCalendarFirstAttemptSucceeds(t *testing.T) {
	rec := &Recorder{Refs: []Reference{{Type: "google_calendar", UID: "ext-1"}}}

	refs := SyncCalendar(context.Background(), rec, Event{UID: "b-1", Title: "Call"})

	if len(refs) != 1 || refs[0].UID != "ext-1" {
		t.Errorf("unexpected references: %v", refs)
	}
	if len(rec.Created) != 1 {
		t.Errorf("expected 1 create call, got %d", len(rec.Created))
	}
}

func TestSyncCalendarRetriesOnce(t *testing.T) {
	rec := &Recorder{CalendarErrs: 1, Refs: []Reference{{Type: "google_calendar", UID: "ext-1"}}}

	start := time.Now()
	refs := SyncCalendar(context.Background(), rec, Event{UID: "b-1", Title: "Call"})

	if len(refs) != 1 {
		t.Errorf("expected success on second attempt, got %v", refs)
	}
	if elapsed := time.Since(start); elapsed < syncBackoff {
		t.Errorf("expected a backoff before the retry, elapsed %v", elapsed)
	}
}

func TestSyncCalendarGivesUpAfterTwoAttempts(t *testing.T) {
	rec := &Recorder{CalendarErrs: 5}

	refs := SyncCalendar(context.Background(), rec, Event{UID: "b-1", Title: "Call"})

	if refs != nil {
		t.Errorf("expected nil references after exhausted retries, got %v", refs)
	}
	// 2 attempts consumed 2 of the 5 injected failures
	if rec.CalendarErrs != 3 {
		t.Errorf("expected exactly 2 attempts, %d failures left", rec.CalendarErrs)
	}
}

func TestFormatResponseMessage(t *testing.T) {
	partial := formatResponseMessage(ResponseEvent{
		PollTitle:         "Team Sync",
		PollURL:           "http://example.com/poll/x",
		ResponderName:     "Alice",
		RespondedCount:    1,
		TotalParticipants: 3,
	})
	if partial == "" || partial[0:5] != "Alice" {
		t.Errorf("expected responder-led message, got %q", partial)
	}

	complete := formatResponseMessage(ResponseEvent{
		PollTitle:         "Team Sync",
		PollURL:           "http://example.com/poll/x",
		RespondedCount:    3,
		TotalParticipants: 3,
		AllResponded:      true,
	})
	if complete == partial {
		t.Error("expected a distinct message when everyone has responded")
	}
}
