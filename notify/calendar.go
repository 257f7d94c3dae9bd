// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"time"
)

// Event is the calendar-facing shape of a confirmed booking.
type Event struct {
	UID       string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Attendees []Recipient
}

// Reference points at the event a Calendar created, for later lookup.
type Reference struct {
	Type               string
	UID                string
	MeetingURL         string
	ExternalCalendarID string
}

// Calendar pushes confirmed bookings to an external calendar.
type Calendar interface {
	CreateEvent(ctx context.Context, ev Event) ([]Reference, error)
}

// NopCalendar is used when no calendar integration is configured.
type NopCalendar struct{}

func (NopCalendar) CreateEvent(context.Context, Event) ([]Reference, error) {
	return nil, nil
}

const (
	syncAttempts = 2
	syncBackoff  = 500 * time.Millisecond
)

// SyncCalendar pushes a booking to the calendar with one retry. Calendar
// sync is best-effort: the booking is already committed, so a total
// failure is logged and swallowed, never surfaced to the caller.
func SyncCalendar(ctx context.Context, cal Calendar, ev Event) []Reference {
	var lastErr error
	for attempt := 1; attempt <= syncAttempts; attempt++ {
		refs, err := cal.CreateEvent(ctx, ev)
		if err == nil {
			return refs
		}
		lastErr = err
		if attempt < syncAttempts {
			time.Sleep(syncBackoff)
		}
	}
	slog.Error("calendar sync failed, booking is committed without an event",
		"uid", ev.UID,
		"error", lastErr,
	)
	return nil
}
