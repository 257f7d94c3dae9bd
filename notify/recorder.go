// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"errors"
	"sync"
)

// Recorder implements Mailer, ResponseNotifier, and Calendar by recording
// every call. Tests use it to assert on side effects and to inject
// failures.
type Recorder struct {
	mu sync.Mutex

	Invites []Invite
	Events  []ResponseEvent
	Created []Event

	FailInvites  bool
	FailNotify   bool
	CalendarErrs int // number of CreateEvent calls to fail before succeeding
	Refs         []Reference
}

func (r *Recorder) SendInvite(_ context.Context, inv Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Invites = append(r.Invites, inv)
	if r.FailInvites {
		return errors.New("invite delivery failed")
	}
	return nil
}

func (r *Recorder) NotifyResponse(_ context.Context, ev ResponseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
	if r.FailNotify {
		return errors.New("notify failed")
	}
	return nil
}

func (r *Recorder) CreateEvent(_ context.Context, ev Event) ([]Reference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CalendarErrs > 0 {
		r.CalendarErrs--
		return nil, errors.New("calendar unavailable")
	}
	r.Created = append(r.Created, ev)
	return r.Refs, nil
}

// InviteCount returns how many invites were recorded.
func (r *Recorder) InviteCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Invites)
}

// EventCount returns how many response events were recorded.
func (r *Recorder) EventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Events)
}
