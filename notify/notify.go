// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
)

// Invite is sent to a participant when they are added to a poll. URL is
// the participant's personal access link.
type Invite struct {
	PollID    int64
	PollTitle string
	Name      string
	Email     string
	URL       string
}

// Mailer delivers participant invites. Delivery is best-effort: a failed
// invite never fails the operation that triggered it.
type Mailer interface {
	SendInvite(ctx context.Context, inv Invite) error
}

// LogMailer logs invites instead of delivering them. Used when no mail
// transport is configured.
type LogMailer struct{}

func (LogMailer) SendInvite(_ context.Context, inv Invite) error {
	slog.Info("invite (not delivered, no mailer configured)",
		"poll_id", inv.PollID,
		"email", inv.Email,
		"url", inv.URL,
	)
	return nil
}

// Recipient identifies a cadre member to notify about poll progress.
type Recipient struct {
	Name  string
	Email string
}

// ResponseEvent describes one participant's submitted availability,
// with enough poll context to render a progress message.
type ResponseEvent struct {
	PollID            int64
	PollTitle         string
	PollURL           string
	ResponderName     string
	ResponderType     string
	RespondedCount    int
	TotalParticipants int
	AllResponded      bool
	Recipients        []Recipient
}

// ResponseNotifier pushes response-progress events to the cadre.
// Best-effort like Mailer.
type ResponseNotifier interface {
	NotifyResponse(ctx context.Context, ev ResponseEvent) error
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) NotifyResponse(context.Context, ResponseEvent) error { return nil }
