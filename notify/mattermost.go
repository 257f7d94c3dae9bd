// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mattermost/mattermost-server/v6/model"
)

// ChatNotifier sends response-progress messages to cadre members as
// Mattermost direct messages, looked up by email.
type ChatNotifier struct {
	client *model.Client4
	botID  string
}

// NewChatNotifier connects to the Mattermost server and resolves the bot
// identity for direct-channel creation.
func NewChatNotifier(serverURL, token string) (*ChatNotifier, error) {
	client := model.NewAPIv4Client(serverURL)
	client.SetToken(token)

	me, _, err := client.GetUser("me", "")
	if err != nil {
		return nil, fmt.Errorf("mattermost login failed: %w", err)
	}

	return &ChatNotifier{client: client, botID: me.Id}, nil
}

// NotifyResponse DMs each recipient. A recipient whose email has no
// Mattermost account is skipped, not treated as a failure.
func (n *ChatNotifier) NotifyResponse(_ context.Context, ev ResponseEvent) error {
	message := formatResponseMessage(ev)

	var lastErr error
	for _, rcpt := range ev.Recipients {
		user, _, err := n.client.GetUserByEmail(rcpt.Email, "")
		if err != nil {
			slog.Info("chat notify: no account for recipient", "email", rcpt.Email)
			continue
		}

		channel, _, err := n.client.CreateDirectChannel(n.botID, user.Id)
		if err != nil {
			slog.Error("chat notify: direct channel failed", "email", rcpt.Email, "error", err)
			lastErr = err
			continue
		}

		post := &model.Post{
			ChannelId: channel.Id,
			Message:   message,
		}
		if _, _, err := n.client.CreatePost(post); err != nil {
			slog.Error("chat notify: post failed", "email", rcpt.Email, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

func formatResponseMessage(ev ResponseEvent) string {
	if ev.AllResponded {
		return fmt.Sprintf(
			"Everyone has responded to **%s** (%d/%d). Time to pick a slot: %s",
			ev.PollTitle, ev.RespondedCount, ev.TotalParticipants, ev.PollURL,
		)
	}
	return fmt.Sprintf(
		"%s responded to **%s** (%d/%d so far): %s",
		ev.ResponderName, ev.PollTitle, ev.RespondedCount, ev.TotalParticipants, ev.PollURL,
	)
}
