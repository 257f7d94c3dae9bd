// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify holds the outbound side effects of the poll lifecycle:
participant invites (Mailer), cadre progress messages over Mattermost
(ResponseNotifier), and calendar sync for confirmed bookings (Calendar).

Everything here is best-effort. Handlers commit their database work
first, then notify; a delivery failure is logged, counted where the API
reports it, and never rolls anything back.
*/
package notify
