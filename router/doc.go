// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the meetpoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, mailer, chat, cal)

# Endpoints

Health:

	GET /health

Organizer operations (require Authorization: Bearer <JWT>):

	POST   /polls                 - Create poll
	GET    /polls                 - List own polls (sweeps expirations)
	GET    /polls/open-count      - Count of own ACTIVE polls
	GET    /polls/{id}            - Poll detail with heat maps
	PATCH  /polls/{id}            - Edit poll
	POST   /polls/{id}/close      - Close poll
	DELETE /polls/{id}            - Delete poll
	POST   /polls/{id}/book       - Commit a booking

Per-participant public surface (access token is the credential):

	GET  /p/{token}           - Participant view
	POST /p/{token}/responses - Submit availability

Shared public surface (share slug is the credential):

	GET  /poll/{slug}           - Shared view with full roster
	POST /poll/{slug}/responses - Submit for several participants

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(db, cfg, mailer)
	respondHandler := handlers.NewRespondHandler(db, cfg, chat)
	bookingHandler := handlers.NewBookingHandler(db, cfg, cal)

All handlers receive the database connection and configuration; the
notifier collaborators are interfaces so tests substitute recorders.
*/
package router
