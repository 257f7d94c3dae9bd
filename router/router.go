// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/meetpoll/cliparse"
	"github.com/danielhkuo/meetpoll/handlers"
	"github.com/danielhkuo/meetpoll/middleware"
	"github.com/danielhkuo/meetpoll/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, mailer notify.Mailer, chat notify.ResponseNotifier, cal notify.Calendar) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, cfg, mailer)
	respondHandler := handlers.NewRespondHandler(db, cfg, chat)
	bookingHandler := handlers.NewBookingHandler(db, cfg, cal)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Organizer operations (bearer token)
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, h))
	}
	mux.HandleFunc("POST /polls", authed(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", authed(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/open-count", authed(pollHandler.OpenCount))
	mux.HandleFunc("GET /polls/{id}", authed(pollHandler.GetPoll))
	mux.HandleFunc("PATCH /polls/{id}", authed(pollHandler.UpdatePoll))
	mux.HandleFunc("POST /polls/{id}/close", authed(pollHandler.ClosePoll))
	mux.HandleFunc("DELETE /polls/{id}", authed(pollHandler.DeletePoll))
	mux.HandleFunc("POST /polls/{id}/book", authed(bookingHandler.Book))

	// Per-participant public surface (access token in URL)
	mux.HandleFunc("GET /p/{token}", middleware.WithLogging(respondHandler.GetByToken))
	mux.HandleFunc("POST /p/{token}/responses", middleware.WithLogging(respondHandler.SubmitByToken))

	// Shared public surface (share slug in URL)
	mux.HandleFunc("GET /poll/{slug}", middleware.WithLogging(respondHandler.GetBySlug))
	mux.HandleFunc("POST /poll/{slug}/responses", middleware.WithLogging(respondHandler.SubmitBySlug))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meetpoll API v1"))
	})

	return mux
}
