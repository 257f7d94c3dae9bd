// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/meetpoll/auth"
	"github.com/danielhkuo/meetpoll/cliparse"
	"github.com/danielhkuo/meetpoll/heatmap"
	"github.com/danielhkuo/meetpoll/middleware"
	"github.com/danielhkuo/meetpoll/models"
	"github.com/danielhkuo/meetpoll/notify"
	"github.com/danielhkuo/meetpoll/timefmt"
)

type PollHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	mailer notify.Mailer
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config, mailer notify.Mailer) *PollHandler {
	return &PollHandler{db: db, cfg: cfg, mailer: mailer}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.DurationMinutes < 15 || req.DurationMinutes > 480 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_minutes must be between 15 and 480")
		return
	}
	rangeStart, err := timefmt.ParseDate(req.DateRangeStart)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	rangeEnd, err := timefmt.ParseDate(req.DateRangeEnd)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if rangeEnd.Before(rangeStart) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date_range_start must not be after date_range_end")
		return
	}
	if err := validateSlots(req.Windows); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, p := range req.Participants {
		if err := validateParticipant(p); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// The referenced event type must exist and belong to the caller
	if req.EventTypeID != nil {
		var ownerID int64
		err := h.db.QueryRow(`SELECT owner_id FROM event_type WHERE id = $1`, *req.EventTypeID).Scan(&ownerID)
		if err == sql.ErrNoRows || (err == nil && ownerID != userID) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Event type not found")
			return
		}
		if err != nil {
			slog.Error("failed to query event type", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	shareSlug, err := auth.NewShareSlug()
	if err != nil {
		slog.Error("failed to generate share slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var pollID int64
	err = tx.QueryRow(`
		INSERT INTO poll (title, description, event_type_id, duration_minutes,
		                  date_range_start, date_range_end, status, share_slug,
		                  created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, req.Title, req.Description, req.EventTypeID, req.DurationMinutes,
		req.DateRangeStart, req.DateRangeEnd, models.StatusActive, shareSlug,
		userID, time.Now()).Scan(&pollID)
	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	for _, win := range req.Windows {
		if _, err := tx.Exec(`
			INSERT INTO poll_window (poll_id, date, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`, pollID, win.Date, win.StartTime, win.EndTime); err != nil {
			slog.Error("failed to insert window", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
	}

	type invitee struct {
		name, email, token string
	}
	invitees := make([]invitee, 0, len(req.Participants))
	for _, p := range req.Participants {
		token := auth.NewAccessToken()
		if _, err := tx.Exec(`
			INSERT INTO poll_participant (poll_id, type, name, email, access_token, has_responded, user_id)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		`, pollID, p.Type, p.Name, p.Email, token, p.UserID); err != nil {
			slog.Error("failed to insert participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
		invitees = append(invitees, invitee{name: p.Name, email: p.Email, token: token})
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	// Invites are best-effort: count failures, never fail the creation.
	failed := 0
	for _, inv := range invitees {
		err := h.mailer.SendInvite(r.Context(), notify.Invite{
			PollID:    pollID,
			PollTitle: req.Title,
			Name:      inv.name,
			Email:     inv.email,
			URL:       h.cfg.BaseURL + "/p/" + inv.token,
		})
		if err != nil {
			failed++
			slog.Error("invite failed", "poll_id", pollID, "email", inv.email, "error", err)
		}
	}

	slog.Info("poll created",
		"poll_id", pollID,
		"owner", userID,
		"participants", len(invitees),
		"invites_failed", failed,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		ID:        pollID,
		ShareSlug: shareSlug,
		ShareURL:  h.cfg.BaseURL + "/poll/" + shareSlug,
	})
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	// Lazy expiration: overdue ACTIVE polls flip to EXPIRED before listing
	if _, err := SweepExpiredForOwner(h.db, userID); err != nil {
		slog.Error("expire sweep failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT p.id, p.title, p.description, p.duration_minutes,
		       p.date_range_start, p.date_range_end, p.status, p.share_slug, p.created_at,
		       (SELECT COUNT(*) FROM poll_window w WHERE w.poll_id = p.id),
		       (SELECT COUNT(*) FROM poll_participant pt WHERE pt.poll_id = p.id),
		       (SELECT COUNT(*) FROM poll_participant pt WHERE pt.poll_id = p.id AND pt.has_responded)
		FROM poll p
		WHERE p.created_by = $1
		ORDER BY p.created_at DESC, p.id DESC
	`, userID)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var s models.PollSummary
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.DurationMinutes,
			&s.DateRangeStart, &s.DateRangeEnd, &s.Status, &s.ShareSlug, &s.CreatedAt,
			&s.WindowCount, &s.ParticipantCount, &s.RespondedCount,
		); err != nil {
			slog.Error("failed to scan poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		polls = append(polls, s)
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// OpenCount handles GET /polls/open-count
func (h *PollHandler) OpenCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	if _, err := SweepExpiredForOwner(h.db, userID); err != nil {
		slog.Error("expire sweep failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var count int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM poll WHERE created_by = $1 AND status = $2
	`, userID, models.StatusActive).Scan(&count)
	if err != nil {
		slog.Error("failed to count polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{"count": count})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	if err := ExpirePollIfOverdue(h.db, pollID); err != nil {
		slog.Error("expire check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	poll, err := loadPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if poll.CreatedBy != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not your poll")
		return
	}

	windows, err := loadWindows(h.db, pollID)
	if err != nil {
		slog.Error("failed to query windows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	participants, err := loadParticipants(h.db, pollID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	responses, err := loadResponsesByPoll(h.db, pollID)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	all, required := heatmap.ComputeBoth(windows, responses, participants)

	detail := models.PollDetail{
		ID:              poll.ID,
		Title:           poll.Title,
		Description:     poll.Description,
		Status:          poll.Status,
		DurationMinutes: poll.DurationMinutes,
		DateRangeStart:  poll.DateRangeStart,
		DateRangeEnd:    poll.DateRangeEnd,
		CreatedAt:       poll.CreatedAt,
		SelectedDate:    poll.SelectedDate,
		SelectedStart:   poll.SelectedStart,
		SelectedEnd:     poll.SelectedEnd,
		Windows:         windows,
		Participants:    participants,
		HeatMap:         all,
		HeatMapRequired: required,
	}

	if poll.EventTypeID != nil {
		var et models.EventType
		err := h.db.QueryRow(`
			SELECT id, owner_id, title, slug, length FROM event_type WHERE id = $1
		`, *poll.EventTypeID).Scan(&et.ID, &et.OwnerID, &et.Title, &et.Slug, &et.Length)
		if err == nil {
			detail.EventType = &et
		} else if err != sql.ErrNoRows {
			slog.Error("failed to query event type", "error", err)
		}
	}

	if poll.BookingID != nil {
		info, err := loadBookingInfo(h.db, *poll.BookingID)
		if err == nil {
			detail.Booking = &info
		} else if err != sql.ErrNoRows {
			slog.Error("failed to query booking", "error", err)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// UpdatePoll handles PATCH /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title != nil && *req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	for _, p := range req.AddParticipants {
		if err := validateParticipant(p); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Windows != nil {
		if err := validateSlots(req.Windows); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var status string
	var ownerID int64
	var rangeStartStr, rangeEndStr string
	err = tx.QueryRow(`
		SELECT status, created_by, date_range_start, date_range_end FROM poll WHERE id = $1
	`, pollID).Scan(&status, &ownerID, &rangeStartStr, &rangeEndStr)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not your poll")
		return
	}
	if status == models.StatusBooked {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Booked polls cannot be edited")
		return
	}

	// Validate a possibly-partial date range update against the other half
	if req.DateRangeStart != nil {
		rangeStartStr = *req.DateRangeStart
	}
	if req.DateRangeEnd != nil {
		rangeEndStr = *req.DateRangeEnd
	}
	if req.DateRangeStart != nil || req.DateRangeEnd != nil {
		rangeStart, err := timefmt.ParseDate(rangeStartStr)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		rangeEnd, err := timefmt.ParseDate(rangeEndStr)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if rangeEnd.Before(rangeStart) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "date_range_start must not be after date_range_end")
			return
		}
	}

	// Batch duplicate check, case-insensitive, against existing and within
	// the batch itself. Any hit rejects the whole batch.
	if len(req.AddParticipants) > 0 {
		existing := map[string]bool{}
		rows, err := tx.Query(`SELECT email FROM poll_participant WHERE poll_id = $1`, pollID)
		if err != nil {
			slog.Error("failed to query participant emails", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		for rows.Next() {
			var email string
			if err := rows.Scan(&email); err != nil {
				rows.Close()
				slog.Error("failed to scan email", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			existing[strings.ToLower(email)] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			slog.Error("failed to iterate emails", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		for _, p := range req.AddParticipants {
			key := strings.ToLower(p.Email)
			if existing[key] {
				middleware.ErrorResponse(w, http.StatusConflict, "Participant email already on this poll: "+p.Email)
				return
			}
			existing[key] = true
		}
	}

	// Remove participants (and their responses) by id, scoped to this poll
	removed := 0
	for _, id := range req.RemoveParticipantIDs {
		if _, err := tx.Exec(`
			DELETE FROM poll_response
			WHERE participant_id IN (SELECT id FROM poll_participant WHERE id = $1 AND poll_id = $2)
		`, id, pollID); err != nil {
			slog.Error("failed to delete responses", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		res, err := tx.Exec(`DELETE FROM poll_participant WHERE id = $1 AND poll_id = $2`, id, pollID)
		if err != nil {
			slog.Error("failed to delete participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if n, _ := res.RowsAffected(); n > 0 {
			removed++
		}
	}

	// Add participants
	type invitee struct {
		name, email, token string
	}
	invitees := make([]invitee, 0, len(req.AddParticipants))
	for _, p := range req.AddParticipants {
		token := auth.NewAccessToken()
		if _, err := tx.Exec(`
			INSERT INTO poll_participant (poll_id, type, name, email, access_token, has_responded, user_id)
			VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		`, pollID, p.Type, p.Name, p.Email, token, p.UserID); err != nil {
			slog.Error("failed to insert participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		invitees = append(invitees, invitee{name: p.Name, email: p.Email, token: token})
	}

	// Replace the window set wholesale. Old selections may no longer map
	// to valid slots, so every response goes and has_responded resets.
	windowsReplaced := false
	if req.Windows != nil {
		windowsReplaced = true
		if _, err := tx.Exec(`
			DELETE FROM poll_response
			WHERE participant_id IN (SELECT id FROM poll_participant WHERE poll_id = $1)
		`, pollID); err != nil {
			slog.Error("failed to delete responses", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if _, err := tx.Exec(`DELETE FROM poll_window WHERE poll_id = $1`, pollID); err != nil {
			slog.Error("failed to delete windows", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		for _, win := range req.Windows {
			if _, err := tx.Exec(`
				INSERT INTO poll_window (poll_id, date, start_time, end_time)
				VALUES ($1, $2, $3, $4)
			`, pollID, win.Date, win.StartTime, win.EndTime); err != nil {
				slog.Error("failed to insert window", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
		}
		if _, err := tx.Exec(`
			UPDATE poll_participant SET has_responded = FALSE WHERE poll_id = $1
		`, pollID); err != nil {
			slog.Error("failed to reset responded flags", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if req.Title != nil {
		if _, err := tx.Exec(`UPDATE poll SET title = $1 WHERE id = $2`, *req.Title, pollID); err != nil {
			slog.Error("failed to update title", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}
	if req.Description != nil {
		if _, err := tx.Exec(`UPDATE poll SET description = $1 WHERE id = $2`, *req.Description, pollID); err != nil {
			slog.Error("failed to update description", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}
	if req.DateRangeStart != nil || req.DateRangeEnd != nil {
		if _, err := tx.Exec(`
			UPDATE poll SET date_range_start = $1, date_range_end = $2 WHERE id = $3
		`, rangeStartStr, rangeEndStr, pollID); err != nil {
			slog.Error("failed to update date range", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	var title string
	if err := h.db.QueryRow(`SELECT title FROM poll WHERE id = $1`, pollID).Scan(&title); err != nil {
		title = ""
	}
	for _, inv := range invitees {
		err := h.mailer.SendInvite(r.Context(), notify.Invite{
			PollID:    pollID,
			PollTitle: title,
			Name:      inv.name,
			Email:     inv.email,
			URL:       h.cfg.BaseURL + "/p/" + inv.token,
		})
		if err != nil {
			slog.Error("invite failed", "poll_id", pollID, "email", inv.email, "error", err)
		}
	}

	slog.Info("poll updated",
		"poll_id", pollID,
		"added", len(invitees),
		"removed", removed,
		"windows_replaced", windowsReplaced,
	)

	middleware.JSONResponse(w, http.StatusOK, models.UpdatePollResponse{
		ID:                  pollID,
		ParticipantsAdded:   len(invitees),
		ParticipantsRemoved: removed,
		WindowsReplaced:     windowsReplaced,
	})
}

// ClosePoll handles POST /polls/{id}/close
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var status string
	var ownerID int64
	err := h.db.QueryRow(`SELECT status, created_by FROM poll WHERE id = $1`, pollID).Scan(&status, &ownerID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not your poll")
		return
	}
	if status == models.StatusBooked || status == models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Poll is already "+strings.ToLower(status))
		return
	}

	if _, err := h.db.Exec(`UPDATE poll SET status = $1 WHERE id = $2`, models.StatusClosed, pollID); err != nil {
		slog.Error("failed to close poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close poll")
		return
	}

	slog.Info("poll closed", "poll_id", pollID)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": models.StatusClosed})
}

// DeletePoll handles DELETE /polls/{id}
// Works regardless of status; a booked poll's booking record survives.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var ownerID int64
	err := h.db.QueryRow(`SELECT created_by FROM poll WHERE id = $1`, pollID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not your poll")
		return
	}

	if err := deletePollCascade(h.db, pollID); err != nil {
		slog.Error("failed to delete poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)
	w.WriteHeader(http.StatusNoContent)
}
