// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/meetpoll/cliparse"
	"github.com/danielhkuo/meetpoll/heatmap"
	"github.com/danielhkuo/meetpoll/middleware"
	"github.com/danielhkuo/meetpoll/models"
	"github.com/danielhkuo/meetpoll/notify"
)

// RespondHandler serves the two unauthenticated surfaces: the
// per-participant access-token link and the poll-level share-slug link.
// The URL credential is the only authentication.
type RespondHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	chat notify.ResponseNotifier
}

func NewRespondHandler(db *sql.DB, cfg cliparse.Config, chat notify.ResponseNotifier) *RespondHandler {
	return &RespondHandler{db: db, cfg: cfg, chat: chat}
}

// notActive writes the participant-facing explanation for a poll that
// exists but no longer accepts responses. Distinct from 404 so the UI
// can say why instead of showing a generic error.
func notActive(w http.ResponseWriter, status string) {
	middleware.ErrorResponse(w, http.StatusConflict, "This poll is "+strings.ToLower(status))
}

// GetByToken handles GET /p/{token}
func (h *RespondHandler) GetByToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var me models.Participant
	var poll models.Poll
	err := h.db.QueryRow(`
		SELECT pt.id, pt.poll_id, pt.type, pt.name, pt.email, pt.has_responded,
		       p.id, p.title, p.description, p.duration_minutes,
		       p.date_range_start, p.date_range_end, p.status
		FROM poll_participant pt
		JOIN poll p ON pt.poll_id = p.id
		WHERE pt.access_token = $1
	`, token).Scan(
		&me.ID, &me.PollID, &me.Type, &me.Name, &me.Email, &me.HasResponded,
		&poll.ID, &poll.Title, &poll.Description, &poll.DurationMinutes,
		&poll.DateRangeStart, &poll.DateRangeEnd, &poll.Status,
	)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve access token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if poll.Status != models.StatusActive {
		notActive(w, poll.Status)
		return
	}

	windows, err := loadWindows(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query windows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	participants, err := loadParticipants(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	responses, err := loadResponsesByPoll(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	mine, err := loadResponsesByParticipant(h.db, me.ID)
	if err != nil {
		slog.Error("failed to query own responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	roster := make([]models.RosterEntry, 0, len(participants))
	responded := 0
	for _, pt := range participants {
		roster = append(roster, models.RosterEntry{
			Name:         pt.Name,
			Type:         pt.Type,
			HasResponded: pt.HasResponded,
		})
		if pt.HasResponded {
			responded++
		}
	}

	hm := heatmap.Anonymize(heatmap.Compute(windows, responses, participants, ""))

	middleware.JSONResponse(w, http.StatusOK, models.TokenPollView{
		Poll: models.TokenPollSummary{
			ID:               poll.ID,
			Title:            poll.Title,
			Description:      poll.Description,
			DurationMinutes:  poll.DurationMinutes,
			DateRangeStart:   poll.DateRangeStart,
			DateRangeEnd:     poll.DateRangeEnd,
			Status:           poll.Status,
			Windows:          windows,
			ParticipantCount: len(participants),
			RespondedCount:   responded,
			Participants:     roster,
		},
		Participant: models.TokenParticipantView{
			ID:           me.ID,
			Name:         me.Name,
			Email:        me.Email,
			HasResponded: me.HasResponded,
			Responses:    mine,
		},
		HeatMap: hm,
	})
}

// SubmitByToken handles POST /p/{token}/responses
func (h *RespondHandler) SubmitByToken(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid email")
		return
	}
	// An empty availability set is legal: "available for nothing" is a
	// response, distinct from not having responded.
	if err := validateSlots(req.Availability); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var participantID, pollID int64
	var status string
	err := h.db.QueryRow(`
		SELECT pt.id, p.id, p.status
		FROM poll_participant pt
		JOIN poll p ON pt.poll_id = p.id
		WHERE pt.access_token = $1
	`, token).Scan(&participantID, &pollID, &status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve access token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.StatusActive {
		notActive(w, status)
		return
	}

	if err := h.replaceResponses(participantID, req.Name, req.Email, req.Availability); err != nil {
		slog.Error("failed to record response", "participant_id", participantID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record response")
		return
	}

	slog.Info("response recorded", "poll_id", pollID, "participant_id", participantID, "slots", len(req.Availability))

	go h.notifyResponseEvent(pollID, participantID)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponseResult{Success: true})
}

// GetBySlug handles GET /poll/{slug}
func (h *RespondHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var poll models.Poll
	err := h.db.QueryRow(`
		SELECT id, title, description, duration_minutes,
		       date_range_start, date_range_end, status, share_slug
		FROM poll
		WHERE share_slug = $1
	`, slug).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.DurationMinutes,
		&poll.DateRangeStart, &poll.DateRangeEnd, &poll.Status, &poll.ShareSlug,
	)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve share slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if poll.Status != models.StatusActive {
		notActive(w, poll.Status)
		return
	}

	windows, err := loadWindows(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query windows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	participants, err := loadParticipants(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	responses, err := loadResponsesByPoll(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Group responses per participant so the shared page can pre-populate
	// each person's prior selections.
	byParticipant := map[int64][]models.Response{}
	for _, resp := range responses {
		byParticipant[resp.ParticipantID] = append(byParticipant[resp.ParticipantID], resp)
	}
	shared := make([]models.SharedParticipant, 0, len(participants))
	for _, pt := range participants {
		prior := byParticipant[pt.ID]
		if prior == nil {
			prior = []models.Response{}
		}
		shared = append(shared, models.SharedParticipant{
			ID:           pt.ID,
			Name:         pt.Name,
			Email:        pt.Email,
			Type:         pt.Type,
			HasResponded: pt.HasResponded,
			Responses:    prior,
		})
	}

	hm := heatmap.Anonymize(heatmap.Compute(windows, responses, participants, ""))

	middleware.JSONResponse(w, http.StatusOK, models.SharedPollView{
		Poll: models.SharedPollSummary{
			ID:              poll.ID,
			Title:           poll.Title,
			Description:     poll.Description,
			DurationMinutes: poll.DurationMinutes,
			DateRangeStart:  poll.DateRangeStart,
			DateRangeEnd:    poll.DateRangeEnd,
			Status:          poll.Status,
			ShareSlug:       poll.ShareSlug,
			Windows:         windows,
		},
		Participants: shared,
		HeatMap:      hm,
	})
}

// SubmitBySlug handles POST /poll/{slug}/responses
func (h *RespondHandler) SubmitBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var req models.SubmitMultiResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.ParticipantIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_ids is required")
		return
	}
	if err := validateSlots(req.Availability); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var pollID int64
	var status string
	err := h.db.QueryRow(`SELECT id, status FROM poll WHERE share_slug = $1`, slug).Scan(&pollID, &status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve share slug", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.StatusActive {
		notActive(w, status)
		return
	}

	// Every named id must belong to this poll or the whole call fails.
	members := map[int64]bool{}
	rows, err := h.db.Query(`SELECT id FROM poll_participant WHERE poll_id = $1`, pollID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			slog.Error("failed to scan participant id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		members[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for _, id := range req.ParticipantIDs {
		if !members[id] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "participant does not belong to this poll")
			return
		}
	}

	// One transaction covers every named participant: no partial application.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now()
	for _, id := range req.ParticipantIDs {
		if err := replaceResponsesTx(tx, id, req.Availability, now); err != nil {
			slog.Error("failed to record responses", "participant_id", id, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record responses")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record responses")
		return
	}

	slog.Info("multi-response recorded", "poll_id", pollID, "participants", len(req.ParticipantIDs))

	for _, id := range req.ParticipantIDs {
		go h.notifyResponseEvent(pollID, id)
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitMultiResponseResult{
		Success:                 true,
		UpdatedParticipantCount: len(req.ParticipantIDs),
	})
}

// replaceResponses atomically swaps one participant's response set and
// updates their contact details. The delete and insert share a
// transaction so aggregation never sees a half-replaced set.
func (h *RespondHandler) replaceResponses(participantID int64, name, email string, slots []models.SlotInput) error {
	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM poll_response WHERE participant_id = $1`, participantID); err != nil {
		return err
	}
	for _, s := range slots {
		if _, err := tx.Exec(`
			INSERT INTO poll_response (participant_id, date, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`, participantID, s.Date, s.StartTime, s.EndTime); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
		UPDATE poll_participant
		SET name = $1, email = $2, has_responded = TRUE, responded_at = $3
		WHERE id = $4
	`, name, email, time.Now(), participantID); err != nil {
		return err
	}

	return tx.Commit()
}

// replaceResponsesTx is the multi-submit variant: same replacement, but
// inside the caller's transaction and without touching name/email.
func replaceResponsesTx(tx *sql.Tx, participantID int64, slots []models.SlotInput, now time.Time) error {
	if _, err := tx.Exec(`DELETE FROM poll_response WHERE participant_id = $1`, participantID); err != nil {
		return err
	}
	for _, s := range slots {
		if _, err := tx.Exec(`
			INSERT INTO poll_response (participant_id, date, start_time, end_time)
			VALUES ($1, $2, $3, $4)
		`, participantID, s.Date, s.StartTime, s.EndTime); err != nil {
			return err
		}
	}
	_, err := tx.Exec(`
		UPDATE poll_participant
		SET has_responded = TRUE, responded_at = $1
		WHERE id = $2
	`, now, participantID)
	return err
}

// notifyResponseEvent decides whether this response warrants a cadre
// alert and fires it. Runs on its own goroutine after commit; every
// failure ends here.
func (h *RespondHandler) notifyResponseEvent(pollID, responderID int64) {
	var pollTitle, shareSlug string
	err := h.db.QueryRow(`SELECT title, share_slug FROM poll WHERE id = $1`, pollID).Scan(&pollTitle, &shareSlug)
	if err != nil {
		slog.Error("notify: failed to load poll", "poll_id", pollID, "error", err)
		return
	}
	participants, err := loadParticipants(h.db, pollID)
	if err != nil {
		slog.Error("notify: failed to load participants", "poll_id", pollID, "error", err)
		return
	}

	var responderName, responderType string
	responded := 0
	recipients := []notify.Recipient{}
	for _, pt := range participants {
		if pt.HasResponded {
			responded++
		}
		if pt.ID == responderID {
			responderName = pt.Name
			responderType = pt.Type
		}
		if pt.Type == models.TypeCadreRequired || pt.Type == models.TypeCadreOptional {
			recipients = append(recipients, notify.Recipient{Name: pt.Name, Email: pt.Email})
		}
	}

	allResponded := responded == len(participants) && len(participants) > 0
	// Alert when a required cadre member responded or when the poll is
	// now fully answered; anything else is noise.
	if responderType != models.TypeCadreRequired && !allResponded {
		return
	}

	err = h.chat.NotifyResponse(context.Background(), notify.ResponseEvent{
		PollID:            pollID,
		PollTitle:         pollTitle,
		PollURL:           h.cfg.BaseURL + "/poll/" + shareSlug,
		ResponderName:     responderName,
		ResponderType:     responderType,
		RespondedCount:    responded,
		TotalParticipants: len(participants),
		AllResponded:      allResponded,
		Recipients:        recipients,
	})
	if err != nil {
		slog.Error("notify: response event failed", "poll_id", pollID, "error", err)
	}
}
