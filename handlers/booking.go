// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/meetpoll/cliparse"
	"github.com/danielhkuo/meetpoll/middleware"
	"github.com/danielhkuo/meetpoll/models"
	"github.com/danielhkuo/meetpoll/notify"
	"github.com/danielhkuo/meetpoll/timefmt"
	"github.com/google/uuid"
)

type BookingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	cal notify.Calendar
}

func NewBookingHandler(db *sql.DB, cfg cliparse.Config, cal notify.Calendar) *BookingHandler {
	return &BookingHandler{db: db, cfg: cfg, cal: cal}
}

// Book handles POST /polls/{id}/book
//
// Preconditions are checked in a fixed order, each with its own failure:
// malformed slot, missing poll / wrong owner, no event type, already
// booked (optimistic), slot outside every window. The booked check is
// repeated inside the transaction via the conditional update: that
// second check, not this one, is the exactly-once guarantee.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	pollID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.BookSlotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// 1. Slot must be well-formed with start < end
	reqDate, err := timefmt.ParseDate(req.Date)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	reqStart, err := timefmt.ParseTime(req.StartTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	reqEnd, err := timefmt.ParseTime(req.EndTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if !reqStart.Before(reqEnd) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time must be before end_time")
		return
	}

	// 2. Poll exists and belongs to the caller
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

	// 3. A poll without a schedulable event definition cannot be booked
	if poll.EventTypeID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Poll has no event type to book against")
		return
	}

	// 4. Optimistic already-booked check
	if poll.BookingID != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Poll is already booked")
		return
	}

	// 5. The slot must fall within some offered window on that date
	windows, err := loadWindows(h.db, pollID)
	if err != nil {
		slog.Error("failed to query windows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !slotWithinWindows(windows, reqDate, reqStart, reqEnd) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Requested slot is outside every offered window")
		return
	}

	var et models.EventType
	err = h.db.QueryRow(`
		SELECT id, owner_id, title, slug, length FROM event_type WHERE id = $1
	`, *poll.EventTypeID).Scan(&et.ID, &et.OwnerID, &et.Title, &et.Slug, &et.Length)
	if err != nil {
		slog.Error("failed to query event type", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Attendees: participants whose response covers (not just overlaps)
	// the requested slot on the same date
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
	attendees := availableAttendees(participants, responses, req.Date, reqStart, reqEnd)

	bookingUID := uuid.NewString()
	bookingTitle := et.Title + ": " + poll.Title
	startAt := slotTimeUTC(reqDate, reqStart)
	endAt := slotTimeUTC(reqDate, reqEnd)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var bookingID int64
	err = tx.QueryRow(`
		INSERT INTO booking (uid, poll_id, title, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, bookingUID, pollID, bookingTitle, startAt, endAt, models.BookingAccepted, time.Now()).Scan(&bookingID)
	if err != nil {
		slog.Error("failed to insert booking", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book slot")
		return
	}

	for _, a := range attendees {
		if _, err := tx.Exec(`
			INSERT INTO booking_attendee (booking_id, name, email)
			VALUES ($1, $2, $3)
		`, bookingID, a.Name, a.Email); err != nil {
			slog.Error("failed to insert attendee", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book slot")
			return
		}
	}

	// The authoritative exactly-once check: only one transaction can flip
	// an unbooked poll to BOOKED. Everyone else rolls back their booking
	// row and gets a Conflict.
	res, err := tx.Exec(`
		UPDATE poll
		SET status = $1, booking_id = $2, selected_date = $3,
		    selected_start_time = $4, selected_end_time = $5
		WHERE id = $6 AND booking_id IS NULL
	`, models.StatusBooked, bookingID, req.Date, req.StartTime, req.EndTime, pollID)
	if err != nil {
		slog.Error("failed to mark poll booked", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book slot")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll was booked by a concurrent request, refresh and retry")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book slot")
		return
	}

	slog.Info("slot booked",
		"poll_id", pollID,
		"booking_id", bookingID,
		"date", req.Date,
		"attendees", len(attendees),
	)

	// Calendar sync is an enhancement: the booking stands even if every
	// attempt fails.
	refs := notify.SyncCalendar(r.Context(), h.cal, notify.Event{
		UID:       bookingUID,
		Title:     bookingTitle,
		StartTime: startAt,
		EndTime:   endAt,
		Attendees: attendees,
	})
	for _, ref := range refs {
		if _, err := h.db.Exec(`
			INSERT INTO booking_reference (booking_id, type, uid, meeting_url, external_calendar_id)
			VALUES ($1, $2, $3, $4, $5)
		`, bookingID, ref.Type, ref.UID, ref.MeetingURL, ref.ExternalCalendarID); err != nil {
			slog.Error("failed to store booking reference", "booking_id", bookingID, "error", err)
		}
	}

	middleware.JSONResponse(w, http.StatusCreated, models.BookSlotResponse{
		Success: true,
		Booking: models.BookingInfo{
			ID:            bookingID,
			UID:           bookingUID,
			Title:         bookingTitle,
			StartTime:     startAt,
			EndTime:       endAt,
			Status:        models.BookingAccepted,
			AttendeeCount: len(attendees),
		},
	})
}

// slotWithinWindows reports whether the requested slot falls inside at
// least one window on the matching date.
func slotWithinWindows(windows []models.Window, date timefmt.CalendarDate, start, end timefmt.TimeOfDay) bool {
	for _, win := range windows {
		winDate, err := timefmt.ParseDate(win.Date)
		if err != nil || winDate.Compare(date) != 0 {
			continue
		}
		winStart, err := timefmt.ParseTime(win.StartTime)
		if err != nil {
			continue
		}
		winEnd, err := timefmt.ParseTime(win.EndTime)
		if err != nil {
			continue
		}
		if !start.Before(winStart) && !winEnd.Before(end) {
			return true
		}
	}
	return false
}

// availableAttendees applies the cover rule: a participant attends when
// some response of theirs has the same date and start <= slot start and
// end >= slot end.
func availableAttendees(participants []models.Participant, responses []models.Response, date string, start, end timefmt.TimeOfDay) []notify.Recipient {
	covered := map[int64]bool{}
	for _, resp := range responses {
		if resp.Date != date {
			continue
		}
		respStart, err := timefmt.ParseTime(resp.StartTime)
		if err != nil {
			continue
		}
		respEnd, err := timefmt.ParseTime(resp.EndTime)
		if err != nil {
			continue
		}
		if !start.Before(respStart) && !respEnd.Before(end) {
			covered[resp.ParticipantID] = true
		}
	}

	attendees := []notify.Recipient{}
	for _, pt := range participants {
		if covered[pt.ID] {
			attendees = append(attendees, notify.Recipient{Name: pt.Name, Email: pt.Email})
		}
	}
	return attendees
}

// slotTimeUTC combines a calendar date and time-of-day into a UTC instant
// for the booking record.
func slotTimeUTC(d timefmt.CalendarDate, t timefmt.TimeOfDay) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, t.Hour, t.Minute, 0, 0, time.UTC)
}

// loadBookingInfo fetches the booking summary shown on the organizer's
// poll detail.
func loadBookingInfo(db *sql.DB, bookingID int64) (models.BookingInfo, error) {
	var info models.BookingInfo
	err := db.QueryRow(`
		SELECT b.id, b.uid, b.title, b.start_time, b.end_time, b.status,
		       (SELECT COUNT(*) FROM booking_attendee a WHERE a.booking_id = b.id)
		FROM booking b
		WHERE b.id = $1
	`, bookingID).Scan(
		&info.ID, &info.UID, &info.Title, &info.StartTime, &info.EndTime,
		&info.Status, &info.AttendeeCount,
	)
	return info, err
}
