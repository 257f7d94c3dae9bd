// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/meetpoll/models"
)

// startOfTodayUTC returns today's UTC date in canonical YYYY-MM-DD form.
// Dates are stored as TEXT in this form, so string comparison is
// chronological comparison.
func startOfTodayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

// SweepExpiredForOwner lazily expires every overdue ACTIVE poll owned by
// the given user. A poll is overdue once its date_range_end is strictly
// before the start of today (UTC). Called from organizer read paths;
// public surfaces report status as stored.
func SweepExpiredForOwner(db *sql.DB, ownerID int64) (int64, error) {
	res, err := db.Exec(`
		UPDATE poll
		SET status = $1
		WHERE created_by = $2 AND status = $3 AND date_range_end < $4
	`, models.StatusExpired, ownerID, models.StatusActive, startOfTodayUTC())
	if err != nil {
		return 0, fmt.Errorf("expire sweep: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ExpirePollIfOverdue applies the same lazy expiration to a single poll.
func ExpirePollIfOverdue(db *sql.DB, pollID int64) error {
	_, err := db.Exec(`
		UPDATE poll
		SET status = $1
		WHERE id = $2 AND status = $3 AND date_range_end < $4
	`, models.StatusExpired, pollID, models.StatusActive, startOfTodayUTC())
	if err != nil {
		return fmt.Errorf("expire poll %d: %w", pollID, err)
	}
	return nil
}

// loadPoll fetches a poll by id.
func loadPoll(db *sql.DB, pollID int64) (models.Poll, error) {
	var p models.Poll
	err := db.QueryRow(`
		SELECT id, title, description, event_type_id, duration_minutes,
		       date_range_start, date_range_end, status, share_slug,
		       booking_id, selected_date, selected_start_time, selected_end_time,
		       created_by, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&p.ID, &p.Title, &p.Description, &p.EventTypeID, &p.DurationMinutes,
		&p.DateRangeStart, &p.DateRangeEnd, &p.Status, &p.ShareSlug,
		&p.BookingID, &p.SelectedDate, &p.SelectedStart, &p.SelectedEnd,
		&p.CreatedBy, &p.CreatedAt,
	)
	return p, err
}

// loadWindows returns a poll's candidate windows ordered by date then
// start time, which is the order the heat map presents them in.
func loadWindows(db *sql.DB, pollID int64) ([]models.Window, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, date, start_time, end_time
		FROM poll_window
		WHERE poll_id = $1
		ORDER BY date, start_time, end_time
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := []models.Window{}
	for rows.Next() {
		var win models.Window
		if err := rows.Scan(&win.ID, &win.PollID, &win.Date, &win.StartTime, &win.EndTime); err != nil {
			return nil, err
		}
		windows = append(windows, win)
	}
	return windows, rows.Err()
}

// loadParticipants returns a poll's participants in insertion order.
func loadParticipants(db *sql.DB, pollID int64) ([]models.Participant, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, type, name, email, access_token, has_responded, responded_at, user_id
		FROM poll_participant
		WHERE poll_id = $1
		ORDER BY id
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var pt models.Participant
		if err := rows.Scan(
			&pt.ID, &pt.PollID, &pt.Type, &pt.Name, &pt.Email,
			&pt.AccessToken, &pt.HasResponded, &pt.RespondedAt, &pt.UserID,
		); err != nil {
			return nil, err
		}
		participants = append(participants, pt)
	}
	return participants, rows.Err()
}

// loadResponsesByPoll returns every response across the poll's
// participants, in participant order so heat map names are stable.
func loadResponsesByPoll(db *sql.DB, pollID int64) ([]models.Response, error) {
	rows, err := db.Query(`
		SELECT r.id, r.participant_id, r.date, r.start_time, r.end_time
		FROM poll_response r
		JOIN poll_participant p ON r.participant_id = p.id
		WHERE p.poll_id = $1
		ORDER BY r.participant_id, r.id
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResponses(rows)
}

// loadResponsesByParticipant returns one participant's responses.
func loadResponsesByParticipant(db *sql.DB, participantID int64) ([]models.Response, error) {
	rows, err := db.Query(`
		SELECT id, participant_id, date, start_time, end_time
		FROM poll_response
		WHERE participant_id = $1
		ORDER BY id
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResponses(rows)
}

func scanResponses(rows *sql.Rows) ([]models.Response, error) {
	responses := []models.Response{}
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(&resp.ID, &resp.ParticipantID, &resp.Date, &resp.StartTime, &resp.EndTime); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// deletePollCascade removes a poll and everything hanging off it, in
// dependency order, inside one transaction. Bookings are left alone.
func deletePollCascade(db *sql.DB, pollID int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM poll_response
		WHERE participant_id IN (SELECT id FROM poll_participant WHERE poll_id = $1)
	`, pollID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM poll_window WHERE poll_id = $1`, pollID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM poll_participant WHERE poll_id = $1`, pollID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM poll WHERE id = $1`, pollID); err != nil {
		return err
	}

	return tx.Commit()
}
