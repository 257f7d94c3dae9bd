// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/meetpoll/middleware"
	"github.com/danielhkuo/meetpoll/models"
	"github.com/danielhkuo/meetpoll/notify"
	"github.com/danielhkuo/meetpoll/testutil"
)

const testOwner int64 = 1

func validCreateRequest() models.CreatePollRequest {
	return models.CreatePollRequest{
		Title:           "Team Sync",
		Description:     "Pick a time",
		DurationMinutes: 30,
		DateRangeStart:  "2099-12-01",
		DateRangeEnd:    "2099-12-07",
		Windows: []models.SlotInput{
			{Date: "2099-12-01", StartTime: "09:00", EndTime: "10:00"},
			{Date: "2099-12-02", StartTime: "14:00", EndTime: "15:00"},
		},
		Participants: []models.ParticipantInput{
			{Type: models.TypeCadreRequired, Name: "Alice", Email: "alice@example.com"},
			{Type: models.TypeClient, Name: "Bob", Email: "bob@example.com"},
		},
	}
}

func TestCreatePoll(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(*models.CreatePollRequest)
		expectedStatus int
	}{
		{name: "valid", mutate: nil, expectedStatus: http.StatusCreated},
		{
			name:           "missing title",
			mutate:         func(r *models.CreatePollRequest) { r.Title = "" },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duration too short",
			mutate:         func(r *models.CreatePollRequest) { r.DurationMinutes = 10 },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duration too long",
			mutate:         func(r *models.CreatePollRequest) { r.DurationMinutes = 481 },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "inverted date range",
			mutate: func(r *models.CreatePollRequest) {
				r.DateRangeStart = "2099-12-07"
				r.DateRangeEnd = "2099-12-01"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "single-digit window time",
			mutate: func(r *models.CreatePollRequest) {
				r.Windows[0].StartTime = "9:00"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "window start equals end",
			mutate: func(r *models.CreatePollRequest) {
				r.Windows[0].EndTime = r.Windows[0].StartTime
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed participant email",
			mutate: func(r *models.CreatePollRequest) {
				r.Participants[0].Email = "not-an-email"
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown participant type",
			mutate: func(r *models.CreatePollRequest) {
				r.Participants[0].Type = "VIP"
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			rec := &notify.Recorder{}
			handler := NewPollHandler(db, testutil.GetTestConfig(), rec)

			reqBody := validCreateRequest()
			if tt.mutate != nil {
				tt.mutate(&reqBody)
			}
			body, _ := json.Marshal(reqBody)

			req := httptest.NewRequest("POST", "/polls", bytes.NewReader(body))
			req = middleware.WithUserID(req, testOwner)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ID == 0 || resp.ShareSlug == "" {
					t.Errorf("incomplete create response: %+v", resp)
				}

				// one invite per participant
				if rec.InviteCount() != 2 {
					t.Errorf("expected 2 invites, got %d", rec.InviteCount())
				}

				// every participant got a distinct access token
				var distinct int
				err := db.QueryRow(`
					SELECT COUNT(DISTINCT access_token) FROM poll_participant WHERE poll_id = $1
				`, resp.ID).Scan(&distinct)
				if err != nil {
					t.Fatalf("query tokens: %v", err)
				}
				if distinct != 2 {
					t.Errorf("expected 2 distinct tokens, got %d", distinct)
				}
			} else {
				// a rejected create leaves nothing behind
				var count int
				if err := db.QueryRow(`SELECT COUNT(*) FROM poll`).Scan(&count); err != nil {
					t.Fatalf("count polls: %v", err)
				}
				if count != 0 {
					t.Errorf("rejected create wrote %d polls", count)
				}
			}
		})
	}
}

func TestCreatePollInviteFailureDoesNotFailCreation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rec := &notify.Recorder{FailInvites: true}
	handler := NewPollHandler(db, testutil.GetTestConfig(), rec)

	body, _ := json.Marshal(validCreateRequest())
	req := httptest.NewRequest("POST", "/polls", bytes.NewReader(body))
	req = middleware.WithUserID(req, testOwner)
	w := httptest.NewRecorder()

	handler.CreatePoll(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestCreatePollEventTypeOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	otherOwners := testutil.CreateTestEventType(t, db, 99)

	reqBody := validCreateRequest()
	reqBody.EventTypeID = &otherOwners
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/polls", bytes.NewReader(body))
	req = middleware.WithUserID(req, testOwner)
	w := httptest.NewRecorder()

	handler.CreatePoll(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListPollsSweepsExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	overdueID, _ := testutil.CreateTestPollDated(t, db, testOwner, models.StatusActive, "2020-01-01", "2020-01-07")
	currentID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)

	req := middleware.WithUserID(httptest.NewRequest("GET", "/polls", nil), testOwner)
	w := httptest.NewRecorder()
	handler.ListPolls(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.PollSummary
	testutil.AssertJSON(t, w, &polls)

	statuses := map[int64]string{}
	for _, p := range polls {
		statuses[p.ID] = p.Status
	}
	if statuses[overdueID] != models.StatusExpired {
		t.Errorf("overdue poll not expired: %s", statuses[overdueID])
	}
	if statuses[currentID] != models.StatusActive {
		t.Errorf("current poll flipped: %s", statuses[currentID])
	}
}

func TestListPollsScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	testutil.CreateTestPoll(t, db, 99, models.StatusActive)

	req := middleware.WithUserID(httptest.NewRequest("GET", "/polls", nil), testOwner)
	w := httptest.NewRecorder()
	handler.ListPolls(w, req)

	var polls []models.PollSummary
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 1 {
		t.Errorf("expected 1 poll, got %d", len(polls))
	}
}

func TestOpenCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	testutil.CreateTestPoll(t, db, testOwner, models.StatusClosed)
	testutil.CreateTestPollDated(t, db, testOwner, models.StatusActive, "2020-01-01", "2020-01-07")

	req := middleware.WithUserID(httptest.NewRequest("GET", "/polls/open-count", nil), testOwner)
	w := httptest.NewRecorder()
	handler.OpenCount(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp map[string]int
	testutil.AssertJSON(t, w, &resp)
	// the overdue poll expires during the sweep, leaving one ACTIVE
	if resp["count"] != 1 {
		t.Errorf("expected count 1, got %d", resp["count"])
	}
}

func TestGetPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	testutil.AddTestWindow(t, db, pollID, "2099-12-01", "09:00", "10:00")
	reqID, _ := testutil.AddTestParticipant(t, db, pollID, models.TypeCadreRequired, "Alice", "alice@example.com")
	testutil.AddTestParticipant(t, db, pollID, models.TypeClient, "Bob", "bob@example.com")
	testutil.AddTestResponse(t, db, reqID, "2099-12-01", "09:00", "10:00")

	get := func(userID, pollID int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/polls/"+strconv.FormatInt(pollID, 10), nil)
		req.SetPathValue("id", strconv.FormatInt(pollID, 10))
		req = middleware.WithUserID(req, userID)
		w := httptest.NewRecorder()
		handler.GetPoll(w, req)
		return w
	}

	t.Run("owner sees both heat maps", func(t *testing.T) {
		w := get(testOwner, pollID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var detail models.PollDetail
		testutil.AssertJSON(t, w, &detail)
		if detail.HeatMap.Stats.TotalParticipants != 2 {
			t.Errorf("unfiltered population: got %d", detail.HeatMap.Stats.TotalParticipants)
		}
		if detail.HeatMapRequired.Stats.TotalParticipants != 1 {
			t.Errorf("required population: got %d", detail.HeatMapRequired.Stats.TotalParticipants)
		}
		if len(detail.HeatMap.Cells) != 1 || detail.HeatMap.Cells[0].PercentAvailable != 50 {
			t.Errorf("unexpected heat map: %+v", detail.HeatMap.Cells)
		}
	})

	t.Run("wrong owner forbidden", func(t *testing.T) {
		testutil.AssertStatus(t, get(99, pollID), http.StatusForbidden)
	})

	t.Run("missing poll", func(t *testing.T) {
		testutil.AssertStatus(t, get(testOwner, 424242), http.StatusNotFound)
	})
}

func TestGetPollExpiresOverdue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPollDated(t, db, testOwner, models.StatusActive, "2020-01-01", "2020-01-07")

	req := httptest.NewRequest("GET", "/polls/1", nil)
	req.SetPathValue("id", strconv.FormatInt(pollID, 10))
	req = middleware.WithUserID(req, testOwner)
	w := httptest.NewRecorder()
	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var detail models.PollDetail
	testutil.AssertJSON(t, w, &detail)
	if detail.Status != models.StatusExpired {
		t.Errorf("expected EXPIRED, got %s", detail.Status)
	}
}

func patchPoll(t *testing.T, handler *PollHandler, userID, pollID int64, patch models.UpdatePollRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(patch)
	req := httptest.NewRequest("PATCH", "/polls/"+strconv.FormatInt(pollID, 10), bytes.NewReader(body))
	req.SetPathValue("id", strconv.FormatInt(pollID, 10))
	req = middleware.WithUserID(req, userID)
	w := httptest.NewRecorder()
	handler.UpdatePoll(w, req)
	return w
}

func TestUpdatePollDuplicateEmailRejectsBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	testutil.AddTestParticipant(t, db, pollID, models.TypeClient, "Bob", "bob@example.com")

	w := patchPoll(t, handler, testOwner, pollID, models.UpdatePollRequest{
		AddParticipants: []models.ParticipantInput{
			{Type: models.TypeClient, Name: "Carol", Email: "carol@example.com"},
			{Type: models.TypeClient, Name: "Bobby", Email: "BOB@example.com"}, // case-insensitive dup
		},
	})
	testutil.AssertStatus(t, w, http.StatusConflict)

	// the whole batch is rejected: Carol was not added either
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM poll_participant WHERE poll_id = $1`, pollID).Scan(&count); err != nil {
		t.Fatalf("count participants: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 participant after rejected batch, got %d", count)
	}
}

func TestUpdatePollWindowReplacementResetsResponses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	testutil.AddTestWindow(t, db, pollID, "2099-12-01", "09:00", "10:00")
	ptID, _ := testutil.AddTestParticipant(t, db, pollID, models.TypeClient, "Bob", "bob@example.com")
	testutil.AddTestResponse(t, db, ptID, "2099-12-01", "09:00", "10:00")

	w := patchPoll(t, handler, testOwner, pollID, models.UpdatePollRequest{
		Windows: []models.SlotInput{{Date: "2099-12-05", StartTime: "11:00", EndTime: "12:00"}},
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var responses int
	if err := db.QueryRow(`SELECT COUNT(*) FROM poll_response WHERE participant_id = $1`, ptID).Scan(&responses); err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if responses != 0 {
		t.Errorf("expected responses deleted, found %d", responses)
	}

	var hasResponded bool
	if err := db.QueryRow(`SELECT has_responded FROM poll_participant WHERE id = $1`, ptID).Scan(&hasResponded); err != nil {
		t.Fatalf("query participant: %v", err)
	}
	if hasResponded {
		t.Error("expected has_responded reset to false")
	}

	var windows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM poll_window WHERE poll_id = $1`, pollID).Scan(&windows); err != nil {
		t.Fatalf("count windows: %v", err)
	}
	if windows != 1 {
		t.Errorf("expected window set replaced wholesale, got %d windows", windows)
	}
}

func TestUpdatePollRemoveParticipantCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	ptID, _ := testutil.AddTestParticipant(t, db, pollID, models.TypeClient, "Bob", "bob@example.com")
	testutil.AddTestResponse(t, db, ptID, "2099-12-01", "09:00", "10:00")

	w := patchPoll(t, handler, testOwner, pollID, models.UpdatePollRequest{
		RemoveParticipantIDs: []int64{ptID},
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UpdatePollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ParticipantsRemoved != 1 {
		t.Errorf("expected 1 removed, got %d", resp.ParticipantsRemoved)
	}

	var orphans int
	if err := db.QueryRow(`SELECT COUNT(*) FROM poll_response WHERE participant_id = $1`, ptID).Scan(&orphans); err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if orphans != 0 {
		t.Errorf("removed participant left %d responses behind", orphans)
	}
}

func TestUpdatePollGuards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	bookedID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusBooked)
	activeID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)

	title := "Renamed"
	t.Run("booked poll rejects edits", func(t *testing.T) {
		w := patchPoll(t, handler, testOwner, bookedID, models.UpdatePollRequest{Title: &title})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
	t.Run("wrong owner forbidden", func(t *testing.T) {
		w := patchPoll(t, handler, 99, activeID, models.UpdatePollRequest{Title: &title})
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
	t.Run("missing poll", func(t *testing.T) {
		w := patchPoll(t, handler, testOwner, 424242, models.UpdatePollRequest{Title: &title})
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestClosePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	close := func(userID, pollID int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/polls/1/close", nil)
		req.SetPathValue("id", strconv.FormatInt(pollID, 10))
		req = middleware.WithUserID(req, userID)
		w := httptest.NewRecorder()
		handler.ClosePoll(w, req)
		return w
	}

	activeID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	closedID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusClosed)
	bookedID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusBooked)

	t.Run("active closes", func(t *testing.T) {
		testutil.AssertStatus(t, close(testOwner, activeID), http.StatusOK)

		var status string
		if err := db.QueryRow(`SELECT status FROM poll WHERE id = $1`, activeID).Scan(&status); err != nil {
			t.Fatalf("query status: %v", err)
		}
		if status != models.StatusClosed {
			t.Errorf("expected CLOSED, got %s", status)
		}
	})
	t.Run("already closed rejected", func(t *testing.T) {
		testutil.AssertStatus(t, close(testOwner, closedID), http.StatusBadRequest)
	})
	t.Run("booked rejected", func(t *testing.T) {
		testutil.AssertStatus(t, close(testOwner, bookedID), http.StatusBadRequest)
	})
	t.Run("wrong owner forbidden", func(t *testing.T) {
		otherID, _ := testutil.CreateTestPoll(t, db, 99, models.StatusActive)
		testutil.AssertStatus(t, close(testOwner, otherID), http.StatusForbidden)
	})
}

func TestDeletePollCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusActive)
	testutil.AddTestWindow(t, db, pollID, "2099-12-01", "09:00", "10:00")
	ptID, _ := testutil.AddTestParticipant(t, db, pollID, models.TypeClient, "Bob", "bob@example.com")
	testutil.AddTestResponse(t, db, ptID, "2099-12-01", "09:00", "10:00")

	req := httptest.NewRequest("DELETE", "/polls/1", nil)
	req.SetPathValue("id", strconv.FormatInt(pollID, 10))
	req = middleware.WithUserID(req, testOwner)
	w := httptest.NewRecorder()
	handler.DeletePoll(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	for _, q := range []string{
		`SELECT COUNT(*) FROM poll WHERE id = ` + strconv.FormatInt(pollID, 10),
		`SELECT COUNT(*) FROM poll_window WHERE poll_id = ` + strconv.FormatInt(pollID, 10),
		`SELECT COUNT(*) FROM poll_participant WHERE poll_id = ` + strconv.FormatInt(pollID, 10),
		`SELECT COUNT(*) FROM poll_response`,
	} {
		var count int
		if err := db.QueryRow(q).Scan(&count); err != nil {
			t.Fatalf("query %q: %v", q, err)
		}
		if count != 0 {
			t.Errorf("%q left %d rows", q, count)
		}
	}
}

func TestDeleteBookedPollKeepsBooking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPollHandler(db, testutil.GetTestConfig(), &notify.Recorder{})

	pollID, _ := testutil.CreateTestPoll(t, db, testOwner, models.StatusBooked)

	var bookingID int64
	err := db.QueryRow(`
		INSERT INTO booking (uid, poll_id, title, start_time, end_time, status)
		VALUES ('uid-1', $1, 'Call', '2099-12-01 09:00:00', '2099-12-01 10:00:00', 'ACCEPTED')
		RETURNING id
	`, pollID).Scan(&bookingID)
	if err != nil {
		t.Fatalf("insert booking: %v", err)
	}
	if _, err := db.Exec(`UPDATE poll SET booking_id = $1 WHERE id = $2`, bookingID, pollID); err != nil {
		t.Fatalf("link booking: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/polls/1", nil)
	req.SetPathValue("id", strconv.FormatInt(pollID, 10))
	req = middleware.WithUserID(req, testOwner)
	w := httptest.NewRecorder()
	handler.DeletePoll(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	var bookings int
	if err := db.QueryRow(`SELECT COUNT(*) FROM booking WHERE id = $1`, bookingID).Scan(&bookings); err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if bookings != 1 {
		t.Error("deleting the poll removed the booking record")
	}
}
