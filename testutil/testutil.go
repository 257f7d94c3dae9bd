// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/meetpoll/auth"
	"github.com/danielhkuo/meetpoll/cliparse"
	"github.com/danielhkuo/meetpoll/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own named database; the single connection
// keeps it alive for the test's duration and serializes writers, which
// makes concurrency tests deterministic at the SQL level.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), rand.Int63())
	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:test?mode=memory",
		DatabaseType: "sqlite",
		JWTSecret:    "test-secret",
		BaseURL:      "http://localhost:3318",
	}
}

// IssueTestToken mints a bearer token for the given user against the
// test config's secret.
func IssueTestToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := auth.IssueToken(userID, GetTestConfig().JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// CreateTestPoll creates a poll with a far-future date range so it never
// trips lazy expiration. Returns the poll id and share slug.
func CreateTestPoll(t *testing.T, conn *sql.DB, ownerID int64, status string) (int64, string) {
	t.Helper()
	return CreateTestPollDated(t, conn, ownerID, status, "2099-12-01", "2099-12-31")
}

// CreateTestPollDated creates a poll with an explicit date range, for
// expiration tests.
func CreateTestPollDated(t *testing.T, conn *sql.DB, ownerID int64, status, rangeStart, rangeEnd string) (int64, string) {
	t.Helper()

	slug, err := auth.NewShareSlug()
	if err != nil {
		t.Fatalf("Failed to generate share slug: %v", err)
	}

	var pollID int64
	err = conn.QueryRow(`
		INSERT INTO poll (title, description, duration_minutes, date_range_start,
		                  date_range_end, status, share_slug, created_by, created_at)
		VALUES ('Test Poll', 'A test poll', 30, $1, $2, $3, $4, $5, $6)
		RETURNING id
	`, rangeStart, rangeEnd, status, slug, ownerID, time.Now()).Scan(&pollID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, slug
}

// AddTestWindow adds a candidate window and returns its id.
func AddTestWindow(t *testing.T, conn *sql.DB, pollID int64, date, start, end string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO poll_window (poll_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, pollID, date, start, end).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test window: %v", err)
	}
	return id
}

// AddTestParticipant adds a participant and returns its id and access token.
func AddTestParticipant(t *testing.T, conn *sql.DB, pollID int64, ptype, name, email string) (int64, string) {
	t.Helper()

	token := auth.NewAccessToken()
	var id int64
	err := conn.QueryRow(`
		INSERT INTO poll_participant (poll_id, type, name, email, access_token, has_responded)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id
	`, pollID, ptype, name, email, token).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}
	return id, token
}

// AddTestResponse records one availability slot for a participant and
// marks them responded.
func AddTestResponse(t *testing.T, conn *sql.DB, participantID int64, date, start, end string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO poll_response (participant_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4)
	`, participantID, date, start, end)
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}
	_, err = conn.Exec(`
		UPDATE poll_participant SET has_responded = TRUE, responded_at = $1 WHERE id = $2
	`, time.Now(), participantID)
	if err != nil {
		t.Fatalf("Failed to mark participant responded: %v", err)
	}
}

// CreateTestEventType creates an event type owned by the given user.
func CreateTestEventType(t *testing.T, conn *sql.DB, ownerID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO event_type (owner_id, title, slug, length)
		VALUES ($1, 'Intro Call', 'intro-call', 30)
		RETURNING id
	`, ownerID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test event type: %v", err)
	}
	return id
}

// SetPollEventType links a poll to an event type.
func SetPollEventType(t *testing.T, conn *sql.DB, pollID, eventTypeID int64) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE poll SET event_type_id = $1 WHERE id = $2`, eventTypeID, pollID); err != nil {
		t.Fatalf("Failed to set poll event type: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
