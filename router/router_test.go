// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/meetpoll/models"
	"github.com/danielhkuo/meetpoll/notify"
	"github.com/danielhkuo/meetpoll/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rec := &notify.Recorder{}
	return NewRouter(db, testutil.GetTestConfig(), rec, rec, rec)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "meetpoll API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestOrganizerRoutesRequireAuth(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/polls"},
		{"GET", "/polls"},
		{"GET", "/polls/open-count"},
		{"GET", "/polls/1"},
		{"PATCH", "/polls/1"},
		{"POST", "/polls/1/close"},
		{"DELETE", "/polls/1"},
		{"POST", "/polls/1/book"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 without bearer token, got %d", w.Code)
			}
		})
	}
}

func TestPublicRoutesNeedNoAuth(t *testing.T) {
	mux := newTestRouter(t)

	// no such token/slug: the handler runs and answers 404, not 401
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/p/some-token"},
		{"GET", "/poll/some-slug"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Expected 404 from handler, got %d", w.Code)
			}
		})
	}
}

func TestAuthenticatedRequestReachesHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rec := &notify.Recorder{}
	mux := NewRouter(db, testutil.GetTestConfig(), rec, rec, rec)

	pollID, _ := testutil.CreateTestPoll(t, db, 7, models.StatusActive)
	token := testutil.IssueTestToken(t, 7)

	req := httptest.NewRequest("GET", "/polls/"+strconv.FormatInt(pollID, 10), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with valid token, got %d. Body: %s", w.Code, w.Body.String())
	}

	var detail models.PollDetail
	testutil.AssertJSON(t, w, &detail)
	if detail.ID != pollID {
		t.Errorf("path parameter not extracted: got poll %d", detail.ID)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/polls/1"},
		{"DELETE", "/p/some-token"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}
