// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// Deletes are performed explicitly and in order by the handlers, so the
// foreign keys carry no ON DELETE CASCADE. The booking table deliberately
// has no foreign key to poll at all: deleting a poll's administrative
// record must not touch the booking that was created from it.
func CreateSchema(db *sql.DB, databaseType string) error {
	schema := schemaPostgres
	if databaseType == "sqlite" {
		schema = schemaSQLite
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schemaPostgres = `
-- Schedulable event definitions (what a poll books)
CREATE TABLE IF NOT EXISTS event_type (
    id BIGSERIAL PRIMARY KEY,
    owner_id BIGINT NOT NULL,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    length INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_type_owner ON event_type(owner_id);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    event_type_id BIGINT REFERENCES event_type(id),
    duration_minutes INTEGER NOT NULL,
    date_range_start TEXT NOT NULL,
    date_range_end TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'CLOSED', 'EXPIRED', 'BOOKED')),
    share_slug TEXT NOT NULL UNIQUE,
    booking_id BIGINT,
    selected_date TEXT,
    selected_start_time TEXT,
    selected_end_time TEXT,
    created_by BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_poll_share_slug ON poll(share_slug);
CREATE INDEX IF NOT EXISTS idx_poll_created_by ON poll(created_by);
CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);

-- Candidate time windows
CREATE TABLE IF NOT EXISTS poll_window (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_window_poll_id ON poll_window(poll_id);

-- Participants
CREATE TABLE IF NOT EXISTS poll_participant (
    id BIGSERIAL PRIMARY KEY,
    poll_id BIGINT NOT NULL REFERENCES poll(id),
    type TEXT NOT NULL CHECK (type IN ('CADRE_REQUIRED', 'CADRE_OPTIONAL', 'CLIENT')),
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    access_token TEXT NOT NULL UNIQUE,
    has_responded BOOLEAN NOT NULL DEFAULT FALSE,
    responded_at TIMESTAMP,
    user_id BIGINT
);

CREATE INDEX IF NOT EXISTS idx_poll_participant_poll_id ON poll_participant(poll_id);
CREATE INDEX IF NOT EXISTS idx_poll_participant_token ON poll_participant(access_token);

-- Availability responses
CREATE TABLE IF NOT EXISTS poll_response (
    id BIGSERIAL PRIMARY KEY,
    participant_id BIGINT NOT NULL REFERENCES poll_participant(id),
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_response_participant ON poll_response(participant_id);

-- Bookings (no FK to poll: outlives poll deletion)
CREATE TABLE IF NOT EXISTS booking (
    id BIGSERIAL PRIMARY KEY,
    uid TEXT NOT NULL UNIQUE,
    poll_id BIGINT NOT NULL,
    title TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS booking_attendee (
    id BIGSERIAL PRIMARY KEY,
    booking_id BIGINT NOT NULL REFERENCES booking(id),
    name TEXT NOT NULL,
    email TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_booking_attendee_booking ON booking_attendee(booking_id);

-- Best-effort external calendar references
CREATE TABLE IF NOT EXISTS booking_reference (
    id BIGSERIAL PRIMARY KEY,
    booking_id BIGINT NOT NULL REFERENCES booking(id),
    type TEXT NOT NULL,
    uid TEXT NOT NULL,
    meeting_url TEXT,
    external_calendar_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_booking_reference_booking ON booking_reference(booking_id);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS event_type (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    owner_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    length INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_type_owner ON event_type(owner_id);

CREATE TABLE IF NOT EXISTS poll (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    event_type_id INTEGER REFERENCES event_type(id),
    duration_minutes INTEGER NOT NULL,
    date_range_start TEXT NOT NULL,
    date_range_end TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'CLOSED', 'EXPIRED', 'BOOKED')),
    share_slug TEXT NOT NULL UNIQUE,
    booking_id INTEGER,
    selected_date TEXT,
    selected_start_time TEXT,
    selected_end_time TEXT,
    created_by INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_share_slug ON poll(share_slug);
CREATE INDEX IF NOT EXISTS idx_poll_created_by ON poll(created_by);
CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);

CREATE TABLE IF NOT EXISTS poll_window (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_window_poll_id ON poll_window(poll_id);

CREATE TABLE IF NOT EXISTS poll_participant (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id),
    type TEXT NOT NULL CHECK (type IN ('CADRE_REQUIRED', 'CADRE_OPTIONAL', 'CLIENT')),
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    access_token TEXT NOT NULL UNIQUE,
    has_responded BOOLEAN NOT NULL DEFAULT FALSE,
    responded_at TIMESTAMP,
    user_id INTEGER
);

CREATE INDEX IF NOT EXISTS idx_poll_participant_poll_id ON poll_participant(poll_id);
CREATE INDEX IF NOT EXISTS idx_poll_participant_token ON poll_participant(access_token);

CREATE TABLE IF NOT EXISTS poll_response (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    participant_id INTEGER NOT NULL REFERENCES poll_participant(id),
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_response_participant ON poll_response(participant_id);

CREATE TABLE IF NOT EXISTS booking (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uid TEXT NOT NULL UNIQUE,
    poll_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS booking_attendee (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id INTEGER NOT NULL REFERENCES booking(id),
    name TEXT NOT NULL,
    email TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_booking_attendee_booking ON booking_attendee(booking_id);

CREATE TABLE IF NOT EXISTS booking_reference (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id INTEGER NOT NULL REFERENCES booking(id),
    type TEXT NOT NULL,
    uid TEXT NOT NULL,
    meeting_url TEXT,
    external_calendar_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_booking_reference_booking ON booking_reference(booking_id);
`
