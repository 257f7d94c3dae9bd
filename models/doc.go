// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire and domain types shared across handlers:
polls, windows, participants, responses, bookings, event types, the
derived heat map shapes, and every request/response payload.

Status and participant-type values are plain string constants matching
the stored form. The public view types (TokenPollView, SharedPollView)
exist so the unauthenticated surfaces can never accidentally serialize
access tokens or, on the per-participant surface, other people's emails.
*/
package models
