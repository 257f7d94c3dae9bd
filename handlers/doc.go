// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP operations over the poll lifecycle.

Three handler structs split the surface by credential:

  - PollHandler: organizer CRUD (bearer token; owner checked per poll).
    Organizer reads lazily expire overdue ACTIVE polls first.
  - RespondHandler: the two public surfaces, where the access token or
    share slug in the URL is the credential. Response sets are replaced
    delete-then-insert inside one transaction.
  - BookingHandler: the booking commit. The conditional status update
    inside the transaction guarantees at most one booking per poll no
    matter how many requests race.

All date and time values cross these handlers as canonical YYYY-MM-DD /
HH:MM strings, validated by the timefmt package on the way in.
*/
package handlers
