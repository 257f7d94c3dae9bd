// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides the HTTP plumbing shared by all handlers:
request logging, CORS, JSON encoding helpers, and the bearer-token guard
for organizer routes (RequireUser / UserID).

Public surfaces (access-token and share-slug routes) carry their
credential in the URL and skip RequireUser entirely.
*/
package middleware
