// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the meetpoll API server.

Meetpoll is a group availability-poll service: an organizer offers
candidate time windows, participants mark when they can attend through
personal or shared public links, and the organizer books one slot once
the aggregated heat map shows where people overlap.

# Starting the Server

The server reads environment variables (a .env file is honored) or CLI
flags:

	DATABASE_URL=file:meetpoll.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres -jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - JWT_SECRET (-jwt-secret): HS256 secret for organizer bearer tokens

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - BASE_URL (-base-url): public base URL used in share links
  - MATTERMOST_URL / MATTERMOST_TOKEN: enable cadre chat notifications

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, responses, booking)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer-token guard
  - models: Request/response and domain types
  - heatmap: Pure availability aggregation
  - timefmt: Strict HH:MM / YYYY-MM-DD codec
  - notify: Invite, chat, and calendar collaborators
  - auth: Tokens, slugs, and organizer JWTs
  - db: Schema creation (Postgres and SQLite dialects)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
