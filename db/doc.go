// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

The same schema ships in two dialects, Postgres for production and
SQLite for development and tests, selected by the configured database
type. Dates and times-of-day are stored as canonical TEXT (YYYY-MM-DD,
HH:MM) so lexicographic comparison in SQL is chronological comparison
and no driver-level timezone conversion can shift a slot.
*/
package db
