// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package heatmap computes per-window availability aggregates for a poll.

Compute maps (windows, responses, participants, optional type filter) to
one cell per window with a response count, a rounded availability
percentage, and the covering participants' names, plus poll-level
statistics: total responses, perfect slots (100%), and optimal slots
(highest nonzero availability).

The computation is deterministic and side-effect free, which is what the
handler tests and the purity property rely on. hasResponded is
deliberately ignored here: a participant who never responded still counts
in the denominator, contributing zero coverage.
*/
package heatmap
