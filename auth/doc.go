// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates the credentials used by the three access surfaces:

  - participant access tokens (random UUIDs, the credential for the
    per-participant public link),
  - poll share slugs (short random base62 strings for the shared link),
  - organizer bearer tokens (HS256 JWTs whose subject is the user id).

Access tokens and slugs are generated, never derived, so possession of
one reveals nothing about any other.
*/
package auth
