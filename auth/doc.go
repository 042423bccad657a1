// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives privacy-preserving voter fingerprints.

The poll has no accounts. Vote events can carry a salted hash of the
voter's IP so that downstream consumers can spot ballot stuffing without
storing addresses.

# IP Hashing

	hash := auth.HashIP("203.0.113.7", salt)

Uses HMAC-SHA256 keyed with the salt and keeps the first 64 bits (16 hex
chars). The same IP and salt always give the same hash.

VoterFingerprint resolves the client IP of a request (X-Forwarded-For,
then X-Real-IP, then RemoteAddr) and hashes it. With an empty salt it
returns "" and nothing is recorded.
*/
package auth
