// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides caller authentication utilities.

# Caller Keys

Every caller (the election admin and each voter) proves its identity with a
key derived by HMAC-SHA256 from the identity and a server secret:

	key := auth.GenerateCallerKey("voter1", salt)
	err := auth.ValidateCallerKey("voter1", key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same identity and salt always produce the same key. This allows validation
without storing keys in the database. The admin's key is printed at startup;
voter keys are returned when the admin registers a voter.

Authenticate combines the presence check and validation:

	identity, err := auth.Authenticate(r.Header.Get("X-Caller-Identity"), r.Header.Get("X-Caller-Key"), salt)

# IP Hashing

For privacy-preserving audit logs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
