// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package uuid generates time-ordered identifiers for server-side sessions.

Version 7 values sort by creation time, so session listings and logs read
in the order the sessions were opened.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is unrecoverable
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
