// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

// Package pagination implements the opaque position cursor and connection
// metadata used by the recipe listing endpoints.
//
// A cursor encodes an absolute position in the filtered, sorted result set.
// It is base64url-encoded JSON so clients treat it as opaque; decoding a
// malformed cursor is a client error, not a server failure.
package pagination

import (
	"encoding/base64"
	"fmt"

	json "github.com/goccy/go-json"
)

// Cursor is the decoded form of a position token. Offset is the zero-based
// absolute position of the item in the result set.
type Cursor struct {
	Offset int `json:"offset"`
}

// EncodeCursor encodes a zero-based position as an opaque cursor string.
func EncodeCursor(offset int) string {
	data, err := json.Marshal(Cursor{Offset: offset})
	if err != nil {
		// Should never happen with a simple struct, but return empty if it does
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor decodes an opaque cursor string back to a position.
// Returns an error for malformed base64, malformed JSON, or negative offsets;
// callers map this to a validation error.
func DecodeCursor(encoded string) (*Cursor, error) {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor JSON: %w", err)
	}

	if cursor.Offset < 0 {
		return nil, fmt.Errorf("cursor offset must not be negative, got %d", cursor.Offset)
	}

	return &cursor, nil
}
