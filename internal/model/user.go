// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User is a profile as returned by the users endpoints.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// DisplayClaims are the fields decoded from a bearer token payload for
// display purposes only. They are never cryptographically verified; all
// authorization stays server-side.
type DisplayClaims struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
}
